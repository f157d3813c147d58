// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// attempt is the outcome of [tryEach]: the index of the candidate that
// succeeded, or the index and error of the last one that failed.
type attempt struct {
	index int
	err   error
}

func (a attempt) ok() bool { return a.err == nil }

// tryEach calls fn on every candidate in order and stops at the first one
// that succeeds.
func tryEach[C, T any](candidates []C, fn func(C) (T, error)) (T, attempt) {
	var zero T
	last := attempt{index: -1, err: errNoCandidates}

	for i, c := range candidates {
		v, err := fn(c)
		if err == nil {
			return v, attempt{index: i}
		}
		last = attempt{index: i, err: err}
	}

	return zero, last
}
