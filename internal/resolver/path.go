// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"path"
	"strings"
)

// NormalizePath lexically cleans p into an absolute slash-separated path.
// Empty segments and "." are dropped and ".." removes the previous segment;
// ".." at the root stays at the root. No network or decryption is involved.
func NormalizePath(p string) string {
	return path.Clean("/" + p)
}

// splitPath returns the segments of p without empty and "." segments.
// ".." is kept for the resolver to handle.
func splitPath(p string) []string {
	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." {
			continue
		}
		segments = append(segments, seg)
	}

	return segments
}

func joinPath(names []string) string {
	return "/" + strings.Join(names, "/")
}

// SplitParent splits p into its normalized parent path and final name.
// The root has no name.
func SplitParent(p string) (parent, name string) {
	clean := NormalizePath(p)
	if clean == "/" {
		return "/", ""
	}

	return path.Dir(clean), path.Base(clean)
}

// ValidName reports whether name can be used for a new node.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, "/")
}
