// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package chunker splits file content into fixed-size plaintext blocks.
//
// A [Chunker] is a lazy, finite, non-restartable iterator: each call to
// [Chunker.Next] reads exactly one block from the underlying reader.
// Block indices start at 1. Every block except the last holds exactly
// BlockSize bytes; the last one holds the remainder, or a full block when
// the size is an exact multiple of BlockSize.
package chunker

import (
	"errors"
	"fmt"
	"io"
)

// ErrInvalidBlockSize is returned when a non-positive block size is given.
var ErrInvalidBlockSize = errors.New("block size must be positive")

// Block is one plaintext block of a file.
type Block struct {
	Index int
	Data  []byte
}

// Chunker reads blocks from a reader.
type Chunker struct {
	r         io.Reader
	blockSize int
	next      int
	done      bool
}

// New returns a chunker reading blocks of blockSize bytes from r.
func New(r io.Reader, blockSize int) (*Chunker, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	return &Chunker{r: r, blockSize: blockSize, next: 1}, nil
}

// Next returns the next block. It returns io.EOF once the content is
// exhausted and on every call after that.
func (c *Chunker) Next() (Block, error) {
	if c.done {
		return Block{}, io.EOF
	}

	buf := make([]byte, c.blockSize)
	n, err := io.ReadFull(c.r, buf)
	switch {
	case errors.Is(err, io.EOF):
		c.done = true
		return Block{}, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		c.done = true
	case err != nil:
		c.done = true
		return Block{}, fmt.Errorf("read block %d: %w", c.next, err)
	}

	block := Block{Index: c.next, Data: buf[:n]}
	c.next++

	return block, nil
}

// BlockCount returns the number of blocks a file of size bytes splits into.
func BlockCount(size int64, blockSize int) int {
	if size <= 0 || blockSize <= 0 {
		return 0
	}

	bs := int64(blockSize)
	return int((size + bs - 1) / bs)
}

// BlockSizes returns the plaintext size of every block of a file of size
// bytes, in index order.
func BlockSizes(size int64, blockSize int) []int {
	count := BlockCount(size, blockSize)
	sizes := make([]int, count)

	for i := range sizes {
		sizes[i] = blockSize
	}
	if count > 0 {
		if rem := int(size % int64(blockSize)); rem != 0 {
			sizes[count-1] = rem
		}
	}

	return sizes
}
