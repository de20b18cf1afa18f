// SPDX-License-Identifier: GPL-2.0-or-later

// Package hunk implements the per-model bump allocator. Everything a model
// owns is carved from one hunk so releasing the model releases all of its
// data at once.
package hunk

import "github.com/pkg/errors"

const alignment = 16

var ErrOverflow = errors.New("hunk: allocation exceeds hunk size")

type Hunk struct {
	buf  []byte
	used int
}

func New(size int) *Hunk {
	return &Hunk{buf: make([]byte, size)}
}

// Alloc carves n bytes off the hunk. The returned slice stays valid until
// Release.
func (h *Hunk) Alloc(n int) ([]byte, error) {
	pad := (alignment - h.used%alignment) % alignment
	if h.used+pad+n > len(h.buf) {
		return nil, errors.Wrapf(ErrOverflow, "%d of %d bytes used, want %d", h.used, len(h.buf), n)
	}
	h.used += pad
	b := h.buf[h.used : h.used+n : h.used+n]
	h.used += n
	return b, nil
}

func (h *Hunk) Used() int {
	return h.used
}

func (h *Hunk) Size() int {
	return len(h.buf)
}

// Release drops the backing store. The hunk must not be used afterwards.
func (h *Hunk) Release() {
	h.buf = nil
	h.used = 0
}
