// SPDX-License-Identifier: GPL-2.0-or-later
package hunk

import (
	"testing"

	"github.com/pkg/errors"
)

func TestAllocAlignment(t *testing.T) {
	h := New(256)
	a, err := h.Alloc(3)
	if err != nil {
		t.Fatalf("Alloc(3): %v", err)
	}
	if len(a) != 3 {
		t.Errorf("len = %d, want 3", len(a))
	}
	b, err := h.Alloc(8)
	if err != nil {
		t.Fatalf("Alloc(8): %v", err)
	}
	_ = b
	// 3 bytes rounded up to the next 16 byte boundary before the second cut
	if h.Used() != 16+8 {
		t.Errorf("Used = %d, want 24", h.Used())
	}
}

func TestAllocOverflow(t *testing.T) {
	h := New(32)
	if _, err := h.Alloc(16); err != nil {
		t.Fatalf("Alloc(16): %v", err)
	}
	_, err := h.Alloc(17)
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("Alloc past the end = %v, want ErrOverflow", err)
	}
}

func TestRelease(t *testing.T) {
	h := New(64)
	if _, err := h.Alloc(32); err != nil {
		t.Fatalf("Alloc(32): %v", err)
	}
	h.Release()
	if h.Used() != 0 || h.Size() != 0 {
		t.Errorf("after Release: used %d size %d, want 0 0", h.Used(), h.Size())
	}
}
