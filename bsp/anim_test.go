// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import "testing"

func TestStaticTextureFrame(t *testing.T) {
	ti := &TexInfo{}
	if ti.NumFrames() != 1 {
		t.Errorf("NumFrames = %d, want 1", ti.NumFrames())
	}
	for _, n := range []int{0, 1, 17} {
		if ti.Frame(n) != ti {
			t.Errorf("Frame(%d) of a static texture should be itself", n)
		}
	}
}

func TestAnimationRingWraps(t *testing.T) {
	a := &TexInfo{}
	b := &TexInfo{}
	c := &TexInfo{}
	ring := []*TexInfo{a, b, c}
	for _, ti := range ring {
		ti.SetAnimation(ring)
	}
	if a.NumFrames() != 3 {
		t.Fatalf("NumFrames = %d, want 3", a.NumFrames())
	}
	want := []*TexInfo{a, b, c, a, b, c, a}
	for n, w := range want {
		if got := a.Frame(n); got != w {
			t.Errorf("a.Frame(%d) is the wrong ring member", n)
		}
	}
	// stepping is relative to the member playback starts from
	if b.Frame(2) != a {
		t.Error("b.Frame(2) should wrap around to a")
	}
}

func TestSingleFrameRingIsStatic(t *testing.T) {
	a := &TexInfo{}
	a.SetAnimation([]*TexInfo{a})
	if a.NumFrames() != 1 || a.Frame(5) != a {
		t.Error("single frame ring should behave like a static texture")
	}
}
