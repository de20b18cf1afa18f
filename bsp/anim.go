// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// Animated textures form a finite cycle of texinfo frames. The cycle is
// stored as a ring shared by all of its members so playback is a modulo
// index instead of a pointer chase that would need loop detection.

// SetAnimation installs the frame ring. frames must contain the full cycle
// in play order, including t itself; a nil or single-frame ring marks the
// texture static.
func (t *TexInfo) SetAnimation(frames []*TexInfo) {
	if len(frames) < 2 {
		t.anim = nil
		t.animPos = 0
		return
	}
	t.anim = frames
	for i, f := range frames {
		if f == t {
			t.animPos = i
			break
		}
	}
}

// NumFrames is 1 for static textures.
func (t *TexInfo) NumFrames() int {
	if t.anim == nil {
		return 1
	}
	return len(t.anim)
}

// Frame returns the texinfo to draw n animation steps past t. Static
// textures always return themselves.
func (t *TexInfo) Frame(n int) *TexInfo {
	if t.anim == nil {
		return t
	}
	if n < 0 {
		n = 0
	}
	return t.anim[(t.animPos+n)%len(t.anim)]
}
