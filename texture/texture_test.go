// SPDX-License-Identifier: GPL-2.0-or-later
package texture

import "testing"

func TestTexels(t *testing.T) {
	plain := NewTexture(64, 32, TexPrefNone, "e1u1/floor", ColorTypeIndexed, nil)
	if got := plain.Texels(); got != 64*32 {
		t.Errorf("Texels = %d, want %d", got, 64*32)
	}
	mipped := NewTexture(64, 32, TexPrefMipMap, "e1u1/wall", ColorTypeIndexed, nil)
	if got := mipped.Texels(); got != 64*32*4/3 {
		t.Errorf("mipmapped Texels = %d, want %d", got, 64*32*4/3)
	}
}

func TestUploadID(t *testing.T) {
	tx := NewTexture(16, 16, TexPrefLinear, "lightmap0", ColorTypeLightmap, make([]byte, 16*16*4))
	if tx.ID() != 0 {
		t.Errorf("unbound texture id = %d, want 0", tx.ID())
	}
	tx.SetID(7)
	if tx.ID() != 7 {
		t.Errorf("id = %d, want 7", tx.ID())
	}
	if tx.Name() != "lightmap0" {
		t.Errorf("name = %q", tx.Name())
	}
}
