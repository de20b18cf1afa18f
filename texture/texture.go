// SPDX-License-Identifier: GPL-2.0-or-later

// Package texture holds the image handles referenced by model skins,
// texinfos and lightmaps. The actual upload to the rasterizer happens
// elsewhere; a handle only carries the pixel data and an id assigned by the
// upload pipeline.
package texture

type TexPref uint32

const (
	TexPrefMipMap TexPref = 1 << iota
	TexPrefLinear
	TexPrefNearest
	TexPrefAlpha
	TexPrefPersist
	TexPrefNoPicMip
	TexPrefNone TexPref = 0
)

type ColorType int

const (
	ColorTypeIndexed ColorType = iota
	ColorTypeRGBA
	ColorTypeLightmap
)

type Texture struct {
	uploadID uint32 // assigned by the upload pipeline, 0 while unbound
	Width    int32
	Height   int32
	flags    TexPref
	name     string
	Typ      ColorType
	Data     []byte
}

func NewTexture(w, h int32, flags TexPref, name string, typ ColorType, data []byte) *Texture {
	return &Texture{
		Width:  w,
		Height: h,
		flags:  flags,
		name:   name,
		Typ:    typ,
		Data:   data,
	}
}

func (t *Texture) Name() string {
	return t.name
}

func (t *Texture) ID() uint32 {
	return t.uploadID
}

// SetID records the id handed out by the upload pipeline.
func (t *Texture) SetID(id uint32) {
	t.uploadID = id
}

func (t *Texture) Texels() int {
	if t.Flags(TexPrefMipMap) {
		return int(t.Width * t.Height * 4 / 3)
	}
	return int(t.Width * t.Height)
}

func (t *Texture) Flags(f TexPref) bool {
	return t.flags&f != 0
}
