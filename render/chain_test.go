// SPDX-License-Identifier: GPL-2.0-or-later
package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"q2ref/bsp"
)

func TestBuildChainsGroupsByTexture(t *testing.T) {
	w := testWorld()
	r := NewRefresh(w)
	if err := r.MarkLeaves(mgl32.Vec3{-16, 0, 0}); err != nil {
		t.Fatal(err)
	}

	c := BuildChains(w, r.VisFrameCount(), 0)
	if c.Len() != 2 {
		t.Fatalf("batched %d surfaces, want 2", c.Len())
	}
	texs := c.Textures()
	if len(texs) != 1 {
		t.Fatalf("%d texture buckets, want 1 (both surfaces share a texinfo)", len(texs))
	}
	if got := c.TextureSurfaces(texs[0]); len(got) != 2 {
		t.Errorf("texture bucket holds %d surfaces, want 2", len(got))
	}

	lms := c.Lightmaps()
	if len(lms) != 2 || lms[0] != 0 || lms[1] != 1 {
		t.Errorf("lightmap keys = %v, want [0 1]", lms)
	}
}

func TestBuildChainsSkipsInvisible(t *testing.T) {
	w := testWorld()
	r := NewRefresh(w)
	// camera in cluster 0: only the front surface is stamped
	if err := r.MarkLeaves(mgl32.Vec3{16, 0, 0}); err != nil {
		t.Fatal(err)
	}

	c := BuildChains(w, r.VisFrameCount(), 0)
	if c.Len() != 1 {
		t.Fatalf("batched %d surfaces, want 1", c.Len())
	}
	if got := c.TextureSurfaces(w.Surfaces[0].TexInfo); len(got) != 1 || got[0] != 0 {
		t.Errorf("bucket = %v, want [0]", got)
	}
}

func TestBuildChainsAnimationStep(t *testing.T) {
	w := testWorld()
	base := w.Surfaces[0].TexInfo
	alt := &bsp.TexInfo{}
	ring := []*bsp.TexInfo{base, alt}
	base.SetAnimation(ring)
	alt.SetAnimation(ring)

	w.Surfaces[0].VisFrame = 7
	w.Surfaces[1].VisFrame = 7

	c := BuildChains(w, 7, 1)
	// one step past the base frame lands on alt for every surface
	if got := c.TextureSurfaces(alt); len(got) != 2 {
		t.Errorf("animated bucket holds %d surfaces, want 2", len(got))
	}
	if got := c.TextureSurfaces(base); len(got) != 0 {
		t.Errorf("base frame bucket holds %d surfaces, want 0", len(got))
	}
}

func TestEdgeCacheComputesOncePerFrame(t *testing.T) {
	edges := []*bsp.MEdge{{}, {}}
	ec := NewEdgeCache(len(edges))

	calls := 0
	compute := func() uint32 {
		calls++
		return 42
	}

	ec.BeginFrame(1)
	if got := ec.Offset(edges, 0, compute); got != 42 {
		t.Errorf("offset = %d, want 42", got)
	}
	if got := ec.Offset(edges, 0, compute); got != 42 {
		t.Errorf("cached offset = %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("compute ran %d times in one frame, want 1", calls)
	}

	ec.BeginFrame(2)
	ec.Offset(edges, 0, compute)
	if calls != 2 {
		t.Errorf("compute ran %d times after a new frame, want 2", calls)
	}
	// the other edge has its own slot
	ec.Offset(edges, 1, compute)
	if calls != 3 {
		t.Errorf("compute ran %d times, want 3", calls)
	}
}

func TestSurfEdgeDirection(t *testing.T) {
	m := &bsp.Model{
		Edges: []*bsp.MEdge{
			{}, // edge 0 is never referenced
			{V: [2]uint16{3, 7}},
		},
		SurfEdges: []int32{1, -1},
	}
	v0, v1 := m.SurfEdgeVerts(0)
	if v0 != 3 || v1 != 7 {
		t.Errorf("forward edge = (%d,%d), want (3,7)", v0, v1)
	}
	v0, v1 = m.SurfEdgeVerts(1)
	if v0 != 7 || v1 != 3 {
		t.Errorf("reversed edge = (%d,%d), want (7,3)", v0, v1)
	}
}
