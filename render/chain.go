// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"sort"

	"q2ref/bsp"
)

// ChainSet buckets the surfaces to draw this frame, keyed once by texinfo
// for textured draw calls and once by lightmap texture for the lighting
// pass. The buckets hold surface indices into the world's surface array;
// the models themselves stay untouched.
type ChainSet struct {
	byTexture  map[*bsp.TexInfo][]int
	texOrder   []*bsp.TexInfo
	byLightmap map[int][]int
}

// BuildChains collects every surface stamped visible for visFrame.
// Animated texinfos batch under the ring frame active at animStep, so all
// surfaces of one animation land in the same draw call.
func BuildChains(world *bsp.Model, visFrame, animStep int) *ChainSet {
	c := &ChainSet{
		byTexture:  make(map[*bsp.TexInfo][]int),
		byLightmap: make(map[int][]int),
	}
	for i, s := range world.Surfaces {
		if s.VisFrame != visFrame {
			continue
		}
		ti := s.TexInfo
		if ti != nil {
			ti = ti.Frame(animStep)
		}
		if _, ok := c.byTexture[ti]; !ok {
			c.texOrder = append(c.texOrder, ti)
		}
		c.byTexture[ti] = append(c.byTexture[ti], i)
		if s.Flags&bsp.SurfaceDrawSky == 0 {
			c.byLightmap[s.LightmapTextureNum] = append(c.byLightmap[s.LightmapTextureNum], i)
		}
	}
	return c
}

// Textures returns the texture keys in first-seen surface order.
func (c *ChainSet) Textures() []*bsp.TexInfo {
	return c.texOrder
}

// TextureSurfaces returns the surface indices batched under one texinfo.
func (c *ChainSet) TextureSurfaces(ti *bsp.TexInfo) []int {
	return c.byTexture[ti]
}

// Lightmaps returns the lightmap texture numbers with visible surfaces,
// ascending.
func (c *ChainSet) Lightmaps() []int {
	keys := make([]int, 0, len(c.byLightmap))
	for k := range c.byLightmap {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// LightmapSurfaces returns the surface indices batched under one lightmap.
func (c *ChainSet) LightmapSurfaces(num int) []int {
	return c.byLightmap[num]
}

// Len counts the batched surfaces.
func (c *ChainSet) Len() int {
	n := 0
	for _, surfs := range c.byTexture {
		n += len(surfs)
	}
	return n
}

// EdgeCache memoizes per-edge screen work within one frame. Edges shared by
// two surfaces project once. The cached offsets live in the model's edge
// array; the cache only remembers which frame wrote them.
type EdgeCache struct {
	frame  int
	stamps []int
}

func NewEdgeCache(numEdges int) *EdgeCache {
	// frame -1 so a zeroed stamp table starts invalid
	return &EdgeCache{frame: -1, stamps: make([]int, numEdges)}
}

// BeginFrame invalidates all cached offsets without touching them.
func (e *EdgeCache) BeginFrame(frame int) {
	e.frame = frame
}

// Offset returns the cached projection offset for edge idx, calling
// compute only on the first request of this frame.
func (e *EdgeCache) Offset(edges []*bsp.MEdge, idx int, compute func() uint32) uint32 {
	if e.stamps[idx] == e.frame {
		return edges[idx].CachedEdgeOffset
	}
	off := compute()
	edges[idx].CachedEdgeOffset = off
	e.stamps[idx] = e.frame
	return off
}
