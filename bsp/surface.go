// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const MaxLightStyles = 64

// LightStyles contain MaxLightStyles values to scale light inside a map.
type LightStyles [MaxLightStyles]int

var blockLights [128 * 128 * 3]uint32

func clampColor(c uint32) byte {
	if c > 255 {
		return 255
	}
	return byte(c)
}

type DynamicLight interface {
	Origin() mgl32.Vec3
	Radius() float32
	MinLight() float32 // don't add when contributing less
	Color() mgl32.Vec3
}

// LightmapExtents returns the lightmap block size of the surface in luxels.
func (s *Surface) LightmapExtents() (smax, tmax int) {
	return int(s.Extents[0]>>4) + 1, int(s.Extents[1]>>4) + 1
}

// BuildLightmap accumulates the static samples scaled by the active light
// styles, splats dynamic lights when the surface was stamped this frame,
// and writes the result as RGBA into LightmapData.
func (s *Surface) BuildLightmap(styles *LightStyles, frame int, lights []DynamicLight, overbright bool) {
	smax, tmax := s.LightmapExtents()
	size := smax * tmax
	if len(s.LightmapData) < size*4 {
		s.LightmapData = make([]byte, size*4)
	}
	for b := range blockLights[:size*3] {
		blockLights[b] = 0
	}
	if len(s.Samples) != 0 {
		lightmap := s.Samples
		for m, style := range s.Styles {
			if style == 0xff {
				break
			}
			scale := styles[style]
			s.CachedLight[m] = scale // 8.8 fraction
			for i := 0; i < size*3; i++ {
				blockLights[i] += uint32(lightmap[i]) * uint32(scale)
			}
			lightmap = lightmap[size*3:]
		}
	}
	if s.DLightFrame == frame {
		s.addDynamicLights(lights)
	}

	shift := uint(7)
	if overbright {
		shift = 8
	}
	dst := 0
	src := 0
	for i := 0; i < size; i++ {
		s.LightmapData[dst] = clampColor(blockLights[src] >> shift)
		s.LightmapData[dst+1] = clampColor(blockLights[src+1] >> shift)
		s.LightmapData[dst+2] = clampColor(blockLights[src+2] >> shift)
		s.LightmapData[dst+3] = 255
		dst += 4
		src += 3
	}
}

func (s *Surface) addDynamicLights(lights []DynamicLight) {
	smax, tmax := s.LightmapExtents()
	tex := s.TexInfo
	for i, l := range lights {
		if s.DLightBits&(1<<uint(i)) == 0 {
			continue
		}
		rad := l.Radius()
		dist := l.Origin().Dot(s.Plane.Normal) - s.Plane.Dist
		rad -= math32.Abs(dist)
		minLight := l.MinLight()
		if rad < minLight {
			continue
		}
		minLight = rad - minLight
		impact := l.Origin().Sub(s.Plane.Normal.Mul(dist))
		var local [2]float32
		for st := 0; st < 2; st++ {
			v := mgl32.Vec3{tex.Vecs[st][0], tex.Vecs[st][1], tex.Vecs[st][2]}
			local[st] = impact.Dot(v) + tex.Vecs[st][3] - float32(s.TextureMins[st])
		}
		r := l.Color()[0] * 256
		g := l.Color()[1] * 256
		b := l.Color()[2] * 256
		bidx := 0
		for t := 0; t < tmax; t++ {
			td := math32.Abs(local[1] - float32(t*16))
			for sc := 0; sc < smax; sc++ {
				sd := math32.Abs(local[0] - float32(sc*16))
				var dist float32
				if sd > td {
					dist = sd + td/2
				} else {
					dist = td + sd/2
				}
				if dist < minLight {
					bright := rad - dist
					blockLights[bidx] += uint32(bright * r)
					blockLights[bidx+1] += uint32(bright * g)
					blockLights[bidx+2] += uint32(bright * b)
				}
				bidx += 3
			}
		}
	}
}
