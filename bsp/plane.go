// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/go-gl/mathgl/mgl32"

	"q2ref/logger"
)

// PointDistance returns the signed distance of p to the plane, using the
// axial fast path when the plane type allows it.
func (p *Plane) PointDistance(point mgl32.Vec3) float32 {
	if p.Type < 3 {
		return point[int(p.Type)] - p.Dist
	}
	return p.Normal.Dot(point) - p.Dist
}

func (p *Plane) BoxOnPlaneSide(mins, maxs mgl32.Vec3) int {
	if p.Type < 3 {
		if p.Dist <= mins[int(p.Type)] {
			return SideFront
		}
		if p.Dist >= maxs[int(p.Type)] {
			return SideBack
		}
		return SideCross
	}
	d1, d2 := func() (float32, float32) {
		n := p.Normal
		switch p.SignBits {
		case 0:
			d1 := n[0]*maxs[0] + n[1]*maxs[1] + n[2]*maxs[2]
			d2 := n[0]*mins[0] + n[1]*mins[1] + n[2]*mins[2]
			return d1, d2
		case 1:
			d1 := n[0]*mins[0] + n[1]*maxs[1] + n[2]*maxs[2]
			d2 := n[0]*maxs[0] + n[1]*mins[1] + n[2]*mins[2]
			return d1, d2
		case 2:
			d1 := n[0]*maxs[0] + n[1]*mins[1] + n[2]*maxs[2]
			d2 := n[0]*mins[0] + n[1]*maxs[1] + n[2]*mins[2]
			return d1, d2
		case 3:
			d1 := n[0]*mins[0] + n[1]*mins[1] + n[2]*maxs[2]
			d2 := n[0]*maxs[0] + n[1]*maxs[1] + n[2]*mins[2]
			return d1, d2
		case 4:
			d1 := n[0]*maxs[0] + n[1]*maxs[1] + n[2]*mins[2]
			d2 := n[0]*mins[0] + n[1]*mins[1] + n[2]*maxs[2]
			return d1, d2
		case 5:
			d1 := n[0]*mins[0] + n[1]*maxs[1] + n[2]*mins[2]
			d2 := n[0]*maxs[0] + n[1]*mins[1] + n[2]*maxs[2]
			return d1, d2
		case 6:
			d1 := n[0]*maxs[0] + n[1]*mins[1] + n[2]*mins[2]
			d2 := n[0]*mins[0] + n[1]*maxs[1] + n[2]*maxs[2]
			return d1, d2
		case 7:
			d1 := n[0]*mins[0] + n[1]*mins[1] + n[2]*mins[2]
			d2 := n[0]*maxs[0] + n[1]*maxs[1] + n[2]*maxs[2]
			return d1, d2
		default:
			logger.Fatal("BoxOnPlaneSide: bad signbits")
			return 0, 0
		}
	}()
	sides := 0
	if d1 >= p.Dist {
		sides = SideFront
	}
	if d2 < p.Dist {
		sides |= SideBack
	}
	return sides
}

// SetSignBits derives the fast-test sign bits from the plane normal.
func (p *Plane) SetSignBits() {
	bits := byte(0)
	for i := 0; i < 3; i++ {
		if p.Normal[i] < 0 {
			bits |= 1 << i
		}
	}
	p.SignBits = bits
}

// CullBox reports whether the box is fully behind one of the frustum planes.
func CullBox(frustum []*Plane, mins, maxs mgl32.Vec3) bool {
	for _, p := range frustum {
		if p.BoxOnPlaneSide(mins, maxs) == SideBack {
			return true
		}
	}
	return false
}
