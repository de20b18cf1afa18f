// SPDX-License-Identifier: GPL-2.0-or-later

// Package render holds the per-frame, renderer-local state: visibility
// marking, frustum culling and the surface batching chains. Nothing in here
// is persisted on the models; every structure is rebuilt or re-stamped each
// visible frame.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"q2ref/bsp"
	"q2ref/cvar"
	"q2ref/cvars"
)

// Refresh tracks the frame counters and the view leaf across frames for one
// world model.
type Refresh struct {
	world *bsp.Model

	frameCount    int
	visFrameCount int

	viewLeaf    *bsp.MLeaf
	oldViewLeaf *bsp.MLeaf

	visChanged bool

	frustum []*bsp.Plane
}

func NewRefresh(world *bsp.Model) *Refresh {
	r := &Refresh{
		world:         world,
		frameCount:    1,
		visFrameCount: 1,
	}
	cvars.RNoVis.SetCallback(func(*cvar.Cvar) {
		r.visChanged = true
	})
	return r
}

// BeginFrame advances the frame counter. Surfaces keep their stamps from
// earlier frames; only equality with the current counter makes them count.
func (r *Refresh) BeginFrame() {
	r.frameCount++
}

func (r *Refresh) FrameCount() int {
	return r.frameCount
}

func (r *Refresh) VisFrameCount() int {
	return r.visFrameCount
}

func (r *Refresh) ViewLeaf() *bsp.MLeaf {
	return r.viewLeaf
}

// SetFrustum installs the view frustum planes used by CullBox.
func (r *Refresh) SetFrustum(planes []*bsp.Plane) {
	r.frustum = planes
}

// CullBox reports whether a box is fully outside the view frustum.
func (r *Refresh) CullBox(mins, maxs mgl32.Vec3) bool {
	return bsp.CullBox(r.frustum, mins, maxs)
}

// MarkLeaves stamps the leafs, nodes and surfaces the current view
// position's PVS can reach. Stamping compares against visFrameCount instead
// of clearing flags, so an unchanged view cluster costs nothing.
func (r *Refresh) MarkLeaves(viewOrg mgl32.Vec3) error {
	leaf, err := r.world.PointInLeaf(viewOrg)
	if err != nil {
		return err
	}
	r.oldViewLeaf = r.viewLeaf
	r.viewLeaf = leaf

	if cvars.RLockPVS.Bool() {
		return nil
	}
	sameCluster := r.oldViewLeaf != nil && r.oldViewLeaf.Cluster == r.viewLeaf.Cluster
	if sameCluster && !r.visChanged {
		return nil
	}
	r.visChanged = false
	r.visFrameCount++

	var vis []byte
	if cvars.RNoVis.Bool() || r.viewLeaf.Cluster == -1 {
		vis = bsp.NoVis
	} else {
		vis = r.world.LeafPVS(r.viewLeaf)
	}

	for _, lf := range r.world.Leafs {
		c := lf.Cluster
		if c < 0 || c>>3 >= len(vis) {
			continue
		}
		if vis[c>>3]&(1<<uint(c&7)) == 0 {
			continue
		}
		lf.SetVisFrame(r.visFrameCount)
		for _, ms := range lf.MarkSurfaces {
			ms.VisFrame = r.visFrameCount
		}
		for n := lf.Parent(); n != nil && n.VisFrame() != r.visFrameCount; n = n.Parent() {
			n.SetVisFrame(r.visFrameCount)
		}
	}
	return nil
}

// PushDLights stamps the surfaces touched by this frame's dynamic lights so
// BuildLightmap picks them up.
func (r *Refresh) PushDLights(lights []bsp.DynamicLight) {
	if !cvars.RDynamic.Bool() {
		return
	}
	for i, l := range lights {
		r.markLight(l, uint32(1)<<uint(i), r.world.Node)
	}
}

func (r *Refresh) markLight(l bsp.DynamicLight, bit uint32, node bsp.Node) {
	if node == nil || node.Contents() != bsp.ContentsNode {
		return
	}
	n := node.(*bsp.MNode)
	dist := n.Plane.PointDistance(l.Origin())
	if dist > l.Radius() {
		r.markLight(l, bit, n.Children[0])
		return
	}
	if dist < -l.Radius() {
		r.markLight(l, bit, n.Children[1])
		return
	}
	for _, s := range n.Surfaces {
		if s.DLightFrame != r.frameCount {
			s.DLightFrame = r.frameCount
			s.DLightBits = bit
		} else {
			s.DLightBits |= bit
		}
	}
	r.markLight(l, bit, n.Children[0])
	r.markLight(l, bit, n.Children[1])
}
