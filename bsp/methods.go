// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"q2ref/logger"
)

// PointInLeaf walks the tree from the root until it reaches a leaf. A point
// lying exactly on a splitting plane resolves to the front child, so the
// walk is total and deterministic for every point, including ones outside
// the model bounds. Only brush models have a tree; anything else is an
// error.
func (m *Model) PointInLeaf(p mgl32.Vec3) (*MLeaf, error) {
	if m == nil || len(m.Nodes) == 0 || m.Node == nil {
		return nil, errors.New("PointInLeaf: bad model")
	}

	node := m.Node
	for {
		if node.Contents() != ContentsNode {
			return node.(*MLeaf), nil
		}
		n := node.(*MNode)
		d := n.Plane.PointDistance(p)
		if d >= 0 {
			node = n.Children[0]
		} else {
			node = n.Children[1]
		}
	}
}

var (
	NoVis           []byte
	decompressedVis []byte
)

func init() {
	NoVis = bytes.Repeat([]byte{0xff}, MaxMapLeafs/8)
	decompressedVis = make([]byte, MaxMapLeafs/8)
}

// DecompressVis expands one run-length-encoded visibility row into the
// shared scratch buffer. Safe because all traversal happens on the render
// thread.
func (m *Model) DecompressVis(in []byte, row int) []byte {
	if len(in) == 0 {
		// no vis info, so make all visible
		for i := 0; i < row; i++ {
			decompressedVis[i] = 0xff
		}
		return decompressedVis[:row]
	}

	// 'in' is compressed and looks like
	// 70550311
	// and gets uncompressed to
	// 700000500011	(7 5x0 5 3x0 1 1)

	j := 0
	for i := 0; i < len(in); i++ {
		if in[i] != 0 {
			decompressedVis[j] = in[i]
			j++
		} else {
			i++
			if i >= len(in) {
				logger.Warn("faulty vis data in model " + m.Name())
				break
			}
			for c := in[i]; c > 0; c-- {
				decompressedVis[j] = 0
				j++
			}
		}
		if j >= row {
			break
		}
	}
	return decompressedVis[:row]
}

func (m *Model) visRowBytes() int {
	if m.Vis == nil {
		return (len(m.Leafs) + 7) / 8
	}
	return (m.Vis.NumClusters + 7) / 8
}

// ClusterPVS returns the potentially visible set for a cluster. Cluster -1
// (a point in solid space) and models without vis data see everything.
func (m *Model) ClusterPVS(cluster int) []byte {
	row := m.visRowBytes()
	if cluster == -1 || m.Vis == nil {
		return NoVis[:row]
	}
	if cluster < 0 || cluster >= m.Vis.NumClusters {
		logger.Warn("ClusterPVS: cluster out of range in model " + m.Name())
		return NoVis[:row]
	}
	ofs := m.Vis.BitOfs[cluster]
	return m.DecompressVis(m.Vis.Data[ofs:], row)
}

// LeafPVS is ClusterPVS keyed by the leaf's cluster id.
func (m *Model) LeafPVS(leaf *MLeaf) []byte {
	return m.ClusterPVS(leaf.Cluster)
}

// SurfEdgeVerts resolves entry i of the surf-edge table to a vertex pair.
// A negative surf-edge index means the edge is traversed backwards.
func (m *Model) SurfEdgeVerts(i int) (uint16, uint16) {
	se := m.SurfEdges[i]
	if se >= 0 {
		e := m.Edges[se]
		return e.V[0], e.V[1]
	}
	e := m.Edges[-se]
	return e.V[1], e.V[0]
}

// SetParents fills the parent back references below node. Called once after
// the tree is assembled.
func SetParents(node Node, parent *MNode) {
	switch n := node.(type) {
	case *MNode:
		n.SetParent(parent)
		SetParents(n.Children[0], n)
		SetParents(n.Children[1], n)
	case *MLeaf:
		n.SetParent(parent)
	}
}
