// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// twoLeafModel builds the smallest useful tree: one splitting plane at x=0
// with a front leaf (cluster 0) and a back leaf (cluster 1).
func twoLeafModel() *Model {
	plane := &Plane{Normal: mgl32.Vec3{1, 0, 0}, Dist: 0, Type: 0}
	front := &MLeaf{
		NodeBase: NewNodeBase(0, 0, [6]float32{0, -64, -64, 64, 64, 64}),
		Cluster:  0,
	}
	back := &MLeaf{
		NodeBase: NewNodeBase(0, 0, [6]float32{-64, -64, -64, 0, 64, 64}),
		Cluster:  1,
	}
	root := &MNode{
		NodeBase: NewNodeBase(ContentsNode, 0, [6]float32{-64, -64, -64, 64, 64, 64}),
		Plane:    plane,
		Children: [2]Node{front, back},
	}
	m := &Model{
		Planes: []*Plane{plane},
		Nodes:  []*MNode{root},
		Leafs:  []*MLeaf{front, back},
		Node:   root,
	}
	m.SetName("maps/twoleaf.bsp")
	m.SetType(ModBrush)
	SetParents(m.Node, nil)
	return m
}

func TestPointInLeaf(t *testing.T) {
	m := twoLeafModel()
	front := m.Leafs[0]
	back := m.Leafs[1]

	cases := []struct {
		name  string
		point mgl32.Vec3
		want  *MLeaf
	}{
		{"front", mgl32.Vec3{16, 0, 0}, front},
		{"back", mgl32.Vec3{-16, 0, 0}, back},
		{"on plane resolves front", mgl32.Vec3{0, 0, 0}, front},
		{"outside bounds still terminates", mgl32.Vec3{4096, 4096, 4096}, front},
	}
	for _, tc := range cases {
		got, err := m.PointInLeaf(tc.point)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: got cluster %d, want cluster %d", tc.name, got.Cluster, tc.want.Cluster)
		}
		// repeated classification of the same point is idempotent
		again, err := m.PointInLeaf(tc.point)
		if err != nil || again != got {
			t.Errorf("%s: second call differs", tc.name)
		}
	}
}

func TestPointInLeafBadModel(t *testing.T) {
	sprite := &Model{}
	sprite.SetType(ModSprite)
	if _, err := sprite.PointInLeaf(mgl32.Vec3{}); err == nil {
		t.Error("expected error for model without nodes")
	}
	var nilModel *Model
	if _, err := nilModel.PointInLeaf(mgl32.Vec3{}); err == nil {
		t.Error("expected error for nil model")
	}
}

func TestVisDecompress(t *testing.T) {
	m := Model{
		Leafs: make([]*MLeaf, 12*8),
	}
	in := []byte{0x7, 0x0, 0x5, 0x5, 0x0, 0x3, 0x1, 0x1}
	got := m.DecompressVis(in, 12)
	want := []byte{0x7, 0x0, 0x0, 0x0, 0x0, 0x0, 0x5, 0x0, 0x0, 0x0, 0x1, 0x1}
	if !bytes.Equal(got, want) {
		t.Errorf("Decompress(%v) = %v, want %v", in, got, want)
	}
}

func TestClusterPVS(t *testing.T) {
	m := twoLeafModel()
	m.Vis = &Vis{
		NumClusters: 2,
		BitOfs:      []int32{0, 1},
		Data:        []byte{0x3, 0x1},
	}
	if got := m.ClusterPVS(0); got[0] != 0x3 {
		t.Errorf("ClusterPVS(0)[0] = %#x, want 0x3", got[0])
	}
	if got := m.ClusterPVS(1); got[0] != 0x1 {
		t.Errorf("ClusterPVS(1)[0] = %#x, want 0x1", got[0])
	}
	if got := m.ClusterPVS(-1); got[0] != 0xff {
		t.Errorf("ClusterPVS(-1)[0] = %#x, want all visible", got[0])
	}
	if got := m.LeafPVS(m.Leafs[1]); got[0] != 0x1 {
		t.Errorf("LeafPVS(back)[0] = %#x, want 0x1", got[0])
	}
}

func TestClusterPVSNoVisData(t *testing.T) {
	m := twoLeafModel()
	row := (len(m.Leafs) + 7) / 8
	got := m.ClusterPVS(0)
	if len(got) != row {
		t.Fatalf("row length = %d, want %d", len(got), row)
	}
	for i, b := range got {
		if b != 0xff {
			t.Errorf("byte %d = %#x, want 0xff", i, b)
		}
	}
}

func TestSetParents(t *testing.T) {
	m := twoLeafModel()
	root := m.Nodes[0]
	if root.Parent() != nil {
		t.Error("root parent should be nil")
	}
	if m.Leafs[0].Parent() != root || m.Leafs[1].Parent() != root {
		t.Error("leaf parents not set to root")
	}
}

func TestEmptyGeometry(t *testing.T) {
	m := &Model{}
	if !m.EmptyGeometry() {
		t.Error("model without edges should be empty")
	}
	m.Edges = []*MEdge{{}}
	if m.EmptyGeometry() {
		t.Error("model with edges should not be empty")
	}
}
