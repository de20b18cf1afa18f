// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/go-gl/mathgl/mgl32"

	"q2ref/hunk"
	"q2ref/texture"
)

// Contents of an interior node. Leafs carry a non-negative contents mask.
const ContentsNode = -1

const (
	SurfaceNone           = 1 << iota
	SurfacePlaneBack      // 0x0002
	SurfaceDrawSky        // 0x0004
	SurfaceDrawSprite     // 0x0008
	SurfaceDrawTurb       // 0x0010
	SurfaceDrawTiled      // 0x0020
	SurfaceDrawBackground // 0x0040
	SurfaceUnderWater     // 0x0080
)

const (
	// Plane sides as returned by BoxOnPlaneSide.
	SideFront = 1
	SideBack  = 2
	SideCross = 3
)

const (
	MaxMapLeafs = 65536
	MaxSkins    = 32
	// xyz plus two texture coordinate pairs per poly vertex.
	PolyVertexSize = 7
)

// ModType tags what kind of data a Model carries.
type ModType int

const (
	ModBrush ModType = 1 << (iota + 1)
	ModSprite
	ModEntity
)

type Plane struct {
	Normal   mgl32.Vec3
	Dist     float32
	Type     byte // 0-2 axial, 3+ non axial
	SignBits byte
}

// NodeBase is the header shared by interior nodes and leafs. A traversal may
// read Contents before knowing which of the two it holds.
type NodeBase struct {
	contents int // ContentsNode to differentiate from leafs
	visFrame int // node needs to be traversed if current

	// for bounding box culling
	minMaxs [6]float32

	parent *MNode
}

func NewNodeBase(contents, visframe int, minmax [6]float32) NodeBase {
	return NodeBase{
		contents: contents,
		visFrame: visframe,
		minMaxs:  minmax,
	}
}

type Node interface {
	Contents() int
}

func (n *NodeBase) Contents() int {
	return n.contents
}

func (n *NodeBase) VisFrame() int {
	return n.visFrame
}

func (n *NodeBase) SetVisFrame(f int) {
	n.visFrame = f
}

func (n *NodeBase) Parent() *MNode {
	return n.parent
}

func (n *NodeBase) SetParent(p *MNode) {
	n.parent = p
}

func (n *NodeBase) Bounds() (mins, maxs mgl32.Vec3) {
	return mgl32.Vec3{n.minMaxs[0], n.minMaxs[1], n.minMaxs[2]},
		mgl32.Vec3{n.minMaxs[3], n.minMaxs[4], n.minMaxs[5]}
}

type MNode struct {
	NodeBase
	Plane    *Plane
	Children [2]Node
	// faces lying on the splitting plane, a view into Model.Surfaces
	Surfaces []*Surface
}

type MLeaf struct {
	NodeBase
	Cluster int
	Area    int
	// surfaces bounding this leaf, views into Model.Surfaces
	MarkSurfaces []*Surface
}

type MVertex struct {
	Position mgl32.Vec3
}

type MEdge struct {
	V [2]uint16 // vertex numbers
	// screen-space projection memo, maintained by the renderer per frame
	CachedEdgeOffset uint32
}

type TexInfo struct {
	// [s|t][xyz offset]
	Vecs  [2][4]float32
	Flags uint32
	Image *texture.Texture

	// animation ring, nil for static textures
	anim    []*TexInfo
	animPos int
}

type PolyVert struct {
	Pos    mgl32.Vec3
	S, T   float32
	LightS float32
	LightT float32
}

// MaxPolyVerts bounds the live vertex count of a Poly. Storage is pre-sized
// to the worst case so polys never allocate during a frame.
const MaxPolyVerts = 4

type Poly struct {
	Next     *Poly // multiple if warped
	Flags    int
	NumVerts int
	Verts    [MaxPolyVerts]PolyVert
}

type Surface struct {
	VisFrame int // should be drawn when node is crossed

	Plane *Plane
	Flags int

	FirstEdge int // look up in model.SurfEdges, negative numbers
	NumEdges  int // are backwards edges

	TextureMins [2]int16
	Extents     [2]int16

	LightS, LightT int // lightmap tex coordinates

	Polys   *Poly
	TexInfo *TexInfo

	// dynamic lighting info
	DLightFrame int
	DLightBits  uint32

	LightmapTextureNum int
	Styles             [4]byte
	CachedLight        [4]int // values currently used in lightmap
	Samples            []byte // [numstyles*surfsize]
	LightmapData       []byte
}

type Submodel struct {
	Mins         mgl32.Vec3
	Maxs         mgl32.Vec3
	Origin       mgl32.Vec3
	Radius       float32
	HeadNode     int
	VisLeafCount int
	FirstFace    int
	FaceCount    int
}

// Vis is the loaded shape of the compressed visibility lump: one
// run-length-encoded row per cluster.
type Vis struct {
	NumClusters int
	BitOfs      []int32
	Data        []byte
}

// Model is one loaded model: the world, an inline brush piece, a sprite or
// an entity model. All index fields reference this model's own arrays.
type Model struct {
	name string
	typ  ModType

	FrameCount int
	Flags      int

	// volume occupied by the model graphics
	mins   mgl32.Vec3
	maxs   mgl32.Vec3
	Radius float32

	// solid volume for clipping
	ClipBox  bool
	ClipMins mgl32.Vec3
	ClipMaxs mgl32.Vec3

	// brush model
	FirstModelSurface int
	NumModelSurfaces  int
	Lightmap          int // only for submodels

	Submodels    []*Submodel
	Planes       []*Plane
	Leafs        []*MLeaf
	Vertexes     []*MVertex
	Edges        []*MEdge
	Nodes        []*MNode
	TexInfos     []*TexInfo
	Surfaces     []*Surface
	SurfEdges    []int32
	MarkSurfaces []*Surface

	Vis       *Vis
	LightData []byte

	// for entity models and skins
	Skins [MaxSkins]*texture.Texture

	// so we know if it is currently referenced by the level being played
	RegistrationSequence int

	// memory hunk backing the model's data
	Hunk *hunk.Hunk

	// root of the BSP tree
	Node Node
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) SetName(n string) {
	m.name = n
}

func (m *Model) Type() ModType {
	return m.typ
}

func (m *Model) SetType(t ModType) {
	m.typ = t
}

func (m *Model) Mins() mgl32.Vec3 {
	return m.mins
}

func (m *Model) Maxs() mgl32.Vec3 {
	return m.maxs
}

func (m *Model) SetMins(v mgl32.Vec3) {
	m.mins = v
}

func (m *Model) SetMaxs(v mgl32.Vec3) {
	m.maxs = v
}

// EmptyGeometry reports whether the model has no polygon area. Consumers
// treat such models as drawable-empty rather than broken.
func (m *Model) EmptyGeometry() bool {
	return len(m.Edges) == 0
}
