// SPDX-License-Identifier: GPL-2.0-or-later

// refworld is a development harness for the model registry: it loads a
// synthetic two-room world, runs point classification and a visibility
// pass, and prints what the renderer would batch.
package main

import (
	"flag"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"q2ref/bsp"
	"q2ref/config"
	"q2ref/cvars"
	"q2ref/logger"
	"q2ref/model"
	"q2ref/render"
	"q2ref/texture"
)

// loadDemoWorld stands in for the BSP file parser: one splitting plane at
// x=0, two leaf rooms with one wall surface each, and vis data where the
// front room sees only itself while the back room sees both.
func loadDemoWorld(m *bsp.Model, name string) error {
	plane := &bsp.Plane{Normal: mgl32.Vec3{1, 0, 0}, Dist: 0, Type: 0}

	wallTex := &bsp.TexInfo{
		Vecs:  [2][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}},
		Image: texture.NewTexture(64, 64, texture.TexPrefMipMap, "e1u1/wall", texture.ColorTypeIndexed, nil),
	}
	s0 := &bsp.Surface{Plane: plane, TexInfo: wallTex, Extents: [2]int16{16, 16}}
	s1 := &bsp.Surface{Plane: plane, TexInfo: wallTex, Extents: [2]int16{16, 16}, LightmapTextureNum: 1}

	front := &bsp.MLeaf{
		NodeBase:     bsp.NewNodeBase(0, 0, [6]float32{0, -128, -128, 128, 128, 128}),
		Cluster:      0,
		MarkSurfaces: []*bsp.Surface{s0},
	}
	back := &bsp.MLeaf{
		NodeBase:     bsp.NewNodeBase(0, 0, [6]float32{-128, -128, -128, 0, 128, 128}),
		Cluster:      1,
		MarkSurfaces: []*bsp.Surface{s1},
	}
	root := &bsp.MNode{
		NodeBase: bsp.NewNodeBase(bsp.ContentsNode, 0, [6]float32{-128, -128, -128, 128, 128, 128}),
		Plane:    plane,
		Children: [2]bsp.Node{front, back},
		Surfaces: []*bsp.Surface{s0, s1},
	}

	visData, err := m.Hunk.Alloc(2)
	if err != nil {
		return err
	}
	visData[0] = 0x1 // front room sees itself
	visData[1] = 0x3 // back room sees both

	m.Planes = []*bsp.Plane{plane}
	m.Leafs = []*bsp.MLeaf{front, back}
	m.Nodes = []*bsp.MNode{root}
	m.Surfaces = []*bsp.Surface{s0, s1}
	m.TexInfos = []*bsp.TexInfo{wallTex}
	m.Submodels = []*bsp.Submodel{{}, {Radius: 64, FirstFace: 1, FaceCount: 1}}
	m.Node = root
	m.Vis = &bsp.Vis{NumClusters: 2, BitOfs: []int32{0, 1}, Data: visData}
	m.SetMins(mgl32.Vec3{-128, -128, -128})
	m.SetMaxs(mgl32.Vec3{128, 128, 128})
	bsp.SetParents(m.Node, nil)
	return nil
}

func main() {
	configPath := flag.String("config", "", "refresh config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init("info", "")
		logger.Fatal("config", zap.Error(err))
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	if cfg.Render.NoVis {
		cvars.RNoVis.SetValue(1)
	}
	if cfg.Render.LockPVS {
		cvars.RLockPVS.SetValue(1)
	}
	if !cfg.Render.Dynamic {
		cvars.RDynamic.SetValue(0)
	}

	registry := model.New(
		model.WithCapacity(cfg.Registry.MaxModels),
		model.WithHunkSize(cfg.Registry.HunkSizeMB<<20),
		model.WithWorldHunkSize(cfg.Registry.WorldHunkMB<<20),
	)
	defer registry.Shutdown()
	registry.Register(bsp.ModBrush, loadDemoWorld)

	world, err := registry.LoadWorld("maps/demo.bsp")
	if err != nil {
		logger.Fatal("load world", zap.Error(err))
	}
	logger.Info("registry",
		zap.Int("live", registry.Live()),
		zap.Int("capacity", registry.Capacity()),
		zap.Int("hunk_used", world.Hunk.Used()))

	inline, err := registry.FindOrLoad("*1", bsp.ModBrush)
	if err != nil {
		logger.Fatal("inline model", zap.Error(err))
	}
	logger.Info("inline piece", zap.String("name", inline.Name()), zap.Float32("radius", inline.Radius))

	refresh := render.NewRefresh(world)
	viewpoints := []mgl32.Vec3{
		{32, 0, 0},  // front room
		{48, 16, 0}, // same cluster, marking stays cached
		{-32, 0, 0}, // back room
	}
	for _, org := range viewpoints {
		refresh.BeginFrame()
		leaf, err := world.PointInLeaf(org)
		if err != nil {
			logger.Fatal("point classification", zap.Error(err))
		}
		if err := refresh.MarkLeaves(org); err != nil {
			logger.Fatal("mark leaves", zap.Error(err))
		}
		chains := render.BuildChains(world, refresh.VisFrameCount(), 0)
		logger.Info("frame",
			zap.Int("frame", refresh.FrameCount()),
			zap.Int("cluster", leaf.Cluster),
			zap.Int("visible_surfaces", chains.Len()),
			zap.Int("lightmaps", len(chains.Lightmaps())))
	}

	if len(registry.Stale()) != 0 {
		logger.Warn("stale models left over", zap.Int("count", len(registry.Stale())))
		os.Exit(1)
	}
}
