// SPDX-License-Identifier: GPL-2.0-or-later

// Package model owns the pool of loaded models: the world, inline brush
// pieces, sprites and entity models. Everything the renderer resolves by
// name goes through the Registry; the pool is fixed size so the memory
// ceiling is known up front.
package model

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"q2ref/bsp"
	"q2ref/crc"
	"q2ref/hunk"
	"q2ref/logger"
)

const MaxModels = 512

const (
	defaultHunkSize      = 4 << 20
	defaultWorldHunkSize = 16 << 20
)

var (
	// ErrExhausted is the resource failure: every pool slot is taken. The
	// pool never grows; production callers treat this as fatal.
	ErrExhausted = errors.New("model pool exhausted")

	// ErrNoLoader is a load failure: no loader handles the requested type.
	ErrNoLoader = errors.New("no loader registered for model type")

	// Usage errors. These mark caller bugs, not asset problems.
	ErrNotPooled = errors.New("model is not a live registry allocation")
	ErrWorldSlot = errors.New("the world model is released by LoadWorld only")
)

// IsUsageError distinguishes caller bugs from data-driven load failures.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrNotPooled) || errors.Is(err, ErrWorldSlot)
}

type slot struct {
	mdl   bsp.Model
	hash  uint16
	inUse bool
}

// Registry is the process-wide model pool with name lookup and the
// exclusive world slot. It is not safe for concurrent use; all calls happen
// on the render thread.
type Registry struct {
	slots   []slot
	loaders map[bsp.ModType]LoadFunc

	world  *bsp.Model
	inline []bsp.Model // submodel instances of the current world

	sequence int

	hunkSize      int
	worldHunkSize int

	allocs int // lifetime allocation count, survives Free
}

type Option func(*Registry)

// WithCapacity overrides the pool size, for constrained targets and tests.
func WithCapacity(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.slots = make([]slot, n)
		}
	}
}

func WithHunkSize(bytes int) Option {
	return func(r *Registry) { r.hunkSize = bytes }
}

func WithWorldHunkSize(bytes int) Option {
	return func(r *Registry) { r.worldHunkSize = bytes }
}

func New(opts ...Option) *Registry {
	r := &Registry{
		slots:         make([]slot, MaxModels),
		loaders:       make(map[bsp.ModType]LoadFunc),
		sequence:      1,
		hunkSize:      defaultHunkSize,
		worldHunkSize: defaultWorldHunkSize,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Alloc claims a free pool slot and returns it zeroed.
func (r *Registry) Alloc() (*bsp.Model, error) {
	for i := range r.slots {
		if r.slots[i].inUse {
			continue
		}
		r.slots[i] = slot{inUse: true}
		r.allocs++
		return &r.slots[i].mdl, nil
	}
	return nil, errors.Wrapf(ErrExhausted, "%d slots", len(r.slots))
}

func (r *Registry) findSlot(m *bsp.Model) *slot {
	for i := range r.slots {
		if &r.slots[i].mdl == m {
			return &r.slots[i]
		}
	}
	return nil
}

// FindOrLoad returns the already loaded model of that name or loads it.
// A cache hit re-stamps the registration sequence and does not touch the
// loader. Names of the form "*n" resolve to inline pieces of the current
// world.
func (r *Registry) FindOrLoad(name string, flags bsp.ModType) (*bsp.Model, error) {
	if name == "" {
		return nil, errors.New("FindOrLoad: empty name")
	}
	if name[0] == '*' {
		return r.inlineModel(name)
	}

	hash := crc.Checksum(name)
	for i := range r.slots {
		s := &r.slots[i]
		if !s.inUse || s.hash != hash || s.mdl.Name() != name {
			continue
		}
		s.mdl.RegistrationSequence = r.sequence
		return &s.mdl, nil
	}

	m, err := r.Alloc()
	if err != nil {
		return nil, err
	}
	s := r.findSlot(m)
	s.hash = hash
	m.SetName(name)

	load, ok := r.loaders[flags]
	if !ok {
		r.release(s)
		return nil, errors.Wrapf(ErrNoLoader, "model %q, type %#x", name, int(flags))
	}
	size := r.hunkSize
	if flags == bsp.ModBrush {
		size = r.worldHunkSize
	}
	m.Hunk = hunk.New(size)
	m.SetType(flags)

	if err := load(m, name); err != nil {
		// no half-loaded models are retained
		r.release(s)
		return nil, errors.Wrapf(err, "loading model %q", name)
	}
	m.RegistrationSequence = r.sequence
	logger.Debug("model loaded",
		zap.String("name", name),
		zap.Int("hunk_used", m.Hunk.Used()))
	return m, nil
}

func (r *Registry) inlineModel(name string) (*bsp.Model, error) {
	if r.world == nil {
		return nil, errors.Errorf("inline model %q without a world", name)
	}
	i, err := strconv.Atoi(name[1:])
	if err != nil || i < 1 || i >= len(r.inline) {
		return nil, errors.Errorf("bad inline model name %q", name)
	}
	return &r.inline[i], nil
}

// LoadWorld installs the level's world model. Exactly one world model is
// resident at a time: a previous world of a different name is freed first,
// the same name is reused without touching the loader. The returned pointer
// stays owned by the registry.
func (r *Registry) LoadWorld(name string) (*bsp.Model, error) {
	r.sequence++

	if r.world != nil {
		if r.world.Name() == name {
			r.world.RegistrationSequence = r.sequence
			for i := range r.inline {
				r.inline[i].RegistrationSequence = r.sequence
			}
			return r.world, nil
		}
		old := r.world
		r.world = nil
		r.inline = nil
		if err := r.Free(old); err != nil {
			return nil, err
		}
	}

	m, err := r.FindOrLoad(name, bsp.ModBrush)
	if err != nil {
		return nil, err
	}
	r.world = m
	r.buildInlineModels()
	logger.Info("world model loaded",
		zap.String("name", name),
		zap.Int("leafs", len(m.Leafs)),
		zap.Int("surfaces", len(m.Surfaces)),
		zap.Int("submodels", len(m.Submodels)))
	return m, nil
}

// buildInlineModels materializes the world's brush-entity pieces. They
// share the world's arrays and hunk, so they are never freed on their own.
func (r *Registry) buildInlineModels() {
	w := r.world
	if len(w.Submodels) < 2 {
		r.inline = nil
		return
	}
	r.inline = make([]bsp.Model, len(w.Submodels))
	for i := 1; i < len(w.Submodels); i++ {
		sub := w.Submodels[i]
		im := *w
		im.SetName(fmt.Sprintf("*%d", i))
		im.FirstModelSurface = sub.FirstFace
		im.NumModelSurfaces = sub.FaceCount
		im.SetMins(sub.Mins)
		im.SetMaxs(sub.Maxs)
		im.Radius = sub.Radius
		if sub.HeadNode >= 0 && sub.HeadNode < len(w.Nodes) {
			im.Node = w.Nodes[sub.HeadNode]
		}
		im.RegistrationSequence = r.sequence
		r.inline[i] = im
	}
}

// World returns the active world model, nil before the first LoadWorld.
func (r *Registry) World() *bsp.Model {
	return r.world
}

// Free releases a model obtained from FindOrLoad and returns its slot to
// the pool. Freeing the world or a pointer the registry does not own is a
// usage error.
func (r *Registry) Free(m *bsp.Model) error {
	if m == nil {
		return errors.Wrap(ErrNotPooled, "nil model")
	}
	if m == r.world {
		return errors.Wrap(ErrWorldSlot, m.Name())
	}
	s := r.findSlot(m)
	if s == nil || !s.inUse {
		return errors.Wrap(ErrNotPooled, m.Name())
	}
	r.release(s)
	return nil
}

func (r *Registry) release(s *slot) {
	if s.mdl.Hunk != nil {
		s.mdl.Hunk.Release()
	}
	*s = slot{}
}

// Sequence is the registration sequence of the current level.
func (r *Registry) Sequence() int {
	return r.sequence
}

// Stale lists live models whose registration predates the current level.
// The registry never sweeps them itself; the owning caller frees them
// during level transitions.
func (r *Registry) Stale() []*bsp.Model {
	var out []*bsp.Model
	for i := range r.slots {
		s := &r.slots[i]
		if !s.inUse || &s.mdl == r.world {
			continue
		}
		if s.mdl.RegistrationSequence != r.sequence {
			out = append(out, &s.mdl)
		}
	}
	return out
}

// Live counts the occupied pool slots.
func (r *Registry) Live() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].inUse {
			n++
		}
	}
	return n
}

func (r *Registry) Capacity() int {
	return len(r.slots)
}

// Allocs is the lifetime allocation count. It keeps counting across Free,
// so it is excluded from pre/post load state comparisons.
func (r *Registry) Allocs() int {
	return r.allocs
}

// Shutdown releases every live model including the world. Safe to call
// more than once.
func (r *Registry) Shutdown() {
	for i := range r.slots {
		if r.slots[i].inUse {
			r.release(&r.slots[i])
		}
	}
	r.world = nil
	r.inline = nil
}
