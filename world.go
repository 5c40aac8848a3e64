package tubefall

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// World is one renderable scene: a root node and everything under it.
type World struct {
	Name string
	Fog  *Fog
	root *Model
}

func NewWorld(name string) *World {
	return &World{
		Name: name,
		root: NewGroup(name),
	}
}

func (w *World) Root() *Model {
	return w.root
}

func (w *World) AddObject(obj *Model) {
	w.root.Add(obj)
}

func (w *World) Find(name string) *Model {
	return w.root.FindByName(name)
}

type paintEntry struct {
	model    *Model
	distance float64
}

// visibleModels returns every model with geometry whose whole ancestor chain
// is visible, paired with its distance to the camera.
func (w *World) visibleModels(cam *Camera) []paintEntry {
	var entries []paintEntry
	var visit func(m *Model, parentWorld *Matrix)
	visit = func(m *Model, parentWorld *Matrix) {
		if !m.Visible {
			return
		}
		world := m.LocalMatrix()
		if parentWorld != nil {
			world = parentWorld.MultiplyBy(world)
		}
		if m.HasGeometry() {
			m.ApplyMatrixTemp(cam.GetMatrix().MultiplyBy(world))
			pos := world.TransformPoint(mgl64.Vec3{})
			entries = append(entries, paintEntry{model: m, distance: pos.Sub(cam.Position()).Len()})
		}
		for _, c := range m.children {
			visit(c, world)
		}
	}
	visit(w.root, nil)
	return entries
}

// PaintObjects transforms every visible model into camera space and paints
// them furthest first. It returns the number of models painted.
func (w *World) PaintObjects(batcher PolygonBatcher, cam *Camera, xsize, ysize int) int {
	entries := w.visibleModels(cam)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].distance > entries[j].distance
	})

	opts := paintOptions{viewport: cam.Viewport(float64(xsize), float64(ysize)), fog: w.Fog}
	for _, e := range entries {
		e.model.paint(batcher, opts)
	}
	return len(entries)
}

// CastRay intersects the world's top-level objects and their descendants.
func (w *World) CastRay(ray Ray) []RayHit {
	return CastRay(ray, w.root.children)
}

// Fog blends colours linearly towards Color between Near and Far.
type Fog struct {
	Color color.RGBA
	Near  float64
	Far   float64
}

// Apply fades c by the camera distance; alpha is kept.
func (f *Fog) Apply(c color.RGBA, distance float64) color.RGBA {
	if f.Far <= f.Near {
		return c
	}
	k := clampFloat((distance-f.Near)/(f.Far-f.Near), 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-k) + float64(b)*k))
	}
	return color.RGBA{R: mix(c.R, f.Color.R), G: mix(c.G, f.Color.G), B: mix(c.B, f.Color.B), A: c.A}
}
