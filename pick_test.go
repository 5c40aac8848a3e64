package tubefall

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pickWidth, pickHeight = 800, 600

func pickCamera() *Camera {
	cam := NewCamera(90)
	cam.SetPose(CameraPose{Position: mgl64.Vec3{0, 0, 5}, LookAt: mgl64.Vec3{0, 0, 0}})
	return cam
}

func taggedQuad(name string) *Model {
	q := NewQuad(name, 2, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	q.Tag = TagPopUp
	return q
}

func TestResolveClick(t *testing.T) {
	testCases := []struct {
		name    string
		build   func(w *World) *Model
		x, y    float64
		wantHit bool
	}{
		{
			name: "hit visible pop-up",
			build: func(w *World) *Model {
				q := taggedQuad("popUp")
				w.AddObject(q)
				return q
			},
			x: 400, y: 300,
			wantHit: true,
		},
		{
			name: "miss",
			build: func(w *World) *Model {
				w.AddObject(taggedQuad("popUp"))
				return nil
			},
			x: 5, y: 5,
		},
		{
			name: "hidden pop-up does not accept clicks",
			build: func(w *World) *Model {
				q := taggedQuad("popUp")
				q.Visible = false
				w.AddObject(q)
				return nil
			},
			x: 400, y: 300,
		},
		{
			name: "untagged geometry is not a target",
			build: func(w *World) *Model {
				w.AddObject(NewQuad("wall", 2, 1, color.RGBA{A: 255}))
				return nil
			},
			x: 400, y: 300,
		},
		{
			name: "child geometry resolves to tagged ancestor",
			build: func(w *World) *Model {
				group := NewGroup("popUpGroup")
				group.Tag = TagPopUp
				inner := NewGroup("inner")
				inner.Add(NewQuad("panel", 2, 1, color.RGBA{A: 255}))
				group.Add(inner)
				w.AddObject(group)
				return group
			},
			x: 400, y: 300,
			wantHit: true,
		},
		{
			name: "nearer untagged hit is passed over",
			build: func(w *World) *Model {
				wall := NewQuad("glass", 4, 4, color.RGBA{A: 255})
				wall.Position = mgl64.Vec3{0, 0, 2}
				w.AddObject(wall)
				q := taggedQuad("popUp")
				w.AddObject(q)
				return q
			},
			x: 400, y: 300,
			wantHit: true,
		},
		{
			name: "off-centre click on the pop-up",
			build: func(w *World) *Model {
				q := taggedQuad("popUp")
				q.Position = mgl64.Vec3{1, 0.5, 0}
				w.AddObject(q)
				return q
			},
			// focal 300, one unit right at distance 5 is 60 pixels
			x: 460, y: 270,
			wantHit: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld("room")
			want := tc.build(w)

			got, ok := ResolveClick(tc.x, tc.y, pickWidth, pickHeight, pickCamera(), w)
			assert.Equal(t, tc.wantHit, ok)
			if tc.wantHit {
				assert.Same(t, want, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestResolveClickWithoutViewport(t *testing.T) {
	w := NewWorld("room")
	w.AddObject(taggedQuad("popUp"))

	_, ok := ResolveClick(0, 0, 0, 0, pickCamera(), w)
	assert.False(t, ok)
}

func TestCastRayOrdersHitsNearestFirst(t *testing.T) {
	w := NewWorld("room")
	far := NewQuad("far", 2, 2, color.RGBA{A: 255})
	far.Position = mgl64.Vec3{0, 0, -3}
	near := NewQuad("near", 2, 2, color.RGBA{A: 255})
	near.Position = mgl64.Vec3{0, 0, 1}
	hidden := NewQuad("hidden", 2, 2, color.RGBA{A: 255})
	hidden.Visible = false
	w.AddObject(far)
	w.AddObject(hidden)
	w.AddObject(near)

	hits := w.CastRay(Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}})
	require.Len(t, hits, 3)
	assert.Equal(t, "near", hits[0].Model.Name)
	assert.Equal(t, "hidden", hits[1].Model.Name)
	assert.Equal(t, "far", hits[2].Model.Name)
	assert.InDelta(t, 4, hits[0].Distance, 1e-9)
	assertVecNear(t, mgl64.Vec3{0, 0, 1}, hits[0].Point, 1e-9)
}

func TestRayIntersectsPolygon(t *testing.T) {
	square := []mgl64.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}

	testCases := []struct {
		name   string
		ray    Ray
		wantOK bool
		wantT  float64
	}{
		{"straight on", Ray{mgl64.Vec3{0, 0, 3}, mgl64.Vec3{0, 0, -1}}, true, 3},
		{"from behind", Ray{mgl64.Vec3{0.5, 0.5, -2}, mgl64.Vec3{0, 0, 1}}, true, 2},
		{"outside the edges", Ray{mgl64.Vec3{2, 0, 3}, mgl64.Vec3{0, 0, -1}}, false, 0},
		{"pointing away", Ray{mgl64.Vec3{0, 0, 3}, mgl64.Vec3{0, 0, 1}}, false, 0},
		{"parallel", Ray{mgl64.Vec3{0, 0, 3}, mgl64.Vec3{1, 0, 0}}, false, 0},
		{"unnormalised direction", Ray{mgl64.Vec3{0, 0, 3}, mgl64.Vec3{0, 0, -10}}, true, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := RayIntersectsPolygon(tc.ray, square)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.InDelta(t, tc.wantT, d, 1e-9)
			}
		})
	}
}
