package tubefall

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestScriptedInputReplaysFrames(t *testing.T) {
	click := &ScreenPoint{X: 10, Y: 20}
	in := NewScriptedInput(
		InputFrame{ScrollDelta: 100, Pointer: PointerState{X: 0.5, Y: -0.5}},
		InputFrame{Click: click, Pointer: PointerState{X: 0.25}},
	)
	assert.Equal(t, 2, in.Remaining())

	assert.Equal(t, 100.0, in.Poll(800, 600).ScrollDelta)
	assert.Same(t, click, in.Poll(800, 600).Click)
	assert.Equal(t, 0, in.Remaining())

	// once drained the pointer stays where it was
	idle := in.Poll(800, 600)
	assert.Equal(t, InputFrame{Pointer: PointerState{X: 0.25}}, idle)

	in.Push(InputFrame{DragX: 3})
	assert.Equal(t, 1, in.Remaining())
	assert.Equal(t, 3.0, in.Poll(800, 600).DragX)
}

func TestScreenToNDC(t *testing.T) {
	testCases := []struct {
		name       string
		x, y       float64
		ndcX, ndcY float64
	}{
		{"centre", 400, 300, 0, 0},
		{"top left", 0, 0, -1, 1},
		{"bottom right", 800, 600, 1, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := ScreenToNDC(tc.x, tc.y, 800, 600)
			assert.InDelta(t, tc.ndcX, x, 1e-12)
			assert.InDelta(t, tc.ndcY, y, 1e-12)
		})
	}
}

func TestProjectMatchesRay(t *testing.T) {
	cam := NewCamera(75)
	cam.SetPose(CameraPose{Position: mgl64.Vec3{1, 2, 3}, LookAt: mgl64.Vec3{0, 0, -4}})

	ray := cam.Ray(0.3, -0.2, 800.0/600.0)
	p := ray.Origin.Add(ray.Direction.Normalize().Mul(5))

	sp, ok := cam.Project(p, 800, 600)
	assert.True(t, ok)
	x, y := ScreenToNDC(sp.X, sp.Y, 800, 600)
	assert.InDelta(t, 0.3, x, 1e-4)
	assert.InDelta(t, -0.2, y, 1e-4)

	behind := cam.Position().Sub(ray.Direction)
	_, ok = cam.Project(behind, 800, 600)
	assert.False(t, ok)
}
