package tubefall

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestPopUpVisibilityThreshold(t *testing.T) {
	cfg := DefaultPopUpConfig()
	testCases := []struct {
		name    string
		camera  mgl64.Vec3
		visible bool
	}{
		{"close", mgl64.Vec3{0.5, 1, 0}, true},
		{"close on a diagonal", mgl64.Vec3{0.3, 5, -0.4}, true},
		{"far", mgl64.Vec3{2, 1, 0}, false},
		{"far behind", mgl64.Vec3{0, 1, 3}, false},
		{"exactly on the threshold", mgl64.Vec3{0, 0, 1.5}, false},
		{"height is ignored", mgl64.Vec3{0, 100, 0}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := ComputePopUpPresentation(cfg, tc.camera, 0.3)
			assert.Equal(t, tc.visible, p.Visible)
		})
	}
}

func TestPopUpFloat(t *testing.T) {
	cfg := DefaultPopUpConfig()
	near := mgl64.Vec3{0.5, 1, 0}

	for _, elapsed := range []float64{0, 0.5, 1, 2.5, 10} {
		p := ComputePopUpPresentation(cfg, near, elapsed)
		assert.InDelta(t, math.Sin(elapsed*1.5)*0.1, p.Offset.Y(), 1e-12)
		assert.Zero(t, p.Offset.X())
		assert.Zero(t, p.Offset.Z())
		assert.LessOrEqual(t, math.Abs(p.Offset.Y()), cfg.FloatAmplitude)
	}

	hidden := ComputePopUpPresentation(cfg, mgl64.Vec3{5, 0, 5}, 1)
	assert.Equal(t, PopUpPresentation{}, hidden)
}

func TestPopUpPresentationIsIdempotent(t *testing.T) {
	cfg := DefaultPopUpConfig()
	m := taggedQuad("popUp")
	m.Position = mgl64.Vec3{0.3, 1, -0.5}
	camera := mgl64.Vec3{0.2, 1, 0.4}

	ComputePopUpPresentation(cfg, camera, 0.7).ApplyTo(m)
	first := m.WorldPosition()
	firstVisible := m.Visible

	ComputePopUpPresentation(cfg, camera, 0.7).ApplyTo(m)
	assert.Equal(t, first, m.WorldPosition())
	assert.Equal(t, firstVisible, m.Visible)
	assert.Equal(t, mgl64.Vec3{0.3, 1, -0.5}, m.Position)
}

func TestPopUpHidesAgainWhenCameraLeaves(t *testing.T) {
	cfg := DefaultPopUpConfig()
	m := taggedQuad("popUp")
	m.Visible = false

	ComputePopUpPresentation(cfg, mgl64.Vec3{0, 1, 0.5}, 1).ApplyTo(m)
	assert.True(t, m.Visible)

	ComputePopUpPresentation(cfg, mgl64.Vec3{0, 1, 4}, 1).ApplyTo(m)
	assert.False(t, m.Visible)
	assert.Equal(t, mgl64.Vec3{}, m.Offset)
}
