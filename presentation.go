package tubefall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type PopUpConfig struct {
	ShowDistance   float64 `yaml:"showDistance"`
	FloatAmplitude float64 `yaml:"floatAmplitude"`
	FloatSpeed     float64 `yaml:"floatSpeed"`
}

func DefaultPopUpConfig() PopUpConfig {
	return PopUpConfig{
		ShowDistance:   1.5,
		FloatAmplitude: 0.1,
		FloatSpeed:     1.5,
	}
}

// PopUpPresentation is the pop-up's per-tick look.
type PopUpPresentation struct {
	Visible bool
	Offset  mgl64.Vec3
}

// HorizontalDistance is the distance from the scene origin in the XZ plane.
func HorizontalDistance(p mgl64.Vec3) float64 {
	return math.Hypot(p.X(), p.Z())
}

// ComputePopUpPresentation shows the pop-up while the camera stands close
// to the middle of the room and bobs it on a sine wave. It depends only on
// its arguments.
func ComputePopUpPresentation(cfg PopUpConfig, camera mgl64.Vec3, elapsed float64) PopUpPresentation {
	if HorizontalDistance(camera) >= cfg.ShowDistance {
		return PopUpPresentation{}
	}
	return PopUpPresentation{
		Visible: true,
		Offset:  mgl64.Vec3{0, math.Sin(elapsed*cfg.FloatSpeed) * cfg.FloatAmplitude, 0},
	}
}

func (p PopUpPresentation) ApplyTo(m *Model) {
	if m == nil {
		return
	}
	m.Visible = p.Visible
	m.Offset = p.Offset
}
