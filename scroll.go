package tubefall

import "math"

type ScrollConfig struct {
	Acceleration  float64 `yaml:"acceleration"`
	MaxVelocity   float64 `yaml:"maxVelocity"`
	Friction      float64 `yaml:"friction"`
	StopThreshold float64 `yaml:"stopThreshold"`
	Smoothing     float64 `yaml:"smoothing"`
}

func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{
		Acceleration:  0.00007,
		MaxVelocity:   0.05,
		Friction:      0.95,
		StopThreshold: 0.0001,
		Smoothing:     0.1,
	}
}

type ScrollState struct {
	Velocity float64
	Progress float64
}

// ScrollIntegrator turns wheel deltas into a smoothed progress in [0,1]
// with inertia.
type ScrollIntegrator struct {
	cfg      ScrollConfig
	velocity float64
	target   float64
	progress float64
}

func NewScrollIntegrator(cfg ScrollConfig) *ScrollIntegrator {
	return &ScrollIntegrator{cfg: cfg}
}

func (s *ScrollIntegrator) ApplyDelta(raw float64) {
	s.velocity += raw * s.cfg.Acceleration
	s.velocity = clampFloat(s.velocity, -s.cfg.MaxVelocity, s.cfg.MaxVelocity)
}

func (s *ScrollIntegrator) Tick() {
	s.target += s.velocity
	s.velocity *= s.cfg.Friction
	if math.Abs(s.velocity) < s.cfg.StopThreshold {
		s.velocity = 0
	}
	s.target = clampFloat(s.target, 0, 1)
	s.progress += (s.target - s.progress) * s.cfg.Smoothing
	s.progress = clampFloat(s.progress, 0, 1)
}

func (s *ScrollIntegrator) State() ScrollState {
	return ScrollState{Velocity: s.velocity, Progress: s.progress}
}
