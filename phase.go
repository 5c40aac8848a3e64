package tubefall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Phase int

const (
	PhaseRoom Phase = iota
	PhaseExploding
	PhaseFalling
)

func (p Phase) String() string {
	switch p {
	case PhaseRoom:
		return "Room"
	case PhaseExploding:
		return "Exploding"
	case PhaseFalling:
		return "Falling"
	default:
		return "Unknown"
	}
}

type CameraPose struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
}

// FallState is the camera's parameter along the track once falling.
type FallState struct {
	Progress float64
}

type FallConfig struct {
	Speed          float64 `yaml:"speed"`
	LookAhead      float64 `yaml:"lookAhead"`
	Ceiling        float64 `yaml:"ceiling"`
	LookCeiling    float64 `yaml:"lookCeiling"`
	SmoothDuration float64 `yaml:"smoothDuration"`
	EntryDuration  float64 `yaml:"entryDuration"`
}

func DefaultFallConfig() FallConfig {
	return FallConfig{
		Speed:          0.0007,
		LookAhead:      0.01,
		Ceiling:        0.98,
		LookCeiling:    0.99,
		SmoothDuration: 0.5,
		EntryDuration:  3,
	}
}

// ExplosionTarget is where one room surface ends up after the explosion.
type ExplosionTarget struct {
	Surface  string
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

type ExplosionPlan struct {
	Duration float64
	Targets  []ExplosionTarget
}

// ControlSwitch is the free camera control that Trigger turns off.
type ControlSwitch interface {
	SetEnabled(enabled bool)
}

const (
	cameraPositionKey = "camera.position"
	cameraLookKey     = "camera.lookAt"
)

// PhaseMachine owns the scene phase and the camera pose. Nothing else
// writes either.
type PhaseMachine struct {
	phase Phase
	fall  FallState
	pose  CameraPose

	cfg       FallConfig
	explosion ExplosionPlan
	curve     CurveSampler
	scheduler *Scheduler
	room      *World
	controls  ControlSwitch
	log       Logger

	// OnTransition, when set, is called after every phase change.
	OnTransition func(from, to Phase)
}

func NewPhaseMachine(cfg FallConfig, explosion ExplosionPlan, curve CurveSampler, scheduler *Scheduler, room *World, controls ControlSwitch, logger Logger) *PhaseMachine {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &PhaseMachine{
		phase:     PhaseRoom,
		cfg:       cfg,
		explosion: explosion,
		curve:     curve,
		scheduler: scheduler,
		room:      room,
		controls:  controls,
		log:       logger,
	}
}

func (m *PhaseMachine) Phase() Phase {
	return m.phase
}

func (m *PhaseMachine) Fall() FallState {
	return m.fall
}

func (m *PhaseMachine) Pose() CameraPose {
	return m.pose
}

// ApplyRoomPose sets the camera from the free controls. It is ignored once
// the room has been left.
func (m *PhaseMachine) ApplyRoomPose(pose CameraPose) {
	if m.phase != PhaseRoom {
		return
	}
	m.pose = pose
}

func (m *PhaseMachine) transition(to Phase) {
	from := m.phase
	if from == to {
		return
	}
	m.phase = to
	m.log.Infof("phase %s -> %s", from, to)
	if m.OnTransition != nil {
		m.OnTransition(from, to)
	}
}

// Trigger starts the explosion and the drop into the track. It only acts
// in the room and returns whether it did.
func (m *PhaseMachine) Trigger() bool {
	if m.phase != PhaseRoom {
		m.log.Debugf("trigger ignored in phase %s", m.phase)
		return false
	}

	if m.controls != nil {
		m.controls.SetEnabled(false)
	}
	m.fall = FallState{Progress: 0}
	m.explode()

	start := m.curve.SampleCurve(0).Position
	look := m.curve.SampleCurve(math.Min(m.cfg.LookAhead, m.cfg.LookCeiling)).Position

	m.scheduler.Add(NewVec3Tween(
		func() mgl64.Vec3 { return m.pose.Position },
		func(v mgl64.Vec3) { m.pose.Position = v },
		start, m.cfg.EntryDuration, Power2InOut,
	).WithKey(cameraPositionKey))

	lookTween := NewVec3Tween(
		func() mgl64.Vec3 { return m.pose.LookAt },
		func(v mgl64.Vec3) { m.pose.LookAt = v },
		look, m.cfg.EntryDuration, Power2InOut,
	).WithKey(cameraLookKey)
	lookTween.OnComplete = func() {
		m.transition(PhaseFalling)
	}
	m.scheduler.Add(lookTween)

	m.transition(PhaseExploding)
	return true
}

// explode sends every listed room surface to its target pose. The tweens
// have no key and cannot be cancelled.
func (m *PhaseMachine) explode() {
	if m.room == nil {
		return
	}
	for _, target := range m.explosion.Targets {
		surface := m.room.Find(target.Surface)
		if surface == nil {
			m.log.Warnf("explosion target %q not in scene %s", target.Surface, m.room.Name)
			continue
		}
		m.scheduler.Add(NewVec3Tween(
			func() mgl64.Vec3 { return surface.Position },
			func(v mgl64.Vec3) { surface.Position = v },
			target.Position, m.explosion.Duration, Power2Out,
		))
		m.scheduler.Add(NewVec3Tween(
			func() mgl64.Vec3 { return surface.Rotation },
			func(v mgl64.Vec3) { surface.Rotation = v },
			target.Rotation, m.explosion.Duration, Power2Out,
		))
	}
}

// Tick advances the fall by one step and schedules the smoothing tween
// towards the new track position. It does nothing outside PhaseFalling or
// once the ceiling is reached.
func (m *PhaseMachine) Tick() {
	if m.phase != PhaseFalling {
		return
	}
	if m.fall.Progress >= m.cfg.Ceiling {
		return
	}

	m.fall.Progress = math.Min(m.fall.Progress+m.cfg.Speed, m.cfg.Ceiling)

	position := m.curve.SampleCurve(m.fall.Progress).Position
	look := m.curve.SampleCurve(math.Min(m.fall.Progress+m.cfg.LookAhead, m.cfg.LookCeiling)).Position

	smooth := NewVec3Tween(
		func() mgl64.Vec3 { return m.pose.Position },
		func(v mgl64.Vec3) { m.pose.Position = v },
		position, m.cfg.SmoothDuration, Power1Out,
	).WithKey(cameraPositionKey)
	smooth.OnUpdate = func() {
		m.pose.LookAt = look
	}
	m.scheduler.Add(smooth)

	m.pose.LookAt = look
}
