package tubefall

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

type CameraConfig struct {
	FOV           float64 `yaml:"fov"`
	Start         Vec3    `yaml:"start"`
	LookAt        Vec3    `yaml:"lookAt"`
	Dolly         float64 `yaml:"dolly"`
	Parallax      float64 `yaml:"parallax"`
	OrbitSpeed    float64 `yaml:"orbitSpeed"` // radians per dragged pixel
	MaxOrbitPitch float64 `yaml:"maxOrbitPitch"`
	SpringFreq    float64 `yaml:"springFrequency"`
	SpringDamping float64 `yaml:"springDamping"`
}

// ParallaxSmoother follows the pointer with a damped spring per axis.
type ParallaxSmoother struct {
	spring harmonica.Spring
	x, vx  float64
	y, vy  float64
}

func NewParallaxSmoother(tps int, frequency, damping float64) *ParallaxSmoother {
	return &ParallaxSmoother{
		spring: harmonica.NewSpring(harmonica.FPS(tps), frequency, damping),
	}
}

func (p *ParallaxSmoother) Update(target PointerState) {
	p.x, p.vx = p.spring.Update(p.x, p.vx, target.X)
	p.y, p.vy = p.spring.Update(p.y, p.vy, target.Y)
}

func (p *ParallaxSmoother) Value() PointerState {
	return PointerState{X: p.x, Y: p.y}
}

// RoomControls is the free camera used while standing in the room: wheel
// to walk along the view line, drag to orbit, pointer for parallax.
type RoomControls struct {
	cfg      CameraConfig
	enabled  bool
	scroll   *ScrollIntegrator
	parallax *ParallaxSmoother
	yaw      float64
	pitch    float64
}

func NewRoomControls(cfg CameraConfig, scroll *ScrollIntegrator, parallax *ParallaxSmoother) *RoomControls {
	return &RoomControls{
		cfg:      cfg,
		enabled:  true,
		scroll:   scroll,
		parallax: parallax,
	}
}

func (c *RoomControls) Enabled() bool {
	return c.enabled
}

func (c *RoomControls) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *RoomControls) Scroll() ScrollState {
	return c.scroll.State()
}

func (c *RoomControls) Update(frame InputFrame) {
	if !c.enabled {
		return
	}
	if frame.ScrollDelta != 0 {
		c.scroll.ApplyDelta(frame.ScrollDelta)
	}
	c.scroll.Tick()

	c.yaw -= frame.DragX * c.cfg.OrbitSpeed
	c.pitch -= frame.DragY * c.cfg.OrbitSpeed
	c.pitch = clampFloat(c.pitch, -c.cfg.MaxOrbitPitch, c.cfg.MaxOrbitPitch)

	if c.parallax != nil {
		c.parallax.Update(frame.Pointer)
	}
}

func (c *RoomControls) Pose() CameraPose {
	var pointer PointerState
	if c.parallax != nil {
		pointer = c.parallax.Value()
	}
	return RoomPose(c.cfg, c.scroll.State().Progress, c.yaw, c.pitch, pointer)
}

// RoomPose places the camera on the idle pose, walked forward by progress
// times the dolly distance, orbited about the look-at point and nudged
// sideways by the pointer.
func RoomPose(cfg CameraConfig, progress, yaw, pitch float64, pointer PointerState) CameraPose {
	eye := cfg.Start.Vec()
	target := cfg.LookAt.Vec()

	view := target.Sub(eye)
	if view.Len() < epsilon {
		return CameraPose{Position: eye, LookAt: target}
	}
	eye = eye.Add(view.Normalize().Mul(progress * cfg.Dolly))

	offset := eye.Sub(target)
	if yaw != 0 {
		offset = mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}).Rotate(offset)
	}
	forward := offset.Mul(-1).Normalize()
	right := forward.Cross(mgl64.Vec3{0, 1, 0})
	if right.Len() < epsilon {
		right = mgl64.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	if pitch != 0 {
		offset = mgl64.QuatRotate(pitch, right).Rotate(offset)
	}
	eye = target.Add(offset)

	up := right.Cross(offset.Mul(-1).Normalize())
	shift := right.Mul(pointer.X * cfg.Parallax).Add(up.Mul(pointer.Y * cfg.Parallax))
	return CameraPose{
		Position: eye.Add(shift),
		LookAt:   target.Add(shift),
	}
}

// Vec3 is a YAML friendly [x, y, z].
type Vec3 [3]float64

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func radiansFromTurns(v Vec3) mgl64.Vec3 {
	return v.Mul(math.Pi).Vec()
}
