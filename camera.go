package tubefall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// cameraFlip turns the right-handed view space (looking down -Z, y up) into
// the painter's space: z forward, y down the screen.
var cameraFlip = mgl64.Diag4(mgl64.Vec4{1, -1, -1, 1})

type Camera struct {
	camMatrixRev *Matrix
	position     mgl64.Vec3
	target       mgl64.Vec3
	up           mgl64.Vec3
	fov          float64 // vertical, degrees
}

func NewCamera(fov float64) *Camera {
	c := &Camera{
		up:     mgl64.Vec3{0, 1, 0},
		fov:    fov,
		target: mgl64.Vec3{0, 0, -1},
	}
	c.update()
	return c
}

func (c *Camera) FOV() float64 {
	return c.fov
}

func (c *Camera) SetFOV(fov float64) {
	c.fov = fov
}

func (c *Camera) Position() mgl64.Vec3 {
	return c.position
}

func (c *Camera) Target() mgl64.Vec3 {
	return c.target
}

func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.position = p
	c.update()
}

func (c *Camera) LookAt(target mgl64.Vec3) {
	c.target = target
	c.update()
}

// SetPose moves and aims the camera in one step.
func (c *Camera) SetPose(pose CameraPose) {
	c.position = pose.Position
	c.target = pose.LookAt
	c.update()
}

func (c *Camera) Pose() CameraPose {
	return CameraPose{Position: c.position, LookAt: c.target}
}

// Forward is the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	f := c.target.Sub(c.position)
	if f.Len() < epsilon {
		return mgl64.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

// upFor picks a world up that is not parallel to the view direction.
func (c *Camera) upFor(forward mgl64.Vec3) mgl64.Vec3 {
	if forward.Cross(c.up).Len() < 1e-6 {
		return mgl64.Vec3{0, 0, -1}
	}
	return c.up
}

func (c *Camera) update() {
	eye := c.position
	target := c.target
	if target.Sub(eye).Len() < epsilon {
		target = eye.Add(mgl64.Vec3{0, 0, -1})
	}
	view := mgl64.LookAtV(eye, target, c.upFor(target.Sub(eye).Normalize()))
	c.camMatrixRev = FromMat4(cameraFlip.Mul4(view))
}

// GetMatrix returns the world to painter-space transform.
func (c *Camera) GetMatrix() *Matrix {
	return c.camMatrixRev
}

// Focal is the projection scale in pixels for a viewport height.
func (c *Camera) Focal(height float64) float64 {
	return (height / 2) / math.Tan(mgl64.DegToRad(c.fov)/2)
}

func (c *Camera) Viewport(width, height float64) Viewport {
	return Viewport{Width: width, Height: height, Focal: c.Focal(height)}
}

// Ray builds a world-space ray through normalised device coordinates
// (x right, y up, both in [-1,1]).
func (c *Camera) Ray(ndcX, ndcY, aspect float64) Ray {
	forward := c.Forward()
	right := forward.Cross(c.upFor(forward)).Normalize()
	up := right.Cross(forward)
	tanHalf := math.Tan(mgl64.DegToRad(c.fov) / 2)

	dir := forward.
		Add(right.Mul(ndcX * tanHalf * aspect)).
		Add(up.Mul(ndcY * tanHalf))
	return Ray{Origin: c.position, Direction: dir.Normalize()}
}

// ScreenToNDC converts pixel coordinates to normalised device coordinates.
func ScreenToNDC(x, y, width, height float64) (float64, float64) {
	return (x/width)*2 - 1, -(y/height)*2 + 1
}

// Project returns the pixel position of a world point, or false when the
// point is behind the near plane.
func (c *Camera) Project(p mgl64.Vec3, width, height float64) (ScreenPoint, bool) {
	v := c.camMatrixRev.TransformPoint(p)
	if v.Z() <= nearPlaneZ {
		return ScreenPoint{}, false
	}
	s := c.Viewport(width, height).ToScreen(v.X(), v.Y(), v.Z())
	return ScreenPoint{X: float64(s.X), Y: float64(s.Y)}, true
}
