package tubefall

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewQuad builds a width x height rectangle in the XY plane centred on the
// origin, facing +Z.
func NewQuad(name string, width, height float64, col color.RGBA) *Model {
	hw, hh := width/2, height/2
	m := NewModel(name)
	f := NewFaceEmpty(col, nil)
	f.AddPoint(-hw, -hh, 0)
	f.AddPoint(hw, -hh, 0)
	f.AddPoint(hw, hh, 0)
	f.AddPoint(-hw, hh, 0)
	f.Finished(FACE_NORMAL)
	m.AddFace(f)
	m.Finished(true)
	return m
}

// LookRotation returns XYZ Euler angles that turn local +Z towards forward
// with local +Y as close to world up as possible.
func LookRotation(forward mgl64.Vec3) mgl64.Vec3 {
	up := mgl64.Vec3{0, 1, 0}
	z := forward
	if z.Len() < epsilon {
		z = mgl64.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() < epsilon {
		// forward is vertical; nudge it so the cross product is defined
		z = mgl64.Vec3{z.X(), z.Y(), z.Z() + 0.0001}.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return eulerFromBasis(x, y, z)
}

// eulerFromBasis decomposes the rotation with columns x, y, z into XYZ
// Euler angles.
func eulerFromBasis(x, y, z mgl64.Vec3) mgl64.Vec3 {
	m13 := z.X()
	ry := math.Asin(clampFloat(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		return mgl64.Vec3{
			math.Atan2(-z.Y(), z.Z()),
			ry,
			math.Atan2(-y.X(), x.X()),
		}
	}
	return mgl64.Vec3{math.Atan2(y.Z(), y.Y()), ry, 0}
}

// NewWindowStrip places count clones of proto along the curve at u = i/divisor,
// each turned to face along the tangent and mirrored in X.
func NewWindowStrip(name string, proto *Model, curve *CatmullRomCurve, count int, divisor float64) *Model {
	group := NewGroup(name)
	if divisor <= 0 {
		divisor = 1
	}
	for i := 0; i < count; i++ {
		u := float64(i) / divisor
		w := proto.Clone(fmt.Sprintf("%s-%d", name, i))
		placeOnCurve(w, curve, u)
		group.Add(w)
	}
	return group
}

// placeOnCurve stands m on the curve at u facing along the tangent,
// mirrored in X and painted from both sides.
func placeOnCurve(m *Model, curve *CatmullRomCurve, u float64) {
	m.Position = curve.PointAt(u)
	m.Rotation = LookRotation(curve.TangentAt(u))
	m.Scale = mgl64.Vec3{-1, 1, 1}
	m.DoubleSided = true
}

// NewTubeWireframe sweeps a closed ring of radialSegments points along the
// curve. The frames are carried along by parallel transport so the rings do
// not twist. The result paints edges only and is hidden until shown.
func NewTubeWireframe(name string, curve *CatmullRomCurve, tubularSegments int, radius float64, radialSegments int, col color.RGBA) *Model {
	m := NewModel(name)
	m.LinesOnly = true
	m.DoubleSided = true
	m.Visible = false

	if tubularSegments < 1 || radialSegments < 3 {
		m.Finished(false)
		return m
	}

	rings := make([][]mgl64.Vec3, tubularSegments)
	var normal mgl64.Vec3
	for i := 0; i < tubularSegments; i++ {
		u := float64(i) / float64(tubularSegments)
		centre := curve.PointAt(u)
		tangent := curve.TangentAt(u)

		if i == 0 {
			normal = initialNormal(tangent)
		} else {
			// drop the component along the new tangent
			normal = normal.Sub(tangent.Mul(normal.Dot(tangent)))
			if normal.Len() < epsilon {
				normal = initialNormal(tangent)
			}
			normal = normal.Normalize()
		}
		binormal := tangent.Cross(normal).Normalize()

		ring := make([]mgl64.Vec3, radialSegments)
		for j := 0; j < radialSegments; j++ {
			theta := float64(j) / float64(radialSegments) * 2 * math.Pi
			dir := normal.Mul(math.Cos(theta)).Add(binormal.Mul(math.Sin(theta)))
			ring[j] = centre.Add(dir.Mul(radius))
		}
		rings[i] = ring
	}

	for i := 0; i < tubularSegments; i++ {
		a := rings[i]
		b := rings[(i+1)%tubularSegments]
		for j := 0; j < radialSegments; j++ {
			k := (j + 1) % radialSegments
			f := NewFaceEmpty(col, nil)
			for _, p := range []mgl64.Vec3{a[j], b[j], b[k], a[k]} {
				f.AddPoint(p.X(), p.Y(), p.Z())
			}
			f.Finished(FACE_NORMAL)
			m.AddFace(f)
		}
	}
	m.Finished(false)
	return m
}

// initialNormal picks a vector perpendicular to t using its smallest axis.
func initialNormal(t mgl64.Vec3) mgl64.Vec3 {
	axis := mgl64.Vec3{1, 0, 0}
	ax, ay, az := math.Abs(t.X()), math.Abs(t.Y()), math.Abs(t.Z())
	if ay <= ax && ay <= az {
		axis = mgl64.Vec3{0, 1, 0}
	} else if az <= ax && az <= ay {
		axis = mgl64.Vec3{0, 0, 1}
	}
	return t.Cross(axis).Cross(t).Normalize()
}
