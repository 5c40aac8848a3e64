package tubefall

import (
	"image/color"
	"math"
)

type Plane struct {
	A, B, C, D float64
}

const planeThickness = 0.001

func NewPlane(f *Face, normal *Vector3) *Plane {
	p := &Plane{
		A: normal.X,
		B: normal.Y,
		C: normal.Z,
	}
	p.D = -(p.A*f.Points[0][0] + p.B*f.Points[0][1] + p.C*f.Points[0][2])
	return p
}

func (p *Plane) PointOnPlane(x, y, z float64) float64 {
	num := p.A*x + p.B*y + p.C*z + p.D
	if math.Abs(num) < planeThickness {
		return 0.0
	}
	return num
}

func (p *Plane) LIntersect(p1, p2 *Vector3) bool {
	a := p.PointOnPlane(p1.X, p1.Y, p1.Z)
	b := p.PointOnPlane(p2.X, p2.Y, p2.Z)
	if a == 0 || b == 0 {
		return false
	}
	return (a > 0 && b < 0) || (a < 0 && b > 0)
}

func (p *Plane) LineIntersect(p1, p2 *Vector3) *Vector3 {
	if !p.LIntersect(p1, p2) {
		return nil
	}
	denom := p.A*(p2.X-p1.X) + p.B*(p2.Y-p1.Y) + p.C*(p2.Z-p1.Z)
	if denom == 0 {
		return nil
	}
	t := -(p.A*p1.X + p.B*p1.Y + p.C*p1.Z + p.D) / denom
	return NewVector3(
		p1.X+(p2.X-p1.X)*t,
		p1.Y+(p2.Y-p1.Y)*t,
		p1.Z+(p2.Z-p1.Z)*t,
	)
}

func (p *Plane) FaceIntersect(f *Face) bool {
	var d float64
	initialized := false
	for a := 0; a < f.Cnum; a++ {
		n := p.PointOnPlane(f.Points[a][0], f.Points[a][1], f.Points[a][2])
		if !initialized {
			d = n
			initialized = true
			continue
		}
		if !((d >= 0 && n >= 0) || (d <= 0 && n <= 0)) {
			return true
		}
	}
	return false
}

// SplitFace cuts a face in two along the plane. When the plane does not
// cross the face, the face comes back unchanged in slot 0.
func (p *Plane) SplitFace(aFace *Face) []*Face {
	faces := make([]*Face, 2)
	faces[0] = NewFace(nil, color.RGBA{}, nil)
	faces[1] = NewFace(nil, color.RGBA{}, nil)
	var inter bool

	if !p.FaceIntersect(aFace) {
		faces[0] = aFace
		faces[1] = nil
		return faces
	}

	currentFace := 0
	pnts := NewClist(aFace.Cnum)
	for i := 0; i < aFace.Cnum; i++ {
		pnts.AddPoint(NewVector3(aFace.Points[i][0], aFace.Points[i][1], aFace.Points[i][2]))
	}

	for pnt := 0; pnt < aFace.Cnum; pnt++ {
		p3d1 := pnts.NextPoint()
		p3d2 := pnts.NextPoint()
		pnts.Back()

		if p.LIntersect(p3d1, p3d2) {
			pointIntersect := p.LineIntersect(p3d1, p3d2)
			inter = true
			faces[currentFace].AddPoint(p3d1.X, p3d1.Y, p3d1.Z)
			if pointIntersect != nil {
				faces[currentFace].AddPoint(pointIntersect.X, pointIntersect.Y, pointIntersect.Z)
				currentFace = 1 - currentFace
				faces[currentFace].AddPoint(pointIntersect.X, pointIntersect.Y, pointIntersect.Z)
			}
		} else if p.PointOnPlane(p3d1.X, p3d1.Y, p3d1.Z) == 0 {
			inter = true
			faces[currentFace].AddPoint(p3d1.X, p3d1.Y, p3d1.Z)
			currentFace = 1 - currentFace
			faces[currentFace].AddPoint(p3d1.X, p3d1.Y, p3d1.Z)
		} else {
			faces[currentFace].AddPoint(p3d1.X, p3d1.Y, p3d1.Z)
		}
	}

	if !inter {
		faces[0] = aFace
		faces[1] = nil
		return faces
	}

	faces[0].Finished(FACE_NORMAL)
	faces[1].Finished(FACE_NORMAL)
	return faces
}

func (p *Plane) Where(f *Face) float64 {
	var inter float64
	for i := 0; i < len(f.Points); i++ {
		inter += p.PointOnPlane(f.Points[i][0], f.Points[i][1], f.Points[i][2])
	}
	return inter
}
