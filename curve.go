package tubefall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CurveSample is a point on a curve with its unit forward tangent.
type CurveSample struct {
	Position mgl64.Vec3
	Tangent  mgl64.Vec3
}

// CurveSampler maps a normalised parameter in [0,1] to a point on a curve.
type CurveSampler interface {
	SampleCurve(t float64) CurveSample
}

const (
	arcLengthDivisions = 200
	tangentDelta       = 0.0001
)

// CatmullRomCurve is an open centripetal Catmull-Rom spline. PointAt and
// TangentAt are arc-length parameterised.
type CatmullRomCurve struct {
	points     []mgl64.Vec3
	arcLengths []float64
}

func NewCatmullRomCurve(points []mgl64.Vec3) *CatmullRomCurve {
	c := &CatmullRomCurve{points: append([]mgl64.Vec3(nil), points...)}
	c.arcLengths = c.computeLengths(arcLengthDivisions)
	return c
}

func (c *CatmullRomCurve) Points() []mgl64.Vec3 {
	return c.points
}

// Length is the approximate arc length.
func (c *CatmullRomCurve) Length() float64 {
	if len(c.arcLengths) == 0 {
		return 0
	}
	return c.arcLengths[len(c.arcLengths)-1]
}

type cubicPoly struct {
	c0, c1, c2, c3 float64
}

func newCubicPoly(x0, x1, t0, t1 float64) cubicPoly {
	return cubicPoly{
		c0: x0,
		c1: t0,
		c2: -3*x0 + 3*x1 - 2*t0 - t1,
		c3: 2*x0 - 2*x1 + t0 + t1,
	}
}

func newNonuniformCatmullRom(x0, x1, x2, x3, dt0, dt1, dt2 float64) cubicPoly {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	return newCubicPoly(x1, x2, t1*dt1, t2*dt1)
}

func (p cubicPoly) calc(t float64) float64 {
	t2 := t * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t2*t
}

// Point evaluates the spline at raw parameter t, where equal steps of t
// cover equal numbers of control segments.
func (c *CatmullRomCurve) Point(t float64) mgl64.Vec3 {
	l := len(c.points)
	switch l {
	case 0:
		return mgl64.Vec3{}
	case 1:
		return c.points[0]
	}
	t = clampFloat(t, 0, 1)

	p := float64(l-1) * t
	intPoint := int(math.Floor(p))
	weight := p - float64(intPoint)
	if intPoint >= l-1 {
		intPoint = l - 2
		weight = 1
	}

	var p0, p3 mgl64.Vec3
	if intPoint > 0 {
		p0 = c.points[intPoint-1]
	} else {
		p0 = c.points[0].Sub(c.points[1]).Add(c.points[0])
	}
	p1 := c.points[intPoint]
	p2 := c.points[intPoint+1]
	if intPoint+2 < l {
		p3 = c.points[intPoint+2]
	} else {
		p3 = c.points[l-1].Sub(c.points[l-2]).Add(c.points[l-1])
	}

	dt0 := math.Pow(distanceSquared(p0, p1), 0.25)
	dt1 := math.Pow(distanceSquared(p1, p2), 0.25)
	dt2 := math.Pow(distanceSquared(p2, p3), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1.0
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	var out mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		poly := newNonuniformCatmullRom(p0[axis], p1[axis], p2[axis], p3[axis], dt0, dt1, dt2)
		out[axis] = poly.calc(weight)
	}
	return out
}

func distanceSquared(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

func (c *CatmullRomCurve) computeLengths(divisions int) []float64 {
	lengths := make([]float64, 0, divisions+1)
	lengths = append(lengths, 0)
	last := c.Point(0)
	sum := 0.0
	for p := 1; p <= divisions; p++ {
		current := c.Point(float64(p) / float64(divisions))
		sum += current.Sub(last).Len()
		lengths = append(lengths, sum)
		last = current
	}
	return lengths
}

// uToT converts an arc-length fraction u into the raw parameter t.
func (c *CatmullRomCurve) uToT(u float64) float64 {
	arcLengths := c.arcLengths
	il := len(arcLengths)
	total := arcLengths[il-1]
	if total == 0 {
		return u
	}
	target := clampFloat(u, 0, 1) * total

	low, high := 0, il-1
	for low <= high {
		i := low + (high-low)/2
		comparison := arcLengths[i] - target
		if comparison < 0 {
			low = i + 1
		} else if comparison > 0 {
			high = i - 1
		} else {
			high = i
			break
		}
	}
	i := high
	if i < 0 {
		return 0
	}
	if arcLengths[i] == target || i >= il-1 {
		return float64(i) / float64(il-1)
	}

	before := arcLengths[i]
	segment := arcLengths[i+1] - before
	fraction := (target - before) / segment
	return (float64(i) + fraction) / float64(il-1)
}

func (c *CatmullRomCurve) PointAt(u float64) mgl64.Vec3 {
	return c.Point(c.uToT(u))
}

func (c *CatmullRomCurve) tangent(t float64) mgl64.Vec3 {
	t1 := math.Max(t-tangentDelta, 0)
	t2 := math.Min(t+tangentDelta, 1)
	d := c.Point(t2).Sub(c.Point(t1))
	if d.Len() < epsilon {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func (c *CatmullRomCurve) TangentAt(u float64) mgl64.Vec3 {
	return c.tangent(c.uToT(u))
}

func (c *CatmullRomCurve) SampleCurve(t float64) CurveSample {
	return CurveSample{Position: c.PointAt(t), Tangent: c.TangentAt(t)}
}
