package tubefall

// Point is a projected screen position.
type Point struct {
	X, Y float32
}

// Viewport projects camera-space points (x right, y down, z forward) to
// pixels.
type Viewport struct {
	Width, Height float64
	Focal         float64
}

func (v Viewport) ToScreen(x, y, z float64) Point {
	return Point{
		X: float32(v.Focal*x/z + v.Width/2),
		Y: float32(v.Focal*y/z + v.Height/2),
	}
}

func (v Viewport) FromScreen(sx, sy, z float64) (float64, float64) {
	return (sx - v.Width/2) * z / v.Focal, (sy - v.Height/2) * z / v.Focal
}

// intersectNearPlane returns the point on p1-p2 at z == near, or p1 when the
// segment runs parallel to the plane.
func intersectNearPlane(p1, p2 []float64, near float64) []float64 {
	dz := p2[2] - p1[2]
	if dz == 0 {
		return []float64{p1[0], p1[1], p1[2]}
	}
	t := (near - p1[2]) / dz
	return []float64{
		p1[0] + (p2[0]-p1[0])*t,
		p1[1] + (p2[1]-p1[1])*t,
		near,
	}
}

func clipPolygonAgainstNearPlane(points [][]float64, near float64) [][]float64 {
	out := make([][]float64, 0, len(points)+2)
	n := len(points)
	for i := 0; i < n; i++ {
		curr := points[i]
		prev := points[(i-1+n)%n]
		currIn := curr[2] >= near
		prevIn := prev[2] >= near
		if currIn {
			if !prevIn {
				out = append(out, intersectNearPlane(prev, curr, near))
			}
			out = append(out, curr)
		} else if prevIn {
			out = append(out, intersectNearPlane(prev, curr, near))
		}
	}
	return out
}

type clipEdge int

const (
	clipLeft clipEdge = iota
	clipRight
	clipTop
	clipBottom
)

func (e clipEdge) inside(p Point, w, h float32) bool {
	switch e {
	case clipLeft:
		return p.X >= 0
	case clipRight:
		return p.X <= w
	case clipTop:
		return p.Y >= 0
	default:
		return p.Y <= h
	}
}

func (e clipEdge) intersect(a, b Point, w, h float32) Point {
	switch e {
	case clipLeft, clipRight:
		x := float32(0)
		if e == clipRight {
			x = w
		}
		t := (x - a.X) / (b.X - a.X)
		return Point{X: x, Y: a.Y + (b.Y-a.Y)*t}
	default:
		y := float32(0)
		if e == clipBottom {
			y = h
		}
		t := (y - a.Y) / (b.Y - a.Y)
		return Point{X: a.X + (b.X-a.X)*t, Y: y}
	}
}

// clipPolygon clips a convex screen polygon to [0,w]x[0,h].
func clipPolygon(points []Point, w, h float32) []Point {
	out := points
	for _, edge := range []clipEdge{clipLeft, clipRight, clipTop, clipBottom} {
		in := out
		out = make([]Point, 0, len(in)+2)
		n := len(in)
		for i := 0; i < n; i++ {
			curr := in[i]
			prev := in[(i-1+n)%n]
			currIn := edge.inside(curr, w, h)
			prevIn := edge.inside(prev, w, h)
			if currIn {
				if !prevIn {
					out = append(out, edge.intersect(prev, curr, w, h))
				}
				out = append(out, curr)
			} else if prevIn {
				out = append(out, edge.intersect(prev, curr, w, h))
			}
		}
	}
	return out
}
