package tubefall

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// RayHit is one intersection. Model is the node owning the geometry; its
// ancestors are reachable through Model.Parent().
type RayHit struct {
	Model    *Model
	Distance float64
	Point    mgl64.Vec3
}

// CastRay tests the candidates and all their descendants and returns the
// hits nearest first. Visibility is not considered; callers decide what a
// hidden hit means.
func CastRay(ray Ray, candidates []*Model) []RayHit {
	var hits []RayHit
	var visit func(m *Model)
	visit = func(m *Model) {
		if hit, ok := m.IntersectRay(ray); ok {
			hits = append(hits, hit)
		}
		for _, c := range m.children {
			visit(c)
		}
	}
	for _, c := range candidates {
		visit(c)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// IntersectRay returns the nearest hit on this node's own geometry.
func (o *Model) IntersectRay(ray Ray) (RayHit, bool) {
	if !o.HasGeometry() {
		return RayHit{}, false
	}

	world := o.WorldMatrix()
	best := math.Inf(1)

	o.eachNode(func(node *BspNode) {
		polygon := make([]mgl64.Vec3, len(node.facePointIndices))
		for i, idx := range node.facePointIndices {
			p := o.faceMesh.Points.ThisMatrix[idx]
			polygon[i] = world.TransformPoint(mgl64.Vec3{p[0], p[1], p[2]})
		}
		if t, ok := RayIntersectsPolygon(ray, polygon); ok && t < best {
			best = t
		}
	})

	if math.IsInf(best, 1) {
		return RayHit{}, false
	}
	dir := ray.Direction.Normalize()
	return RayHit{
		Model:    o,
		Distance: best,
		Point:    ray.Origin.Add(dir.Mul(best)),
	}, true
}

// RayIntersectsPolygon returns the distance along the normalised ray to a
// planar convex polygon, hitting either side.
func RayIntersectsPolygon(ray Ray, polygon []mgl64.Vec3) (float64, bool) {
	if len(polygon) < 3 {
		return 0, false
	}
	dir := ray.Direction.Normalize()

	planeNormal := polygon[1].Sub(polygon[0]).Cross(polygon[2].Sub(polygon[0]))
	dotNormalDir := planeNormal.Dot(dir)
	if math.Abs(dotNormalDir) < epsilon {
		return 0, false
	}

	t := -planeNormal.Dot(ray.Origin.Sub(polygon[0])) / dotNormalDir
	if t < 0 {
		return 0, false
	}

	hit := ray.Origin.Add(dir.Mul(t))
	if !isPointInPolygon(hit, polygon, planeNormal) {
		return 0, false
	}
	return t, true
}

// isPointInPolygon projects onto the axis plane that best preserves the
// polygon's area and runs a crossing test.
func isPointInPolygon(point mgl64.Vec3, polygon []mgl64.Vec3, normal mgl64.Vec3) bool {
	absX := math.Abs(normal[0])
	absY := math.Abs(normal[1])
	absZ := math.Abs(normal[2])

	u, v := 0, 1
	if absX > absY && absX > absZ {
		u, v = 1, 2
	} else if absY > absX && absY > absZ {
		u, v = 0, 2
	}

	px, py := point[u], point[v]
	intersections := 0
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		if (a[v] > py) != (b[v] > py) {
			xIntersection := (b[u]-a[u])*(py-a[v])/(b[v]-a[v]) + a[u]
			if px < xIntersection {
				intersections++
			}
		}
	}
	return intersections%2 == 1
}
