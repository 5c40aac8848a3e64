package tubefall

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const float64EqualityThreshold = 1e-6

func assertRowsNear(t *testing.T, expected, actual [][]float64) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.InDeltaSlice(t, expected[i], actual[i], float64EqualityThreshold, "row %d", i)
	}
}

func assertPointsNear(t *testing.T, expected, actual []Point) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i].X, actual[i].X, float64EqualityThreshold, "point %d x", i)
		assert.InDelta(t, expected[i].Y, actual[i].Y, float64EqualityThreshold, "point %d y", i)
	}
}

// recordingBatcher keeps every polygon it is handed.
type recordingBatcher struct {
	polygons [][]Point
	fills    []color.RGBA
	outlined int
}

func (r *recordingBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	pts := make([]Point, len(xp))
	for i := range xp {
		pts[i] = Point{X: xp[i], Y: yp[i]}
	}
	r.polygons = append(r.polygons, pts)
	r.fills = append(r.fills, clr)
}

func (r *recordingBatcher) AddPolygonAndOutline(xp, yp []float32, fill, stroke color.RGBA, width float32) {
	r.AddPolygon(xp, yp, fill)
	r.outlined++
}

func TestClipPolygonAgainstNearPlane(t *testing.T) {
	const near = 10
	testCases := []struct {
		name     string
		input    [][]float64
		expected [][]float64
	}{
		{
			name:     "fully in front",
			input:    [][]float64{{0, 0, 20}, {1, 0, 20}, {0, 1, 20}},
			expected: [][]float64{{0, 0, 20}, {1, 0, 20}, {0, 1, 20}},
		},
		{
			name:     "fully behind",
			input:    [][]float64{{0, 0, 5}, {1, 0, 5}, {0, 1, 5}},
			expected: [][]float64{},
		},
		{
			name: "one point in front",
			input: [][]float64{
				{0, 0, 15},
				{0, 1, 5},
				{1, 0, 5},
			},
			expected: [][]float64{
				{0.5, 0, 10},
				{0, 0, 15},
				{0, 0.5, 10},
			},
		},
		{
			name: "two points in front",
			input: [][]float64{
				{0, 0, 5},
				{0, 1, 15},
				{1, 0, 15},
			},
			expected: [][]float64{
				{0.5, 0, 10},
				{0, 0.5, 10},
				{0, 1, 15},
				{1, 0, 15},
			},
		},
		{
			name:     "empty",
			input:    [][]float64{},
			expected: [][]float64{},
		},
		{
			name:     "on the near plane",
			input:    [][]float64{{0, 0, 10}, {1, 0, 10}, {0, 1, 10}},
			expected: [][]float64{{0, 0, 10}, {1, 0, 10}, {0, 1, 10}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertRowsNear(t, tc.expected, clipPolygonAgainstNearPlane(tc.input, near))
		})
	}
}

func TestViewportRoundTrip(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600, Focal: 300}

	testPoints := []struct {
		name    string
		x, y, z float64
	}{
		{"centre", 0, 0, 50},
		{"arbitrary", 15, -25, 75},
		{"far", 100, 200, 1000},
		{"close", 1, 2, 11},
	}

	for _, p := range testPoints {
		t.Run(p.name, func(t *testing.T) {
			s := vp.ToScreen(p.x, p.y, p.z)
			x, y := vp.FromScreen(float64(s.X), float64(s.Y), p.z)
			// screen coordinates are float32
			assert.InDelta(t, p.x, x, 1e-2)
			assert.InDelta(t, p.y, y, 1e-2)
		})
	}

	centre := vp.ToScreen(0, 0, 1)
	assert.Equal(t, Point{X: 400, Y: 300}, centre)
}

func TestIntersectNearPlane(t *testing.T) {
	testCases := []struct {
		name     string
		p1, p2   []float64
		expected []float64
	}{
		{"standard", []float64{0, 0, 0}, []float64{0, 0, 20}, []float64{0, 0, 10}},
		{"offset x and y", []float64{10, 20, 0}, []float64{30, 40, 20}, []float64{20, 30, 10}},
		{"parallel to the plane", []float64{10, 10, 5}, []float64{20, 20, 5}, []float64{10, 10, 5}},
		{"lying on the plane", []float64{10, 10, 10}, []float64{20, 20, 10}, []float64{10, 10, 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tc.expected, intersectNearPlane(tc.p1, tc.p2, 10), float64EqualityThreshold)
		})
	}
}

func TestCalcColor(t *testing.T) {
	grey := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	testCases := []struct {
		name      string
		nodeColor color.RGBA
		point     []float64
		normal    []float64
		expected  color.RGBA
	}{
		{
			name:      "head on, in the spotlight centre",
			nodeColor: grey,
			point:     []float64{0, 0, 10},
			normal:    []float64{0, 0, -1},
			expected:  color.RGBA{R: 200, G: 200, B: 200, A: 255},
		},
		{
			name:      "facing away gets ambient only",
			nodeColor: grey,
			point:     []float64{0, 0, 10},
			normal:    []float64{0, 0, 1},
			expected:  color.RGBA{R: 116, G: 116, B: 116, A: 255},
		},
		{
			name:      "edge on gets ambient only",
			nodeColor: grey,
			point:     []float64{10, 0, 10},
			normal:    []float64{1, 0, 0},
			expected:  color.RGBA{R: 116, G: 116, B: 116, A: 255},
		},
		{
			name:      "45 degrees, off the spotlight centre",
			nodeColor: grey,
			point:     []float64{10, 0, 10},
			normal:    []float64{-math.Sqrt2 / 2, 0, -math.Sqrt2 / 2},
			expected:  color.RGBA{R: 117, G: 117, B: 117, A: 255},
		},
		{
			name:      "dark colours clamp low",
			nodeColor: color.RGBA{R: 10, G: 10, B: 10, A: 255},
			point:     []float64{0, 0, 10},
			normal:    []float64{0, 0, 1},
			expected:  color.RGBA{R: 7, G: 7, B: 7, A: 255},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBspNode(NewVector3(0, 0, 1), tc.nodeColor, nil, 0)
			assert.Equal(t, tc.expected, b.calcColor(tc.point, tc.normal, color.RGBA{A: 255}))
		})
	}
}

func TestClipPolygon(t *testing.T) {
	const screenWidth, screenHeight = float32(800), float32(600)

	testCases := []struct {
		name     string
		input    []Point
		expected []Point
	}{
		{
			name:     "fully inside",
			input:    []Point{{100, 100}, {200, 100}, {150, 200}},
			expected: []Point{{100, 100}, {200, 100}, {150, 200}},
		},
		{
			name:     "fully outside",
			input:    []Point{{900, 100}, {1000, 100}, {950, 200}},
			expected: []Point{},
		},
		{
			name:     "right edge",
			input:    []Point{{700, 100}, {900, 100}, {700, 200}},
			expected: []Point{{700, 100}, {800, 100}, {800, 150}, {700, 200}},
		},
		{
			name:     "top left corner",
			input:    []Point{{-100, -100}, {100, -100}, {100, 100}, {-100, 100}},
			expected: []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}},
		},
		{
			name:     "empty",
			input:    []Point{},
			expected: []Point{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertPointsNear(t, tc.expected, clipPolygon(tc.input, screenWidth, screenHeight))
		})
	}
}

func TestPaintRespectsFacing(t *testing.T) {
	testCases := []struct {
		name        string
		rotationY   float64
		doubleSided bool
		want        int
	}{
		{"front face", 0, false, 1},
		{"back face culled", math.Pi, false, 0},
		{"back face of double sided quad", math.Pi, true, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld("test")
			q := NewQuad("quad", 2, 2, color.RGBA{R: 200, G: 100, B: 50, A: 255})
			q.Position = mgl64.Vec3{0, 0, -5}
			q.Rotation = mgl64.Vec3{0, tc.rotationY, 0}
			q.DoubleSided = tc.doubleSided
			w.AddObject(q)

			cam := NewCamera(90)
			cam.SetPose(CameraPose{Position: mgl64.Vec3{}, LookAt: mgl64.Vec3{0, 0, -1}})

			rec := &recordingBatcher{}
			assert.Equal(t, 1, w.PaintObjects(rec, cam, 800, 600))
			assert.Len(t, rec.polygons, tc.want)
		})
	}
}

func TestPaintProjectsQuadAroundScreenCentre(t *testing.T) {
	w := NewWorld("test")
	q := NewQuad("quad", 2, 2, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	q.Position = mgl64.Vec3{0, 0, -5}
	w.AddObject(q)

	cam := NewCamera(90)
	cam.SetPose(CameraPose{LookAt: mgl64.Vec3{0, 0, -1}})

	rec := &recordingBatcher{}
	w.PaintObjects(rec, cam, 800, 600)
	require.Len(t, rec.polygons, 1)

	// focal is 300 for a 600 pixel high 90 degree view, so the 2x2 quad
	// five units away spans 120 pixels
	var minX, maxX, minY, maxY float32 = 1e9, -1e9, 1e9, -1e9
	for _, p := range rec.polygons[0] {
		minX = float32(math.Min(float64(minX), float64(p.X)))
		maxX = float32(math.Max(float64(maxX), float64(p.X)))
		minY = float32(math.Min(float64(minY), float64(p.Y)))
		maxY = float32(math.Max(float64(maxY), float64(p.Y)))
	}
	assert.InDelta(t, 340, minX, 1e-3)
	assert.InDelta(t, 460, maxX, 1e-3)
	assert.InDelta(t, 240, minY, 1e-3)
	assert.InDelta(t, 360, maxY, 1e-3)
}

func TestHiddenModelsAreNotPainted(t *testing.T) {
	w := NewWorld("test")
	group := NewGroup("group")
	q := NewQuad("quad", 2, 2, color.RGBA{A: 255})
	q.Position = mgl64.Vec3{0, 0, -5}
	group.Add(q)
	w.AddObject(group)

	cam := NewCamera(90)
	cam.SetPose(CameraPose{LookAt: mgl64.Vec3{0, 0, -1}})

	group.Visible = false
	rec := &recordingBatcher{}
	assert.Equal(t, 0, w.PaintObjects(rec, cam, 800, 600))
	assert.Empty(t, rec.polygons)
}
