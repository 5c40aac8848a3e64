package tubefall

import (
	"image/color"
	"math"
)

type BspNode struct {
	normal           *Vector3
	Left             *BspNode
	Right            *BspNode
	colRed           uint8
	colGreen         uint8
	colBlue          uint8
	colAlpha         uint8
	facePointIndices []int
	normalIndex      int
	pointsToUse      [][]float64
}

// nearPlaneZ is the camera-space depth polygons are clipped against.
const nearPlaneZ = 0.05

type paintOptions struct {
	viewport    Viewport
	doubleSided bool
	linesOnly   bool
	outline     bool
	fog         *Fog
}

func NewBspNode(faceNormal *Vector3, faceColor color.RGBA, pointIndices []int, normalIdx int) *BspNode {
	return &BspNode{
		normal:           faceNormal,
		colRed:           faceColor.R,
		colGreen:         faceColor.G,
		colBlue:          faceColor.B,
		colAlpha:         faceColor.A,
		facePointIndices: pointIndices,
		normalIndex:      normalIdx,
		pointsToUse:      make([][]float64, 0, len(pointIndices)+2),
	}
}

// Paint walks the tree back to front relative to the camera at the origin.
func (b *BspNode) Paint(batcher PolygonBatcher, transPoints, transNormals *Matrix, opts paintOptions) {
	if len(b.facePointIndices) == 0 {
		return
	}

	transformedNormal := transNormals.ThisMatrix[b.normalIndex]
	firstTransformedPoint := transPoints.ThisMatrix[b.facePointIndices[0]]

	where := transformedNormal[0]*firstTransformedPoint[0] +
		transformedNormal[1]*firstTransformedPoint[1] +
		transformedNormal[2]*firstTransformedPoint[2]

	if where < 0 {
		// camera on the front side
		if b.Left != nil {
			b.Left.Paint(batcher, transPoints, transNormals, opts)
		}
		b.paintPoly(batcher, transPoints, transformedNormal, opts)
		if b.Right != nil {
			b.Right.Paint(batcher, transPoints, transNormals, opts)
		}
		return
	}

	if b.Right != nil {
		b.Right.Paint(batcher, transPoints, transNormals, opts)
	}
	if opts.doubleSided {
		flipped := []float64{-transformedNormal[0], -transformedNormal[1], -transformedNormal[2]}
		b.paintPoly(batcher, transPoints, flipped, opts)
	}
	if b.Left != nil {
		b.Left.Paint(batcher, transPoints, transNormals, opts)
	}
}

func getMidpoint(points [][]float64) []float64 {
	if len(points) == 0 {
		return nil
	}

	midpoint := make([]float64, 3)
	for _, point := range points {
		midpoint[0] += point[0]
		midpoint[1] += point[1]
		midpoint[2] += point[2]
	}

	midpoint[0] /= float64(len(points))
	midpoint[1] /= float64(len(points))
	midpoint[2] /= float64(len(points))

	return midpoint
}

func (b *BspNode) paintPoly(batcher PolygonBatcher, verticesInCameraSpace *Matrix, transformedNormal []float64, opts paintOptions) {
	pointsToUse := b.pointsToUse[:0]
	for _, pointIndex := range b.facePointIndices {
		pointsToUse = append(pointsToUse, verticesInCameraSpace.ThisMatrix[pointIndex])
	}

	clipped := clipPolygonAgainstNearPlane(pointsToUse, nearPlaneZ)
	if len(clipped) < 3 {
		return
	}

	screenPoints := make([]Point, len(clipped))
	for i, p := range clipped {
		screenPoints[i] = opts.viewport.ToScreen(p[0], p[1], p[2])
	}
	screenPoints = clipPolygon(screenPoints, float32(opts.viewport.Width), float32(opts.viewport.Height))
	if len(screenPoints) < 3 {
		return
	}

	xp := make([]float32, len(screenPoints))
	yp := make([]float32, len(screenPoints))
	for i, p := range screenPoints {
		xp[i] = p.X
		yp[i] = p.Y
	}

	mid := getMidpoint(clipped)
	polyColor := b.calcColor(mid, transformedNormal, color.RGBA{A: b.colAlpha})
	if opts.fog != nil {
		polyColor = opts.fog.Apply(polyColor, GetLength(mid))
	}

	switch {
	case opts.linesOnly:
		black := color.RGBA{A: 0}
		batcher.AddPolygonAndOutline(xp, yp, black, polyColor, 1.0)
	case opts.outline:
		edge := color.RGBA{R: 50, G: 50, B: 50, A: 25}
		batcher.AddPolygonAndOutline(xp, yp, polyColor, edge, 1.0)
	default:
		batcher.AddPolygon(xp, yp, polyColor)
	}
}

// calcColor shades the node colour with an ambient term plus a head-light
// spotlight along the view axis. Front-facing normals point at the camera,
// so -normal.z is the diffuse term.
func (b *BspNode) calcColor(
	firstTransformedPoint []float64,
	transformedNormal []float64,
	polyColor color.RGBA,
) color.RGBA {
	const ambientLight = 0.65
	const spotlightConePower = 10.0
	const spotlightLightAmount = 1.0 - ambientLight

	diffuseFactor := -transformedNormal[2]
	if diffuseFactor < 0 {
		diffuseFactor = 0
	}

	var spotlightFactor float64
	lenVecToPoint := GetLength(firstTransformedPoint)

	if lenVecToPoint > 0 {
		cosAngle := firstTransformedPoint[2] / lenVecToPoint
		if cosAngle < 0 {
			cosAngle = 0
		}
		spotlightFactor = math.Pow(cosAngle, spotlightConePower)
	} else {
		spotlightFactor = 1.0
	}

	spotlightBrightness := diffuseFactor * spotlightFactor * spotlightLightAmount
	finalBrightness := ambientLight + spotlightBrightness

	// brightness 1.0 leaves the colour alone, 0.0 subtracts 240
	c := 240 - int(finalBrightness*240)

	min := 7
	r1 := clamp(int(b.colRed)-c, min, 255)
	g1 := clamp(int(b.colGreen)-c, min, 255)
	b1 := clamp(int(b.colBlue)-c, min, 255)
	return color.RGBA{R: uint8(r1), G: uint8(g1), B: uint8(b1), A: polyColor.A}
}
