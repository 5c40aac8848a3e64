package tubefall

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PolygonBatcher receives projected, clipped polygons in paint order.
type PolygonBatcher interface {
	AddPolygon(xp, yp []float32, clr color.RGBA)
	AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32)
}

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// maxBatchVertices keeps indices inside uint16.
const maxBatchVertices = 60000

// imageBatcher accumulates triangles and draws them to an ebiten image in as
// few DrawTriangles calls as possible.
type imageBatcher struct {
	screen   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newImageBatcher(screen *ebiten.Image) *imageBatcher {
	return &imageBatcher{
		screen:   screen,
		vertices: make([]ebiten.Vertex, 0, 1024),
		indices:  make([]uint16, 0, 2048),
	}
}

func (b *imageBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	if len(b.vertices)+len(xp) > maxBatchVertices {
		b.Flush()
	}

	cr, cg, cb, ca := colorToFloats(clr)
	base := uint16(len(b.vertices))
	for i := range xp {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(xp); i++ {
		b.indices = append(b.indices, base, base+uint16(i-1), base+uint16(i))
	}
}

func (b *imageBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.AddPolygon(xp, yp, fillClr)
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: strokeWidth})
	if len(b.vertices)+len(vs) > maxBatchVertices {
		b.Flush()
	}

	cr, cg, cb, ca := colorToFloats(strokeClr)
	base := uint16(len(b.vertices))
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = cr
		vs[i].ColorG = cg
		vs[i].ColorB = cb
		vs[i].ColorA = ca
	}
	b.vertices = append(b.vertices, vs...)
	for _, idx := range is {
		b.indices = append(b.indices, base+idx)
	}
}

func (b *imageBatcher) Flush() {
	if len(b.indices) == 0 {
		b.vertices = b.vertices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	b.screen.DrawTriangles(b.vertices, b.indices, whiteSubImage(), op)
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func colorToFloats(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}
