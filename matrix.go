package tubefall

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a 4x4 transform stored row-per-axis: ThisMatrix[3] holds the
// translation, and point lists reuse the same type with one row per point.
type Matrix struct {
	ThisMatrix [][]float64
}

func NewMatrix() *Matrix {
	return &Matrix{
		ThisMatrix: make([][]float64, 0, 100),
	}
}

func NewMatrixFromData(aMatrix [][]float64) *Matrix {
	m := &Matrix{
		ThisMatrix: make([][]float64, len(aMatrix)),
	}
	for i := range aMatrix {
		m.ThisMatrix[i] = make([]float64, len(aMatrix[i]))
		copy(m.ThisMatrix[i], aMatrix[i])
	}
	return m
}

// FromMat4 converts a column-major mathgl matrix.
func FromMat4(m mgl64.Mat4) *Matrix {
	return NewMatrixFromData(
		[][]float64{
			{m[0], m[1], m[2], m[3]},
			{m[4], m[5], m[6], m[7]},
			{m[8], m[9], m[10], m[11]},
			{m[12], m[13], m[14], m[15]},
		},
	)
}

// NewTransformMatrix composes translation * rotation(XYZ Euler) * scale.
func NewTransformMatrix(position, rotation, scale mgl64.Vec3) *Matrix {
	rot := mgl64.HomogRotate3DX(rotation[0]).
		Mul4(mgl64.HomogRotate3DY(rotation[1])).
		Mul4(mgl64.HomogRotate3DZ(rotation[2]))
	m := mgl64.Translate3D(position[0], position[1], position[2]).
		Mul4(rot).
		Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
	return FromMat4(m)
}

func (m *Matrix) AddRow(row []float64) {
	m.ThisMatrix = append(m.ThisMatrix, row)
}

// MultiplyBy returns m * aMatrix, so aMatrix is applied first.
func (m *Matrix) MultiplyBy(aMatrix *Matrix) *Matrix {
	newMatrixData := make([][]float64, len(aMatrix.ThisMatrix))
	for i := range newMatrixData {
		newMatrixData[i] = make([]float64, 4)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < len(aMatrix.ThisMatrix); x++ {
			newMatrixData[x][y] = m.ThisMatrix[0][y]*aMatrix.ThisMatrix[x][0] +
				m.ThisMatrix[1][y]*aMatrix.ThisMatrix[x][1] +
				m.ThisMatrix[2][y]*aMatrix.ThisMatrix[x][2] +
				m.ThisMatrix[3][y]*aMatrix.ThisMatrix[x][3]
		}
	}
	return &Matrix{ThisMatrix: newMatrixData}
}

func (m *Matrix) TransformObj(src, dest *Matrix) {
	for x := 0; x < len(src.ThisMatrix); x++ {
		sx, sy, sz := src.ThisMatrix[x][0], src.ThisMatrix[x][1], src.ThisMatrix[x][2]
		dest.ThisMatrix[x][0] = m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz + m.ThisMatrix[3][0]
		dest.ThisMatrix[x][1] = m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz + m.ThisMatrix[3][1]
		dest.ThisMatrix[x][2] = m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz + m.ThisMatrix[3][2]
	}
}

// TransformNormals applies the 3x3 part only and renormalises, since model
// matrices may carry a scale.
func (m *Matrix) TransformNormals(src, dest *Matrix) {
	for x := 0; x < len(src.ThisMatrix); x++ {
		sx, sy, sz := src.ThisMatrix[x][0], src.ThisMatrix[x][1], src.ThisMatrix[x][2]
		nx := m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz
		ny := m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz
		nz := m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz
		l := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if l > 0 {
			nx, ny, nz = nx/l, ny/l, nz/l
		}
		dest.ThisMatrix[x][0] = nx
		dest.ThisMatrix[x][1] = ny
		dest.ThisMatrix[x][2] = nz
	}
}

func (m *Matrix) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		m.ThisMatrix[0][0]*p[0] + m.ThisMatrix[1][0]*p[1] + m.ThisMatrix[2][0]*p[2] + m.ThisMatrix[3][0],
		m.ThisMatrix[0][1]*p[0] + m.ThisMatrix[1][1]*p[1] + m.ThisMatrix[2][1]*p[2] + m.ThisMatrix[3][1],
		m.ThisMatrix[0][2]*p[0] + m.ThisMatrix[1][2]*p[1] + m.ThisMatrix[2][2]*p[2] + m.ThisMatrix[3][2],
	}
}

func (m *Matrix) Copy() *Matrix {
	return NewMatrixFromData(m.ThisMatrix)
}

func (m *Matrix) String() string {
	var sb strings.Builder
	for i, row := range m.ThisMatrix {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, val := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", val))
		}
	}
	return sb.String()
}
