package tubefall

// Mesh is a de-duplicated point list; faces refer to rows by index.
type Mesh struct {
	Points     *Matrix
	pointIndex map[[3]float64]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Points:     NewMatrix(),
		pointIndex: make(map[[3]float64]int),
	}
}

func (m *Mesh) AddPoint(point []float64) ([]float64, int) {
	pointKey := [3]float64{point[0], point[1], point[2]}

	if index, found := m.pointIndex[pointKey]; found {
		return m.Points.ThisMatrix[index], index
	}

	pointCopy := make([]float64, len(point))
	copy(pointCopy, point)
	m.Points.AddRow(pointCopy)
	newIndex := len(m.Points.ThisMatrix) - 1
	m.pointIndex[pointKey] = newIndex

	return pointCopy, newIndex
}

func (m *Mesh) Copy() *Mesh {
	newPointIndex := make(map[[3]float64]int, len(m.pointIndex))
	for key, value := range m.pointIndex {
		newPointIndex[key] = value
	}

	return &Mesh{
		Points:     m.Points.Copy(),
		pointIndex: newPointIndex,
	}
}

type FaceMesh struct {
	Mesh
}

func NewFaceMesh() *FaceMesh {
	return &FaceMesh{Mesh: *NewMesh()}
}

func (fm *FaceMesh) AddFace(f *Face) (*Face, []int) {
	newPoints := make([][]float64, len(f.Points))
	indices := make([]int, len(f.Points))
	for i, p := range f.Points {
		newPoints[i], indices[i] = fm.AddPoint(p)
	}
	return NewFace(newPoints, f.Col, f.GetNormal()), indices
}

func (fm *FaceMesh) Copy() *FaceMesh {
	return &FaceMesh{Mesh: *fm.Mesh.Copy()}
}

type NormalMesh struct {
	Mesh
}

func NewNormalMesh() *NormalMesh {
	return &NormalMesh{Mesh: *NewMesh()}
}

func (nm *NormalMesh) AddNormal(n *Vector3) ([]float64, int) {
	return nm.AddPoint([]float64{n.X, n.Y, n.Z})
}

func (nm *NormalMesh) Copy() *NormalMesh {
	return &NormalMesh{Mesh: *nm.Mesh.Copy()}
}
