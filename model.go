package tubefall

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Tag marks a node with a capability that lookups can search for.
type Tag int

const (
	TagNone Tag = iota
	TagPopUp
)

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagPopUp:
		return "PopUp"
	default:
		return "Unknown"
	}
}

// Model is a scene-graph node: optional geometry plus a local transform.
// A model with no faces acts as a group.
type Model struct {
	ID   uuid.UUID
	Name string
	Tag  Tag

	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles, XYZ order
	Scale    mgl64.Vec3
	// Offset is added to Position at draw time; presentation effects write
	// here so they never fight tweens that animate Position.
	Offset mgl64.Vec3

	Visible     bool
	DoubleSided bool
	Outline     bool
	LinesOnly   bool

	faceMesh        *FaceMesh
	normalMesh      *NormalMesh
	transFaceMesh   *FaceMesh
	transNormalMesh *NormalMesh
	theFaces        *FaceStore
	root            *BspNode
	// faceList holds unordered leaf nodes for models finished without a
	// BSP tree.
	faceList []*BspNode

	parent   *Model
	children []*Model
}

func NewModel(name string) *Model {
	return &Model{
		ID:              uuid.New(),
		Name:            name,
		Scale:           mgl64.Vec3{1, 1, 1},
		Visible:         true,
		transFaceMesh:   NewFaceMesh(),
		transNormalMesh: NewNormalMesh(),
		theFaces:        NewFaceStore(),
	}
}

func NewGroup(name string) *Model {
	return NewModel(name)
}

// Clone shares geometry and the BSP tree with o but has its own transform,
// identity and transformed-point buffers.
func (o *Model) Clone(name string) *Model {
	return &Model{
		ID:          uuid.New(),
		Name:        name,
		Tag:         o.Tag,
		Position:    o.Position,
		Rotation:    o.Rotation,
		Scale:       o.Scale,
		Visible:     o.Visible,
		DoubleSided: o.DoubleSided,
		Outline:     o.Outline,
		LinesOnly:   o.LinesOnly,

		faceMesh:   o.faceMesh,
		normalMesh: o.normalMesh,
		theFaces:   o.theFaces,
		root:       o.root,
		faceList:   o.faceList,

		transFaceMesh:   o.transFaceMesh.Copy(),
		transNormalMesh: o.transNormalMesh.Copy(),
	}
}

func (o *Model) AddFace(f *Face) {
	o.theFaces.AddFace(f)
}

// Finished fixes the geometry. With useBspTree the faces are sorted into a
// BSP tree; otherwise they are painted in insertion order, which is only
// correct for wireframes and single planes.
func (o *Model) Finished(useBspTree bool) {
	if o.theFaces.FaceCount() > 0 {
		if useBspTree {
			log.Printf("Creating BSP Tree for %s...", o.Name)
			pending := NewFaceStore()
			for _, f := range o.theFaces.faces {
				pending.AddFace(f)
			}
			o.root = o.createBspTree(pending, o.transFaceMesh, o.transNormalMesh)
		} else {
			o.createFaceList()
		}
	}

	o.faceMesh = o.transFaceMesh.Copy()
	o.normalMesh = o.transNormalMesh.Copy()
}

func (o *Model) createFaceList() {
	for _, f := range o.theFaces.faces {
		_, normalIndex := o.transNormalMesh.AddNormal(f.GetNormal())
		newFace, indices := o.transFaceMesh.AddFace(f)
		o.faceList = append(o.faceList, NewBspNode(newFace.GetNormal(), f.Col, indices, normalIndex))
	}
}

func (o *Model) HasGeometry() bool {
	return o.root != nil || len(o.faceList) > 0
}

// eachNode visits every face record, tree or list.
func (o *Model) eachNode(fn func(*BspNode)) {
	var traverse func(node *BspNode)
	traverse = func(node *BspNode) {
		if node == nil {
			return
		}
		fn(node)
		traverse(node.Left)
		traverse(node.Right)
	}
	traverse(o.root)
	for _, n := range o.faceList {
		fn(n)
	}
}

func (o *Model) FaceCount() int {
	return o.theFaces.FaceCount()
}

func (o *Model) Add(child *Model) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = o
	o.children = append(o.children, child)
}

func (o *Model) Remove(child *Model) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (o *Model) Parent() *Model {
	return o.parent
}

func (o *Model) Children() []*Model {
	return o.children
}

// FindAncestor walks from o up through its parents and returns the first
// node carrying tag, including o itself.
func (o *Model) FindAncestor(tag Tag) (*Model, bool) {
	for n := o; n != nil; n = n.parent {
		if n.Tag == tag {
			return n, true
		}
	}
	return nil, false
}

// FindByName searches o and its descendants depth first.
func (o *Model) FindByName(name string) *Model {
	if o.Name == name {
		return o
	}
	for _, c := range o.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

func (o *Model) LocalMatrix() *Matrix {
	return NewTransformMatrix(o.Position.Add(o.Offset), o.Rotation, o.Scale)
}

func (o *Model) WorldMatrix() *Matrix {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().MultiplyBy(m)
	}
	return m
}

// WorldPosition is the node origin in world space.
func (o *Model) WorldPosition() mgl64.Vec3 {
	return o.WorldMatrix().TransformPoint(mgl64.Vec3{})
}

// ApplyMatrixTemp transforms the geometry into the transformed buffers,
// leaving the master copy untouched.
func (o *Model) ApplyMatrixTemp(aMatrix *Matrix) {
	if o.faceMesh == nil {
		return
	}
	aMatrix.TransformNormals(o.normalMesh.Points, o.transNormalMesh.Points)
	aMatrix.TransformObj(o.faceMesh.Points, o.transFaceMesh.Points)
}

func (o *Model) paint(batcher PolygonBatcher, opts paintOptions) {
	opts.doubleSided = o.DoubleSided
	opts.outline = o.Outline
	opts.linesOnly = o.LinesOnly
	if o.root != nil {
		o.root.Paint(batcher, o.transFaceMesh.Points, o.transNormalMesh.Points, opts)
		return
	}
	for _, n := range o.faceList {
		n.Paint(batcher, o.transFaceMesh.Points, o.transNormalMesh.Points, opts)
	}
}

func (o *Model) createBspTree(faces *FaceStore, newFaces *FaceMesh, newNormMesh *NormalMesh) *BspNode {
	if faces.FaceCount() == 0 {
		return nil
	}

	parentFace := o.choosePlane(faces)
	_, normalIndex := newNormMesh.AddNormal(parentFace.GetNormal())
	newFace, parentIndices := newFaces.AddFace(parentFace)
	parent := NewBspNode(newFace.GetNormal(), parentFace.Col, parentIndices, normalIndex)
	pPlane := NewPlane(newFace, newFace.GetNormal())

	fvLeft := NewFaceStore()
	fvRight := NewFaceStore()

	for a := 0; a < faces.FaceCount(); a++ {
		currentFace := faces.GetFace(a)
		if pPlane.FaceIntersect(currentFace) {
			for _, facePart := range pPlane.SplitFace(currentFace) {
				if facePart == nil || len(facePart.Points) < 3 {
					continue
				}
				part := NewFace(facePart.Points, currentFace.Col, currentFace.GetNormal())
				if pPlane.Where(facePart) <= 0 {
					fvLeft.AddFace(part)
				} else {
					fvRight.AddFace(part)
				}
			}
			continue
		}
		if pPlane.Where(currentFace) <= 0 {
			fvLeft.AddFace(currentFace)
		} else {
			fvRight.AddFace(currentFace)
		}
	}

	if fvLeft.FaceCount() > 0 {
		parent.Left = o.createBspTree(fvLeft, newFaces, newNormMesh)
	}
	if fvRight.FaceCount() > 0 {
		parent.Right = o.createBspTree(fvRight, newFaces, newNormMesh)
	}

	return parent
}

// choosePlane removes and returns the face whose plane splits the fewest
// other faces.
func (o *Model) choosePlane(fs *FaceStore) *Face {
	leastFace, leastFaceTotal := 0, fs.FaceCount()

	for chosen := 0; chosen < fs.FaceCount(); chosen++ {
		total := 0
		p := fs.GetFace(chosen).GetPlane()
		for i := 0; i < fs.FaceCount(); i++ {
			if i == chosen {
				continue
			}
			if p.FaceIntersect(fs.GetFace(i)) {
				total++
			}
		}
		if total < leastFaceTotal {
			leastFaceTotal = total
			leastFace = chosen
			if total == 0 {
				break
			}
		}
	}
	return fs.RemoveFaceAt(leastFace)
}
