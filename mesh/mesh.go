// Package mesh defines the mesh data handed to the OBJ exporter by loaders.
package mesh

import "github.com/binzume/objconv/geom"

type MappingMode int

const (
	MappingDefault MappingMode = iota
	MappingPlanar
)

type TextureParam struct {
	Name  string
	Color [4]float64 // RGBA

	ShiftU, ShiftV float64
	ScaleU, ScaleV float64
	Rotate         float64 // radian
	FlipU, FlipV   bool
}

func NewTextureParam() TextureParam {
	return TextureParam{Color: [4]float64{1, 1, 1, 1}, ScaleU: 1, ScaleV: 1}
}

func (t *TextureParam) IsSetTexture() bool {
	return t.Name != ""
}

// GetColor returns the RGB part of the color.
func (t *TextureParam) GetColor() geom.Vector3 {
	return geom.Vector3{X: t.Color[0], Y: t.Color[1], Z: t.Color[2]}
}

type MaterialParam struct {
	Mapping MappingMode

	Texture TextureParam // diffuse
	Specmap TextureParam
	Bumpmap TextureParam

	Shininess   float64
	Transparent float64
}

func NewMaterialParam() MaterialParam {
	return MaterialParam{
		Texture: NewTextureParam(),
		Specmap: NewTextureParam(),
		Bumpmap: NewTextureParam(),
	}
}

// Dup returns a deep copy.
func (m *MaterialParam) Dup() MaterialParam {
	return *m
}

type MeshFacetNode struct {
	NumVertex int
	NumIndex  int
	NumTexcrd int

	Vertices []geom.Vector3
	Normals  []geom.Vector3
	Texcrds  []geom.UVMap
	Indices  []int

	MaterialID    string
	MaterialParam MaterialParam
	SameMaterial  bool
}

// NewMeshFacetNode builds a facet whose counts match the given slices.
func NewMeshFacetNode(vertices, normals []geom.Vector3, texcrds []geom.UVMap, indices []int) *MeshFacetNode {
	return &MeshFacetNode{
		NumVertex:     len(vertices),
		NumIndex:      len(indices),
		NumTexcrd:     len(texcrds),
		Vertices:      vertices,
		Normals:       normals,
		Texcrds:       texcrds,
		Indices:       indices,
		MaterialParam: NewMaterialParam(),
	}
}

type MeshObjectData struct {
	Name        string
	AffineTrans *geom.AffineTrans // nil: no transform
	Facets      []*MeshFacetNode
}

func NewMeshObjectData(name string) *MeshObjectData {
	return &MeshObjectData{Name: name}
}

func (m *MeshObjectData) AddFacet(f *MeshFacetNode) {
	m.Facets = append(m.Facets, f)
}
