// Package obj exports mesh scenes as Wavefront OBJ/MTL files.
package obj

import (
	"io"
	"os"

	"github.com/binzume/objconv/geom"
	"github.com/binzume/objconv/mesh"
	"github.com/pkg/errors"
)

const (
	OBJFileHeader = "OBJ File"
	MTLFileHeader = "MTL File"
	ToolName      = "objconv: OBJ/MTL exporter"
	Author        = "github.com/binzume/objconv"
	Version       = "Version 1.0"
)

// DefaultMaxFacet is the facet count after which Unity output is split.
const DefaultMaxFacet = 10000

var (
	ErrMalformedFacet = errors.New("malformed facet")
	ErrBufferAlloc    = errors.New("cannot allocate facet buffer")
)

// Engine selects the coordinate convention of the output.
type Engine int

const (
	Unity Engine = iota
	UnrealEngine
)

func (e Engine) String() string {
	switch e {
	case Unity:
		return "Unity"
	case UnrealEngine:
		return "UnrealEngine"
	}
	return "Unknown"
}

// FacetGeo is the geometry of one facet.
type FacetGeo struct {
	Collider bool
	Material string

	Indices  []int // triangle list
	Vertices []geom.Vector3
	Normals  []geom.Vector3
	UVs      []geom.UVMap

	// UV-space transform already applied to UVs, nil if none.
	UVTransform *mesh.TextureParam
}

func (g *FacetGeo) NumVertex() int {
	return len(g.Vertices)
}

func (g *FacetGeo) NumIndex() int {
	return len(g.Indices)
}

// FacetMtl is the material of one facet.
type FacetMtl struct {
	SameMaterial bool
	Material     string
	Param        mesh.MaterialParam

	MapKd   string
	MapKs   string
	MapBump string

	Ka, Kd, Ks geom.Vector3
	D          float64 // dissolve
	Ni         float64 // shininess
	Illum      int
}

func NewFacetMtl(material string) *FacetMtl {
	return &FacetMtl{
		Material: material,
		Ka:       geom.Vector3{X: 1, Y: 1, Z: 1},
		Kd:       geom.Vector3{X: 1, Y: 1, Z: 1},
		Ks:       geom.Vector3{X: 1, Y: 1, Z: 1},
		D:        1.0,
		Ni:       1.0,
		Illum:    2,
	}
}

// Object holds one mesh object. Geos[i] and Mtls[i] describe the same facet.
type Object struct {
	Name        string
	AffineTrans *geom.AffineTrans
	Geos        []*FacetGeo
	Mtls        []*FacetMtl
}

// Document is the scene to export.
type Document struct {
	Objects []*Object

	Engine     Engine
	NoOffset   bool // move the first object to the origin
	PhantomOut bool // also output non-collider facets
	MaxFacet   int

	// Create opens output files. Defaults to os.Create.
	Create func(name string) (io.WriteCloser, error)

	materials map[string]bool // ids with a defining FacetMtl
}

func NewDocument(engine Engine) *Document {
	return &Document{
		Engine:     engine,
		PhantomOut: true,
		MaxFacet:   DefaultMaxFacet,
	}
}

func (doc *Document) NumObj() int {
	return len(doc.Objects)
}

func (doc *Document) maxFacet() int {
	if doc.MaxFacet <= 0 {
		return DefaultMaxFacet
	}
	return doc.MaxFacet
}

func (doc *Document) create(name string) (io.WriteCloser, error) {
	if doc.Create != nil {
		return doc.Create(name)
	}
	return os.Create(name)
}
