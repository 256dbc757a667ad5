package obj

import (
	"bytes"
	"strings"
	"testing"

	"github.com/binzume/objconv/geom"
	"github.com/binzume/objconv/mesh"
	"github.com/pkg/errors"
)

func TestAddObject(t *testing.T) {
	src := triangle("#mat1", false)
	src.Indices = []int{0, 1, 2, 2, 1, 0}
	src.NumIndex = 6

	doc := NewDocument(Unity)
	if err := doc.AddObject(object("obj1", src), true); err != nil {
		t.Fatal("AddObject failed: ", err)
	}
	if doc.NumObj() != 1 || len(doc.Objects[0].Geos) != 1 || len(doc.Objects[0].Mtls) != 1 {
		t.Fatal("unexpected document shape", doc.NumObj())
	}

	geo := doc.Objects[0].Geos[0]
	if geo.NumIndex() != 6 || geo.NumVertex() != 3 {
		t.Errorf("counts = %d, %d", geo.NumIndex(), geo.NumVertex())
	}
	for i, idx := range geo.Indices {
		if idx != src.Indices[i] {
			t.Errorf("Indices[%d] = %d; expected %d", i, idx, src.Indices[i])
		}
		if idx >= geo.NumVertex() {
			t.Errorf("Indices[%d] out of range", i)
		}
	}
	if !geo.Collider || geo.Material != "#mat1" {
		t.Error("collider/material not copied", geo.Collider, geo.Material)
	}

	// records own their buffers
	src.Indices[0] = 2
	src.Vertices[0].X = 100
	if geo.Indices[0] != 0 || geo.Vertices[0].X != 1 {
		t.Error("FacetGeo shares buffers with source")
	}
}

func TestAddObjectMalformedFacet(t *testing.T) {
	mismatch := triangle("#mat2", false)
	mismatch.NumTexcrd = 2
	outOfRange := triangle("#mat3", false)
	outOfRange.Indices = []int{0, 1, 3}
	partial := triangle("#mat4", false)
	partial.Indices = []int{0, 1}
	partial.NumIndex = 2

	doc := NewDocument(Unity)
	err := doc.AddObject(object("obj", triangle("#mat1", false), mismatch, outOfRange, partial, triangle("#mat5", false)), true)
	if err != nil {
		t.Fatal("malformed facets must not abort: ", err)
	}
	o := doc.Objects[0]
	if len(o.Geos) != 2 || len(o.Mtls) != 2 {
		t.Fatalf("expected 2 facets, got %d", len(o.Geos))
	}
	if o.Geos[0].Material != "#mat1" || o.Geos[1].Material != "#mat5" {
		t.Error("wrong facets kept", o.Geos[0].Material, o.Geos[1].Material)
	}
}

func TestAddObjectAllocFailure(t *testing.T) {
	short := triangle("#mat2", false)
	short.NumIndex = 9

	doc := NewDocument(Unity)
	err := doc.AddObject(object("obj", triangle("#mat1", false), short, triangle("#mat3", false)), true)
	if !errors.Is(err, ErrBufferAlloc) {
		t.Fatal("expected ErrBufferAlloc, got ", err)
	}
	if doc.NumObj() != 1 {
		t.Error("object must stay appended")
	}
	if len(doc.Objects[0].Geos) != 1 {
		t.Error("expected facets built before the failure to remain", len(doc.Objects[0].Geos))
	}

	noNormal := triangle("#mat4", false)
	noNormal.Normals = nil
	if err := doc.AddObject(object("obj2", noNormal), true); errors.Cause(err) != ErrBufferAlloc {
		t.Error("expected ErrBufferAlloc for missing normals, got ", err)
	}
}

func TestAddObjectCount(t *testing.T) {
	doc := NewDocument(UnrealEngine)
	for i := 0; i < 5; i++ {
		var facets []*mesh.MeshFacetNode
		for j := 0; j < i; j++ {
			facets = append(facets, triangle("#mat", j > 0))
		}
		doc.AddObject(object("obj", facets...), false)
	}
	doc.AddObject(nil, false)
	if doc.NumObj() != 5 {
		t.Errorf("NumObj() = %d; expected 5", doc.NumObj())
	}
}

func TestAddObjectPlanarUV(t *testing.T) {
	f := triangle("#mat", false)
	f.MaterialParam.Mapping = mesh.MappingPlanar
	f.MaterialParam.Texture.ShiftU = 0.25
	src := object("obj", f)
	src.AffineTrans = geom.NewAffineTrans()
	src.AffineTrans.Scale = geom.Vector3{X: 2, Y: 2, Z: 2}

	doc := NewDocument(Unity)
	doc.AddObject(src, true)
	geo := doc.Objects[0].Geos[0]

	expected := make([]geom.UVMap, 3)
	f.GeneratePlanarUVMap(src.AffineTrans.Scale, expected)
	for i := range expected {
		expected[i].U += 0.25
		if geo.UVs[i] != expected[i] {
			t.Errorf("UVs[%d] = %v; expected %v", i, geo.UVs[i], expected[i])
		}
	}
	if f.Texcrds[1] != (geom.UVMap{U: 1, V: 0}) {
		t.Error("source uv modified")
	}
	if geo.UVTransform == nil || geo.UVTransform.ShiftU != 0.25 {
		t.Error("UVTransform not recorded")
	}
}

func TestAddObjectSameMaterial(t *testing.T) {
	first := triangle("#mat", false)
	first.MaterialParam.Texture.Name = "tex.png"
	second := triangle("#mat", true)
	second.MaterialParam.Texture.Name = "tex.png"

	doc := NewDocument(Unity)
	doc.AddObject(object("obj", first, second), true)
	m := doc.Objects[0].Mtls
	if m[0].MapKd != "tex.png" {
		t.Error("setupParams not applied to first material", m[0].MapKd)
	}
	if !m[1].SameMaterial || m[1].MapKd != "" || m[1].Material != "#mat" {
		t.Error("shared material must keep only its name", m[1])
	}
}

func TestAddObjectSharedMaterialAfterSkip(t *testing.T) {
	first := triangle("#mat", false)
	first.NumTexcrd = 2
	second := triangle("#mat", true)
	second.MaterialParam.Texture.Name = "tex.png"
	third := triangle("#mat", true)

	doc := NewDocument(Unity)
	doc.AddObject(object("obj", first, second, third), true)
	m := doc.Objects[0].Mtls
	if len(m) != 2 {
		t.Fatal("expected 2 facets, got ", len(m))
	}
	if m[0].SameMaterial || m[0].MapKd != "tex.png" {
		t.Error("first kept facet must define the material", m[0].SameMaterial, m[0].MapKd)
	}
	if !m[1].SameMaterial {
		t.Error("later facets stay shared")
	}

	var buf bytes.Buffer
	doc.WriteMTL(&buf, "")
	if n := strings.Count(buf.String(), "newmtl mat\n"); n != 1 {
		t.Errorf("newmtl count = %d", n)
	}
}
