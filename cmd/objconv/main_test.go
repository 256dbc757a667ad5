package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binzume/objconv/internal/config"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func writeGLB(t *testing.T, path string) {
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	ind := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	bv := modeler.WriteBufferView(doc, gltf.TargetNone, img.Bytes())
	doc.Images = []*gltf.Image{{Name: "base color", MimeType: "image/png", BufferView: gltf.Index(bv)}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	doc.Materials = []*gltf.Material{{
		Name:                 "body",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorTexture: &gltf.TextureInfo{Index: 0}},
	}}
	doc.Meshes = []*gltf.Mesh{{Name: "tri", Primitives: []*gltf.Primitive{{
		Indices:    gltf.Index(ind),
		Attributes: map[string]uint32{gltf.POSITION: pos},
		Material:   gltf.Index(0),
	}}}}
	doc.Nodes = []*gltf.Node{{Name: "tri", Mesh: gltf.Index(0), Translation: [3]float32{0, 0, 1}}}
	doc.Scenes = []*gltf.Scene{{Nodes: []uint32{0}}}
	doc.Scene = gltf.Index(0)
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "scene.glb")
	writeGLB(t, input)

	out := filepath.Join(dir, "out")
	cfg := config.Default()
	cfg.Output.Engine = "ue"
	cfg.Output.Dir = out
	cfg.Output.TextureDir = "tex/"
	if err := convert(input, "", cfg); err != nil {
		t.Fatal(err)
	}

	objData, err := os.ReadFile(filepath.Join(out, "scene.obj"))
	if err != nil {
		t.Fatal(err)
	}
	// glTF (0, 1, 0) + (0, 0, 1) is (0, -1, 1) in Z-up, times 100.
	if !strings.Contains(string(objData), "v 0 -100 100\n") {
		t.Errorf("unexpected obj:\n%s", objData)
	}
	mtlData, err := os.ReadFile(filepath.Join(out, "scene.mtl"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mtlData), "newmtl body\nmap_Kd tex/base_color.png\n") {
		t.Errorf("unexpected mtl:\n%s", mtlData)
	}
	if _, err := os.Stat(filepath.Join(out, "tex", "base_color.png")); err != nil {
		t.Error("texture not exported: ", err)
	}
}

func TestConvertError(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Dir = dir
	if err := convert(filepath.Join(dir, "missing.glb"), "", cfg); err == nil {
		t.Error("expected error for missing input")
	}

	input := filepath.Join(dir, "scene.glb")
	writeGLB(t, input)
	cfg.Output.Engine = "blender"
	if err := convert(input, "", cfg); err == nil {
		t.Error("expected error for unknown engine")
	}
}
