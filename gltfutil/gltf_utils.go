package gltfutil

import (
	"io/ioutil"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/binzume/objconv/geom"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

func Load(path string) (*gltf.Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return doc, nil
}

// ImageData returns the encoded bytes of doc.Images[idx]. The image may be
// stored in a buffer view, a data URI or a file relative to srcDir.
func ImageData(doc *gltf.Document, idx uint32, srcDir string) ([]byte, error) {
	if int(idx) >= len(doc.Images) {
		return nil, errors.Errorf("image %d out of range", idx)
	}
	img := doc.Images[idx]

	if img.BufferView != nil {
		if int(*img.BufferView) >= len(doc.BufferViews) {
			return nil, errors.Errorf("image %d: bufferView %d out of range", idx, *img.BufferView)
		}
		bv := doc.BufferViews[*img.BufferView]
		if int(bv.Buffer) >= len(doc.Buffers) {
			return nil, errors.Errorf("image %d: buffer %d out of range", idx, bv.Buffer)
		}
		data := doc.Buffers[bv.Buffer].Data
		end := int(bv.ByteOffset) + int(bv.ByteLength)
		if end > len(data) {
			return nil, errors.Errorf("image %d: bufferView exceeds buffer", idx)
		}
		return data[bv.ByteOffset:end], nil
	}

	if img.IsEmbeddedResource() {
		data, err := img.MarshalData()
		if err != nil {
			return nil, errors.Wrapf(err, "image %d", idx)
		}
		return data, nil
	}

	if img.URI == "" {
		return nil, errors.Errorf("image %d has no data", idx)
	}
	uri, err := url.PathUnescape(img.URI)
	if err != nil {
		uri = img.URI
	}
	data, err := ioutil.ReadFile(filepath.Join(srcDir, filepath.FromSlash(uri)))
	if err != nil {
		return nil, errors.Wrapf(err, "image %d", idx)
	}
	return data, nil
}

// ImageName returns the PNG file name used for doc.Images[idx] in the output.
func ImageName(doc *gltf.Document, idx uint32) string {
	stem := ""
	if int(idx) < len(doc.Images) {
		img := doc.Images[idx]
		if img.URI != "" && !img.IsEmbeddedResource() {
			uri, err := url.PathUnescape(img.URI)
			if err != nil {
				uri = img.URI
			}
			base := path.Base(uri)
			stem = strings.TrimSuffix(base, path.Ext(base))
		}
		if stem == "" {
			stem = img.Name
		}
	}
	if stem == "" {
		stem = "image_" + strconv.Itoa(int(idx))
	}
	return stem + ".png"
}

// ImageExt returns the lower case extension of the source image, if known.
func ImageExt(doc *gltf.Document, idx uint32) string {
	if int(idx) >= len(doc.Images) {
		return ""
	}
	img := doc.Images[idx]
	if img.URI != "" && !img.IsEmbeddedResource() {
		return strings.ToLower(path.Ext(img.URI))
	}
	if i := strings.LastIndex(img.MimeType, "/"); i >= 0 {
		return "." + strings.TrimPrefix(img.MimeType[i+1:], "x-")
	}
	return ""
}

// TextureImage returns the image index of doc.Textures[tex].
func TextureImage(doc *gltf.Document, tex uint32) (uint32, bool) {
	if int(tex) >= len(doc.Textures) || doc.Textures[tex].Source == nil {
		return 0, false
	}
	src := *doc.Textures[tex].Source
	return src, int(src) < len(doc.Images)
}

// NodeTransform returns the local transform of n.
func NodeTransform(n *gltf.Node) *geom.AffineTrans {
	m := n.MatrixOrDefault()
	if m != gltf.DefaultMatrix {
		return decompose(m)
	}
	return geom.NewTRS(
		geom.NewVector3FromArray(n.TranslationOrDefault()),
		quat(n.RotationOrDefault()),
		geom.NewVector3FromArray(n.ScaleOrDefault()),
	)
}

func quat(r [4]float32) mgl64.Quat {
	// glTF order is x, y, z, w
	return mgl64.Quat{W: float64(r[3]), V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}}
}

// decompose splits a column-major TRS matrix. Shear is dropped.
func decompose(m [16]float32) *geom.AffineTrans {
	var mat mgl64.Mat4
	for i, v := range m {
		mat[i] = float64(v)
	}
	shift := geom.NewVector3(mat[12], mat[13], mat[14])
	scale := geom.NewVector3(mat.Col(0).Vec3().Len(), mat.Col(1).Vec3().Len(), mat.Col(2).Vec3().Len())

	rot := mgl64.Ident4()
	for c, s := range []float64{scale.X, scale.Y, scale.Z} {
		if s == 0 {
			continue
		}
		col := mat.Col(c).Vec3().Mul(1 / s)
		rot.SetCol(c, mgl64.Vec4{col[0], col[1], col[2], 0})
	}
	return geom.NewTRS(shift, mgl64.Mat4ToQuat(rot), scale)
}
