package converter

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/binzume/objconv/gltfutil"
	"github.com/binzume/objconv/internal/logger"
	"github.com/binzume/objconv/obj"
	"github.com/blezek/tga"
	ftga "github.com/ftrvxmtrx/tga"
	"github.com/oov/psd"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// TextureExporter writes the textures referenced by glTF materials as PNG
// files, using the names the MTL file refers to.
type TextureExporter struct {
	SrcDir          string
	OutDir          string // <outPath><texDir>
	ResolutionLimit int    // 0: unlimited
}

func NewTextureExporter(srcDir, outDir string, limit int) *TextureExporter {
	return &TextureExporter{SrcDir: srcDir, OutDir: outDir, ResolutionLimit: limit}
}

// referencedImages returns the images used by base color and normal textures.
func referencedImages(doc *gltf.Document) []uint32 {
	seen := map[uint32]bool{}
	var images []uint32
	add := func(tex uint32) {
		if img, ok := gltfutil.TextureImage(doc, tex); ok && !seen[img] {
			seen[img] = true
			images = append(images, img)
		}
	}
	for _, m := range doc.Materials {
		if m.PBRMetallicRoughness != nil && m.PBRMetallicRoughness.BaseColorTexture != nil {
			add(m.PBRMetallicRoughness.BaseColorTexture.Index)
		}
		if m.NormalTexture != nil && m.NormalTexture.Index != nil {
			add(*m.NormalTexture.Index)
		}
	}
	return images
}

// Export writes every referenced texture and returns the names written.
// Images that cannot be read are logged and skipped.
func (e *TextureExporter) Export(doc *gltf.Document) []string {
	var written []string
	for _, idx := range referencedImages(doc) {
		name := obj.CanonicalFileName(gltfutil.ImageName(doc, idx))
		if err := e.exportImage(doc, idx, name); err != nil {
			logger.Warn("skip texture", zap.String("name", name), zap.Error(err))
			continue
		}
		written = append(written, name)
	}
	return written
}

func (e *TextureExporter) exportImage(doc *gltf.Document, idx uint32, name string) error {
	data, err := gltfutil.ImageData(doc, idx, e.SrcDir)
	if err != nil {
		return err
	}
	img, err := decodeImage(data, gltfutil.ImageExt(doc, idx))
	if err != nil {
		return err
	}
	img = e.scale(img)

	if err := os.MkdirAll(e.OutDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(e.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	logger.Debug("texture", zap.String("path", path), zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return nil
}

var decoders = []struct {
	magic  string
	decode func(io.Reader) (image.Image, error)
}{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"BM", bmp.Decode},
	{"RIFF", webp.Decode},
	{"8BPS", decodePSD},
}

// decodeImage picks a decoder by magic number. TGA has none, so it is tried
// last, and first for .tga files.
func decodeImage(data []byte, ext string) (image.Image, error) {
	if ext != ".tga" {
		for _, d := range decoders {
			if bytes.HasPrefix(data, []byte(d.magic)) {
				img, err := d.decode(bytes.NewReader(data))
				if err != nil {
					return nil, errors.Wrap(err, "decode")
				}
				return img, nil
			}
		}
	}
	return decodeTGA(data)
}

func decodePSD(r io.Reader) (image.Image, error) {
	p, _, err := psd.Decode(r, nil)
	if err != nil {
		return nil, err
	}
	if p.Picker == nil {
		return nil, errors.New("psd has no composite image")
	}
	return p.Picker, nil
}

func decodeTGA(data []byte) (image.Image, error) {
	img, err := ftga.Decode(bytes.NewReader(data))
	if err != nil {
		// retry
		img, err = tga.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	return img, nil
}

func (e *TextureExporter) scale(img image.Image) image.Image {
	rect := img.Bounds()
	sz := rect.Dx()
	if rect.Dy() > sz {
		sz = rect.Dy()
	}
	if e.ResolutionLimit <= 0 || sz <= e.ResolutionLimit {
		return img
	}
	scale := float64(e.ResolutionLimit) / float64(sz)
	w, h := int(float64(rect.Dx())*scale), int(float64(rect.Dy())*scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, rect, draw.Over, nil)
	return dst
}
