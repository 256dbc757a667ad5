package obj

import (
	"bufio"
	"fmt"
	"io"

	"github.com/binzume/objconv/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// WriteMTL writes every distinct material once. texDir is prepended to map paths.
func (doc *Document) WriteMTL(ww io.Writer, texDir string) error {
	w := bufio.NewWriter(ww)
	writeHeader(w, MTLFileHeader)

	written := map[string]bool{}
	for _, o := range doc.Objects {
		for _, m := range o.Mtls {
			if m.SameMaterial || written[m.Material] {
				continue
			}
			written[m.Material] = true

			w.WriteString("#\n")
			fmt.Fprintf(w, "newmtl %s\n", materialName(m.Material))
			if m.MapKd != "" {
				fmt.Fprintf(w, "map_Kd %s%s\n", texDir, m.MapKd)
			}
			if m.MapKs != "" {
				fmt.Fprintf(w, "map_Ks %s%s\n", texDir, m.MapKs)
			}
			if m.MapBump != "" {
				fmt.Fprintf(w, "map_bump %s%s\n", texDir, m.MapBump)
			}
			fmt.Fprintf(w, "Ka %f %f %f\n", float32(m.Ka.X), float32(m.Ka.Y), float32(m.Ka.Z))
			fmt.Fprintf(w, "Kd %f %f %f\n", float32(m.Kd.X), float32(m.Kd.Y), float32(m.Kd.Z))
			fmt.Fprintf(w, "Ks %f %f %f\n", float32(m.Ks.X), float32(m.Ks.Y), float32(m.Ks.Z))
			fmt.Fprintf(w, "d %f\n", float32(m.D))
			fmt.Fprintf(w, "Ni %f\n", float32(m.Ni))
			fmt.Fprintf(w, "illum %d\n", m.Illum)
		}
	}
	return w.Flush()
}

// OutputMTL writes the MTL file. Nothing is written if path cannot be created.
func (doc *Document) OutputMTL(path, texDir string) error {
	f, err := doc.create(path)
	if err != nil {
		logger.Warn("cannot create mtl file", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "create %s", path)
	}
	if err := doc.WriteMTL(f, texDir); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	return nil
}
