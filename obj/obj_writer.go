package obj

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/binzume/objconv/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type objWriter struct {
	*Document
	w      *bufio.Writer
	mtlLib string

	// nextFile is called to continue in a new file. nil: never split.
	nextFile func() (io.Writer, error)
}

// WriteOBJ writes all objects to a single stream.
func (doc *Document) WriteOBJ(w io.Writer, mtlLib string) error {
	ow := &objWriter{Document: doc, w: bufio.NewWriter(w), mtlLib: mtlLib}
	return ow.write()
}

// OutputOBJ writes the OBJ file. For Unity, output continues in
// <path>_1.obj, <path>_2.obj, ... once MaxFacet facets have been written.
func (doc *Document) OutputOBJ(path, mtlLib string) error {
	f, err := doc.create(path)
	if err != nil {
		logger.Warn("cannot create obj file", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "create %s", path)
	}
	cur, curName := f, path

	base := path[:len(path)-len(filepath.Ext(path))]
	fileNum := 1
	ow := &objWriter{Document: doc, w: bufio.NewWriter(f), mtlLib: mtlLib}
	ow.nextFile = func() (io.Writer, error) {
		err := cur.Close()
		cur = nil
		if err != nil {
			return nil, errors.Wrapf(err, "close %s", curName)
		}
		name := base + "_" + strconv.Itoa(fileNum) + ".obj"
		fileNum++
		f, err := doc.create(name)
		if err != nil {
			logger.Warn("cannot create obj file", zap.String("path", name), zap.Error(err))
			return nil, errors.Wrapf(err, "create %s", name)
		}
		logger.Debug("split obj file", zap.String("path", name))
		cur, curName = f, name
		return f, nil
	}

	err = ow.write()
	if cur != nil {
		if cerr := cur.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", curName)
		}
	}
	return err
}

func (ow *objWriter) write() error {
	w := ow.w
	writeHeader(w, OBJFileHeader)

	facetNum := 0
	pNum := 1
	for _, o := range ow.Objects {
		if ow.nextFile != nil && ow.Engine == Unity && facetNum > ow.maxFacet() {
			if err := w.Flush(); err != nil {
				return err
			}
			nw, err := ow.nextFile()
			if err != nil {
				return err
			}
			w.Reset(nw)
			facetNum = 0
			pNum = 1
		}

		w.WriteString("# \n# SHELL\n")
		for _, g := range o.Geos {
			if !g.Collider && !ow.PhantomOut {
				continue
			}
			ow.writeFacet(g, pNum)
			pNum += g.NumVertex()
			facetNum++
		}
	}
	return w.Flush()
}

func (ow *objWriter) writeFacet(g *FacetGeo, pNum int) {
	w := ow.w
	w.WriteString("#\n# FACET\n")
	fmt.Fprintf(w, "mtllib %s\n", ow.mtlLib)

	for _, v := range g.Vertices {
		x, y, z := float32(v.X), float32(v.Y), float32(v.Z)
		switch ow.Engine {
		case UnrealEngine:
			fmt.Fprintf(w, "v %s %s %s\n", ftoa(x*100), ftoa(y*100), ftoa(z*100))
		case Unity:
			fmt.Fprintf(w, "v %s %s %s\n", ftoa(x), ftoa(z), ftoa(-y))
		}
	}
	for _, t := range g.UVs {
		fmt.Fprintf(w, "vt %s %s\n", ftoa(float32(t.U)), ftoa(float32(t.V)))
	}
	for _, n := range g.Normals {
		x, y, z := float32(n.X), float32(n.Y), float32(n.Z)
		switch ow.Engine {
		case UnrealEngine:
			fmt.Fprintf(w, "vn %s %s %s\n", ftoa(x), ftoa(y), ftoa(z))
		case Unity:
			fmt.Fprintf(w, "vn %s %s %s\n", ftoa(x), ftoa(z), ftoa(-y))
		}
	}

	fmt.Fprintf(w, "usemtl %s\n", materialName(g.Material))
	// position, uv and normal share one index
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i]+pNum, g.Indices[i+1]+pNum, g.Indices[i+2]+pNum
		fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
}
