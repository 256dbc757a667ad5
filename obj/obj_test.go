package obj

import (
	"bytes"
	"io"
	"strings"

	"github.com/binzume/objconv/geom"
	"github.com/binzume/objconv/mesh"
	"github.com/pkg/errors"
)

var errClose = errors.New("close failed")

type memFile struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (f *memFile) Close() error {
	f.closed = true
	return f.closeErr
}

type memFS map[string]*memFile

func (fs memFS) create(name string) (io.WriteCloser, error) {
	f := &memFile{}
	fs[name] = f
	return f, nil
}

// failClose returns a create func whose file name fails to close.
func (fs memFS) failClose(name string) func(string) (io.WriteCloser, error) {
	return func(n string) (io.WriteCloser, error) {
		f := &memFile{}
		if n == name {
			f.closeErr = errClose
		}
		fs[n] = f
		return f, nil
	}
}

func triangle(material string, same bool) *mesh.MeshFacetNode {
	up := geom.Vector3{Z: 1}
	f := mesh.NewMeshFacetNode(
		[]geom.Vector3{{X: 1, Y: 2, Z: 3}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}},
		[]geom.Vector3{up, up, up},
		[]geom.UVMap{{U: 0, V: 0}, {U: 1, V: 0}, {U: 0, V: 1}},
		[]int{0, 1, 2},
	)
	f.MaterialID = material
	f.SameMaterial = same
	return f
}

func object(name string, facets ...*mesh.MeshFacetNode) *mesh.MeshObjectData {
	o := mesh.NewMeshObjectData(name)
	for _, f := range facets {
		o.AddFacet(f)
	}
	return o
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func linesWithPrefix(s, prefix string) []string {
	var ret []string
	for _, l := range lines(s) {
		if strings.HasPrefix(l, prefix) {
			ret = append(ret, l)
		}
	}
	return ret
}
