package obj

import (
	"github.com/binzume/objconv/geom"
	"github.com/binzume/objconv/internal/logger"
	"github.com/binzume/objconv/mesh"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AddObject appends data as a new object. Malformed facets are logged and skipped.
// On ErrBufferAlloc the object stays in the document with the facets added so far.
func (doc *Document) AddObject(data *mesh.MeshObjectData, collider bool) error {
	if data == nil {
		return nil
	}

	o := &Object{Name: data.Name}
	if data.AffineTrans != nil {
		o.AffineTrans = data.AffineTrans.Clone()
	}
	doc.Objects = append(doc.Objects, o)

	scale := geom.Vector3{X: 1, Y: 1, Z: 1}
	if data.AffineTrans != nil {
		scale = data.AffineTrans.Scale
	}

	for i, facet := range data.Facets {
		if facet == nil {
			continue
		}
		if facet.NumVertex != facet.NumTexcrd {
			logger.Warn("mismatch vertex and uvmap number",
				zap.String("object", data.Name), zap.Int("facet", i),
				zap.Int("vertex", facet.NumVertex), zap.Int("uvmap", facet.NumTexcrd))
			continue
		}

		geo, err := newFacetGeo(facet)
		if err != nil {
			if errors.Cause(err) == ErrMalformedFacet {
				logger.Warn("skip facet", zap.String("object", data.Name), zap.Int("facet", i), zap.Error(err))
				continue
			}
			return errors.Wrapf(err, "object %q facet %d", data.Name, i)
		}
		geo.Collider = collider

		if facet.MaterialParam.Mapping == mesh.MappingPlanar {
			facet.GeneratePlanarUVMap(scale, geo.UVs)
		}
		facet.ExecAffineTransUVMap(geo.UVs)
		if facet.MaterialParam.Texture.HasUVTrans() {
			tp := facet.MaterialParam.Texture
			geo.UVTransform = &tp
		}

		// A shared material whose defining facet was skipped is defined here.
		mtl := NewFacetMtl(facet.MaterialID)
		mtl.SameMaterial = facet.SameMaterial && doc.materials[facet.MaterialID]
		if !mtl.SameMaterial {
			mtl.Param = facet.MaterialParam.Dup()
			mtl.setupParams()
			if doc.materials == nil {
				doc.materials = map[string]bool{}
			}
			doc.materials[facet.MaterialID] = true
		}

		o.Geos = append(o.Geos, geo)
		o.Mtls = append(o.Mtls, mtl)
	}
	return nil
}

func checkLen(what string, have, want int) error {
	if want < 0 || have < want {
		return errors.Wrapf(ErrBufferAlloc, "%s: need %d, have %d", what, want, have)
	}
	return nil
}

// newFacetGeo copies the buffers of f. Source slices are never shared.
func newFacetGeo(f *mesh.MeshFacetNode) (*FacetGeo, error) {
	if err := checkLen("index", len(f.Indices), f.NumIndex); err != nil {
		return nil, err
	}
	indices := append([]int(nil), f.Indices[:f.NumIndex]...)
	if f.NumIndex%3 != 0 {
		return nil, errors.Wrapf(ErrMalformedFacet, "index count %d is not a multiple of 3", f.NumIndex)
	}
	for _, idx := range indices {
		if idx < 0 || idx >= f.NumVertex {
			return nil, errors.Wrapf(ErrMalformedFacet, "index %d out of range [0,%d)", idx, f.NumVertex)
		}
	}

	n := f.NumVertex
	for _, c := range []struct {
		what string
		have int
	}{{"vertex", len(f.Vertices)}, {"normal", len(f.Normals)}, {"uvmap", len(f.Texcrds)}} {
		if err := checkLen(c.what, c.have, n); err != nil {
			return nil, err
		}
	}

	return &FacetGeo{
		Material: f.MaterialID,
		Indices:  indices,
		Vertices: append([]geom.Vector3(nil), f.Vertices[:n]...),
		Normals:  append([]geom.Vector3(nil), f.Normals[:n]...),
		UVs:      append([]geom.UVMap(nil), f.Texcrds[:n]...),
	}, nil
}
