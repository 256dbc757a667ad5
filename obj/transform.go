package obj

import "github.com/binzume/objconv/geom"

// ExecAffineTrans applies each object's transform to its vertices and normals.
// With NoOffset, the first object's shift is subtracted from every vertex and
// returned as the scene offset. Must be called once.
func (doc *Document) ExecAffineTrans() geom.Vector3 {
	var center geom.Vector3
	if doc.NoOffset && len(doc.Objects) > 0 && doc.Objects[0].AffineTrans != nil {
		center = doc.Objects[0].AffineTrans.Shift
	}

	for _, o := range doc.Objects {
		if o.AffineTrans == nil {
			continue
		}
		for _, g := range o.Geos {
			for i := range g.Vertices {
				g.Vertices[i] = *o.AffineTrans.ExecTrans(&g.Vertices[i]).Sub(&center)
				g.Normals[i] = *o.AffineTrans.ExecRotate(&g.Normals[i])
			}
		}
	}
	return center
}
