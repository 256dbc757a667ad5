package mesh

import (
	"math"

	"github.com/binzume/objconv/geom"
)

// GeneratePlanarUVMap writes planar projected texture coordinates into uv.
func (f *MeshFacetNode) GeneratePlanarUVMap(scale geom.Vector3, uv []geom.UVMap) {
	unitX := geom.Vector3{X: 1}
	for i := 0; i < f.NumVertex && i < len(uv); i++ {
		normal := f.Normals[i]
		var binormal *geom.Vector3
		d := normal.Dot(&unitX)
		if d >= 0.5 || d <= -0.5 {
			binormal = &geom.Vector3{Y: 1}
			if normal.X < 0 {
				binormal = binormal.Scale(-1)
			}
		} else {
			binormal = &geom.Vector3{X: 1}
			if normal.Y > 0 {
				binormal = binormal.Scale(-1)
			}
		}
		tangent := binormal.Cross(&normal)
		pos := f.Vertices[i].Mul(&scale)

		uv[i].U = 1 + (binormal.Dot(pos)*2 - 0.5)
		uv[i].V = -(tangent.Dot(pos)*2 - 0.5)
	}
}

// ExecAffineTransUVMap applies the diffuse texture's UV transform to uv.
func (f *MeshFacetNode) ExecAffineTransUVMap(uv []geom.UVMap) {
	f.MaterialParam.Texture.ExecTrans(uv)
}

// HasUVTrans reports whether ExecTrans changes coordinates.
func (t *TextureParam) HasUVTrans() bool {
	return t.FlipU || t.FlipV || t.Rotate != 0 || t.ShiftU != 0 || t.ShiftV != 0 ||
		(t.ScaleU != 1 && t.ScaleU != 0) || (t.ScaleV != 1 && t.ScaleV != 0)
}

// ExecTrans flips, rotates and scales about (0.5, 0.5), then shifts.
func (t *TextureParam) ExecTrans(uv []geom.UVMap) {
	scaleU, scaleV := t.ScaleU, t.ScaleV
	if scaleU == 0 {
		scaleU = 1
	}
	if scaleV == 0 {
		scaleV = 1
	}
	for i := range uv {
		p := uv[i]
		if t.FlipU {
			p.U = 1 - p.U
		}
		if t.FlipV {
			p.V = 1 - p.V
		}
		if t.Rotate != 0 && !math.IsNaN(t.Rotate) {
			p = *p.Rotate(t.Rotate, 0.5, 0.5)
		}
		if scaleU != 1 || scaleV != 1 {
			p.U = (p.U-0.5)*scaleU + 0.5
			p.V = (p.V-0.5)*scaleV + 0.5
		}
		p.U += t.ShiftU
		p.V += t.ShiftV
		uv[i] = p
	}
}
