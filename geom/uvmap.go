package geom

import "math"

// UVMap is a texture coordinate.
type UVMap struct {
	U Element
	V Element
}

func NewUVMap(u, v Element) *UVMap {
	return &UVMap{U: u, V: v}
}

func (uv *UVMap) Add(uv2 *UVMap) *UVMap {
	return &UVMap{U: uv.U + uv2.U, V: uv.V + uv2.V}
}

func (uv *UVMap) Sub(uv2 *UVMap) *UVMap {
	return &UVMap{U: uv.U - uv2.U, V: uv.V - uv2.V}
}

func (uv *UVMap) Scale(su, sv Element) *UVMap {
	return &UVMap{U: uv.U * su, V: uv.V * sv}
}

// Rotate rotates uv by th radians around (cu, cv).
func (uv *UVMap) Rotate(th, cu, cv Element) *UVMap {
	c, s := math.Cos(th), math.Sin(th)
	u, v := uv.U-cu, uv.V-cv
	return &UVMap{U: u*c - v*s + cu, V: u*s + v*c + cv}
}
