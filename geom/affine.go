package geom

import "github.com/go-gl/mathgl/mgl64"

// AffineTrans is scale, then rotation, then shift.
type AffineTrans struct {
	Scale  Vector3
	Rotate mgl64.Quat
	Shift  Vector3
}

func NewAffineTrans() *AffineTrans {
	return &AffineTrans{
		Scale:  Vector3{1, 1, 1},
		Rotate: mgl64.QuatIdent(),
	}
}

func NewTRS(shift *Vector3, rot mgl64.Quat, scale *Vector3) *AffineTrans {
	return &AffineTrans{Scale: *scale, Rotate: rot, Shift: *shift}
}

func (a *AffineTrans) Clone() *AffineTrans {
	c := *a
	return &c
}

// Matrix returns T * R * S.
func (a *AffineTrans) Matrix() mgl64.Mat4 {
	t := mgl64.Translate3D(a.Shift.X, a.Shift.Y, a.Shift.Z)
	s := mgl64.Scale3D(a.Scale.X, a.Scale.Y, a.Scale.Z)
	return t.Mul4(a.Rotate.Normalize().Mat4()).Mul4(s)
}

// ExecTrans applies the full transform to a position.
func (a *AffineTrans) ExecTrans(v *Vector3) *Vector3 {
	return NewVector3FromVec3(mgl64.TransformCoordinate(v.Vec3(), a.Matrix()))
}

// ExecRotate applies only the rotation, for normals.
func (a *AffineTrans) ExecRotate(v *Vector3) *Vector3 {
	return NewVector3FromVec3(a.Rotate.Normalize().Rotate(v.Vec3()))
}

// Compose returns the transform of a child placed under a.
// Exact for uniform parent scale.
func (a *AffineTrans) Compose(child *AffineTrans) *AffineTrans {
	return &AffineTrans{
		Scale:  *a.Scale.Mul(&child.Scale),
		Rotate: a.Rotate.Mul(child.Rotate),
		Shift:  *a.ExecTrans(&child.Shift),
	}
}
