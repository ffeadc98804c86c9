package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// RtInverse returns the inverse of a rigid transform, [Rᵀ | -Rᵀt]. rt must have an orthonormal rotation
// block.
func RtInverse(rt mat.Matrix) (*mat.Dense, error) {
	r, err := RFromRt(rt)
	if err != nil {
		return nil, err
	}
	if err := CheckRotation(r); err != nil {
		return nil, errors.Wrap(err, "cannot invert a non-rigid transform")
	}
	t, err := TFromRt(rt)
	if err != nil {
		return nil, err
	}

	var rInv mat.Dense
	rInv.CloneFrom(r.T())
	tInv := MulVec3(&rInv, t).Mul(-1)
	return composeRt(&rInv, tInv), nil
}

// RFromRt returns a copy of the 3x3 rotation block of rt.
func RFromRt(rt mat.Matrix) (*mat.Dense, error) {
	if err := CheckRt(rt); err != nil {
		return nil, err
	}
	r := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, rt.At(i, j))
		}
	}
	return r, nil
}

// TFromRt returns the translation column of rt.
func TFromRt(rt mat.Matrix) (r3.Vector, error) {
	if err := CheckRt(rt); err != nil {
		return r3.Vector{}, err
	}
	return r3.Vector{X: rt.At(0, 3), Y: rt.At(1, 3), Z: rt.At(2, 3)}, nil
}

// MulVec3 returns m*v for a 3x3 m.
func MulVec3(m mat.Matrix, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}
