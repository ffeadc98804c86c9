package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// A rigid transform with rotation r and translation t is the unit dual quaternion r + ε(t*r)/2. The
// product of two such numbers b*a is the transform that applies a first, then b, which is what Chain
// computes for Chain(a, b).

// RtToDualQuaternion converts a rigid Rt matrix to a unit dual quaternion.
func RtToDualQuaternion(rt mat.Matrix) (dualquat.Number, error) {
	r, err := QuaternionFromRt(rt)
	if err != nil {
		return dualquat.Number{}, err
	}
	t, err := TFromRt(rt)
	if err != nil {
		return dualquat.Number{}, err
	}
	return dualquat.Number{
		Real: r,
		Dual: quat.Scale(0.5, quat.Mul(quat.Number{Imag: t.X, Jmag: t.Y, Kmag: t.Z}, r)),
	}, nil
}

// RtFromDualQuaternion converts a unit dual quaternion to an Rt matrix.
func RtFromDualQuaternion(dq dualquat.Number) (*mat.Dense, error) {
	if err := CheckUnitQuaternion(dq.Real); err != nil {
		return nil, errors.Wrap(err, "dual quaternion real part")
	}
	// Multiplying the dual part by the conjugate of the real part recovers the translation quaternion.
	t := quat.Scale(2, quat.Mul(dq.Dual, quat.Conj(dq.Real)))
	return RtFromQuaternion(dq.Real, r3.Vector{X: t.Imag, Y: t.Jmag, Z: t.Kmag})
}
