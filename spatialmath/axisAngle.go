package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// See here for a thorough explanation: https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
// An axis-angle rotation is an axis (rx, ry, rz) through the origin and a rotation theta around it, in
// radians, following the right hand rule. The axis does not need to be unit length on input.

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// Axis returns the rotation axis as a vector.
func (r4 *R4AA) Axis() r3.Vector {
	return r3.Vector{X: r4.RX, Y: r4.RY, Z: r4.RZ}
}

// Normalize scales the x, y, and z components of a R4 axis angle to be on the unit sphere.
func (r4 *R4AA) Normalize() error {
	norm := r4.Axis().Norm()
	if norm == 0 {
		return ErrZeroAxis
	}
	r4.RX /= norm
	r4.RY /= norm
	r4.RZ /= norm
	return nil
}

// ToQuat converts an R4 axis angle to a unit quaternion.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/angleToQuaternion/index.htm
func (r4 R4AA) ToQuat() (quat.Number, error) {
	if err := r4.Normalize(); err != nil {
		return quat.Number{}, err
	}
	sinA, cosA := math.Sincos(r4.Theta / 2)
	return quat.Number{Real: cosA, Imag: r4.RX * sinA, Jmag: r4.RY * sinA, Kmag: r4.RZ * sinA}, nil
}

// RotationMatrix returns the 3x3 rotation using Rodrigues' formula
// R = I + sin(θ)K + (1-cos(θ))K², where K is the cross product matrix of the unit axis.
func (r4 R4AA) RotationMatrix() (*mat.Dense, error) {
	if err := r4.Normalize(); err != nil {
		return nil, err
	}
	x, y, z := r4.RX, r4.RY, r4.RZ
	s, c := math.Sincos(r4.Theta)
	v := 1 - c
	return mat.NewDense(3, 3, []float64{
		c + x*x*v, x*y*v - z*s, x*z*v + y*s,
		y*x*v + z*s, c + y*y*v, y*z*v - x*s,
		z*x*v - y*s, z*y*v + x*s, c + z*z*v,
	}), nil
}

// RtFromAxisAngle returns an Rt matrix rotating by angle radians about axis, with zero translation.
func RtFromAxisAngle(axis r3.Vector, angle float64) (*mat.Dense, error) {
	r, err := (R4AA{Theta: angle, RX: axis.X, RY: axis.Y, RZ: axis.Z}).RotationMatrix()
	if err != nil {
		return nil, errors.Wrapf(err, "axis %v", axis)
	}
	return composeRt(r, r3.Vector{}), nil
}

// QuaternionFromAxisAngle returns the unit quaternion rotating by angle radians about axis.
func QuaternionFromAxisAngle(axis r3.Vector, angle float64) (quat.Number, error) {
	q, err := (R4AA{Theta: angle, RX: axis.X, RY: axis.Y, RZ: axis.Z}).ToQuat()
	if err != nil {
		return quat.Number{}, errors.Wrapf(err, "axis %v", axis)
	}
	return q, nil
}
