package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// CheckUnitQuaternion returns ErrNonUnitQuaternion unless |q| is within UnitTolerance of 1.
func CheckUnitQuaternion(q quat.Number) error {
	if norm := quat.Abs(q); math.Abs(norm-1) > UnitTolerance {
		return errors.Wrapf(ErrNonUnitQuaternion, "norm is %v", norm)
	}
	return nil
}

// QuatToRotationMatrix converts a unit quaternion to its 3x3 rotation matrix.
// See: https://www.euclideanspace.com/maths/geometry/rotations/conversions/quaternionToMatrix/index.htm
func QuatToRotationMatrix(q quat.Number) *mat.Dense {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	})
}

// RtFromQuaternion returns an Rt matrix with the rotation of q and translation t. Pass r3.Vector{} for
// a pure rotation.
func RtFromQuaternion(q quat.Number, t r3.Vector) (*mat.Dense, error) {
	if err := CheckUnitQuaternion(q); err != nil {
		return nil, err
	}
	return composeRt(QuatToRotationMatrix(q), t), nil
}

// QuaternionFromRt returns the unit quaternion of the rotation block of rt, with a non-negative real part.
func QuaternionFromRt(rt mat.Matrix) (quat.Number, error) {
	r, err := RFromRt(rt)
	if err != nil {
		return quat.Number{}, err
	}
	if err := CheckRotation(r); err != nil {
		return quat.Number{}, err
	}
	m, err := RtToMat4(rt)
	if err != nil {
		return quat.Number{}, err
	}
	mq := mgl64.Mat4ToQuat(m).Normalize()
	q := quat.Number{Real: mq.W, Imag: mq.V[0], Jmag: mq.V[1], Kmag: mq.V[2]}
	if q.Real < 0 {
		q = Flip(q)
	}
	return q, nil
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}
