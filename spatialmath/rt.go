// Package spatialmath defines spatial mathematical operations on homogeneous rigid transforms.
//
// An Rt matrix is a 4x4 *mat.Dense whose upper-left 3x3 block is a rotation and whose upper-right
// column is a translation. Points are r3.Vectors and are transformed as p' = Rt * [p; 1].
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/tf3d/utils"
)

// Tolerances used when validating caller supplied rotations.
const (
	UnitTolerance        = 1e-6
	OrthonormalTolerance = 1e-6
)

// Identity returns the 4x4 identity Rt matrix.
func Identity() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// NewRt builds an Rt matrix from a 3x3 rotation and a translation. The rotation must be orthonormal with
// determinant +1.
func NewRt(r mat.Matrix, t r3.Vector) (*mat.Dense, error) {
	if rows, cols := r.Dims(); rows != 3 || cols != 3 {
		return nil, NewShapeError("rotation", 3, 3, r)
	}
	if err := CheckRotation(r); err != nil {
		return nil, err
	}
	return composeRt(r, t), nil
}

// RtFromOffset returns a pure translation Rt matrix.
func RtFromOffset(offset r3.Vector) *mat.Dense {
	rt := Identity()
	setTranslation(rt, offset)
	return rt
}

// RtFromOffsetSlice is RtFromOffset for an offset that has not been checked to be a 3-vector.
func RtFromOffsetSlice(offset []float64) (*mat.Dense, error) {
	v, err := VectorFromSlice(offset)
	if err != nil {
		return nil, errors.Wrap(err, "offset")
	}
	return RtFromOffset(v), nil
}

// VectorFromSlice converts a length 3 slice to a vector.
func VectorFromSlice(s []float64) (r3.Vector, error) {
	if len(s) != 3 {
		return r3.Vector{}, errors.Wrapf(ErrShapeMismatch, "expected 3 components, got %d", len(s))
	}
	return r3.Vector{X: s[0], Y: s[1], Z: s[2]}, nil
}

// CheckRotation returns ErrNotOrthonormal unless r is a proper rotation within OrthonormalTolerance.
func CheckRotation(r mat.Matrix) error {
	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.
			if i == j {
				want = 1
			}
			if !utils.Float64AlmostEqual(rtr.At(i, j), want, OrthonormalTolerance) {
				return errors.Wrapf(ErrNotOrthonormal, "RᵀR differs from identity at (%d,%d)", i, j)
			}
		}
	}
	if det := mat.Det(r); det < 0 {
		return errors.Wrapf(ErrNotOrthonormal, "determinant is %v", det)
	}
	return nil
}

// CheckRt verifies that rt is 4x4 with a homogeneous bottom row. The rotation block is not checked.
func CheckRt(rt mat.Matrix) error {
	if rows, cols := rt.Dims(); rows != 4 || cols != 4 {
		return NewShapeError("Rt matrix", 4, 4, rt)
	}
	for j, want := range []float64{0, 0, 0, 1} {
		if got := rt.At(3, j); math.Abs(got-want) > UnitTolerance {
			return errors.Wrapf(ErrShapeMismatch, "Rt matrix bottom row must be [0 0 0 1], got %v at column %d", got, j)
		}
	}
	return nil
}

// RtAlmostEqual reports whether two matrices have the same shape and all elements within tol.
func RtAlmostEqual(a, b mat.Matrix, tol float64) bool {
	return mat.EqualApprox(a, b, tol)
}

func composeRt(r mat.Matrix, t r3.Vector) *mat.Dense {
	rt := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rt.Set(i, j, r.At(i, j))
		}
	}
	setTranslation(rt, t)
	return rt
}

func setTranslation(rt *mat.Dense, t r3.Vector) {
	rt.Set(0, 3, t.X)
	rt.Set(1, 3, t.Y)
	rt.Set(2, 3, t.Z)
}
