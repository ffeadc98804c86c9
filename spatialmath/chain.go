package spatialmath

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Chain composes transforms in the order they are applied: Chain(A, B, C) returns C*B*A, so applying the
// result to a point is the same as applying A, then B, then C.
//
// Every operand must be a 4x4 Rt matrix or a 3x4 projection matrix. A 3x4 intermediate result is padded
// with the homogeneous row [0 0 0 1] before the next operand is applied, so a projection may appear
// anywhere in the chain; the shape of the last operand determines the shape of the result.
func Chain(ms ...mat.Matrix) (*mat.Dense, error) {
	if len(ms) == 0 {
		return nil, ErrEmptyChain
	}
	for i, m := range ms {
		if err := checkChainable(m); err != nil {
			return nil, errors.Wrapf(err, "chain operand %d", i)
		}
	}

	acc := mat.DenseCopyOf(ms[0])
	for _, m := range ms[1:] {
		if rows, _ := acc.Dims(); rows == 3 {
			acc = PadHomogeneous(acc)
		}
		var next mat.Dense
		next.Mul(m, acc)
		acc = &next
	}
	return acc, nil
}

// PadHomogeneous returns a copy of a 3x4 matrix with the row [0 0 0 1] appended. 4x4 matrices are copied
// unchanged.
func PadHomogeneous(m mat.Matrix) *mat.Dense {
	rows, cols := m.Dims()
	if rows == 4 {
		return mat.DenseCopyOf(m)
	}
	padded := mat.NewDense(rows+1, cols, nil)
	padded.Copy(m)
	padded.Set(rows, cols-1, 1)
	return padded
}

func checkChainable(m mat.Matrix) error {
	rows, cols := m.Dims()
	if cols != 4 || (rows != 3 && rows != 4) {
		return errors.Wrapf(ErrShapeMismatch, "can only chain 4x4 or 3x4 matrices, got %dx%d", rows, cols)
	}
	return nil
}
