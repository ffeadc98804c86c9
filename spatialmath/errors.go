package spatialmath

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShapeMismatch is returned when a matrix or vector does not have the dimensions an operation expects.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrEmptyChain is returned when Chain is called without any matrices.
	ErrEmptyChain = errors.New("cannot chain zero matrices")
	// ErrZeroAxis is returned when an axis-angle rotation is given an axis of zero length.
	ErrZeroAxis = errors.New("rotation axis has zero length")
	// ErrNonUnitQuaternion is returned when a rotation is requested from a quaternion that is not unit length.
	ErrNonUnitQuaternion = errors.New("quaternion is not unit length")
	// ErrNotOrthonormal is returned when a rotation block is not a proper rotation.
	ErrNotOrthonormal = errors.New("rotation block is not orthonormal")
)

// NewShapeError reports that m was expected to be rows x cols.
func NewShapeError(what string, rows, cols int, m mat.Matrix) error {
	r, c := m.Dims()
	return errors.Wrapf(ErrShapeMismatch, "%s must be %dx%d, got %dx%d", what, rows, cols, r, c)
}
