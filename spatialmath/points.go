package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Transform applies rt to a single point.
func Transform(rt mat.Matrix, p r3.Vector) (r3.Vector, error) {
	out, err := TransformPoints(rt, []r3.Vector{p})
	if err != nil {
		return r3.Vector{}, err
	}
	return out[0], nil
}

// TransformPoints applies rt to each point. The result has the same length as pts.
func TransformPoints(rt mat.Matrix, pts []r3.Vector) ([]r3.Vector, error) {
	if err := CheckRt(rt); err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return []r3.Vector{}, nil
	}
	out, err := TransformMatrix(rt, PointsToDense(pts))
	if err != nil {
		return nil, err
	}
	return DenseToPoints(out), nil
}

// TransformMatrix applies rt to every row of an Nx3 matrix of points and returns an Nx3 matrix.
func TransformMatrix(rt, pts mat.Matrix) (*mat.Dense, error) {
	if err := CheckRt(rt); err != nil {
		return nil, err
	}
	applied, err := ApplyHomogeneous(rt, pts)
	if err != nil {
		return nil, err
	}
	n, _ := applied.Dims()
	return mat.DenseCopyOf(applied.Slice(0, n, 0, 3)), nil
}

// ApplyHomogeneous appends a 1 to every row of the Nx3 matrix pts and multiplies each row by m, which
// must have four columns. The returned matrix is N x rows(m) and is not de-homogenized.
func ApplyHomogeneous(m, pts mat.Matrix) (*mat.Dense, error) {
	if _, cols := m.Dims(); cols != 4 {
		rows, _ := m.Dims()
		return nil, NewShapeError("homogeneous transform", rows, 4, m)
	}
	n, cols := pts.Dims()
	if n == 0 || cols != 3 {
		return nil, errors.Wrapf(ErrShapeMismatch, "points must be Nx3, got %dx%d", n, cols)
	}

	h := mat.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		h.Set(i, 0, pts.At(i, 0))
		h.Set(i, 1, pts.At(i, 1))
		h.Set(i, 2, pts.At(i, 2))
		h.Set(i, 3, 1)
	}
	var out mat.Dense
	out.Mul(h, m.T())
	return &out, nil
}

// PointsToDense stacks points into an Nx3 matrix. pts must not be empty.
func PointsToDense(pts []r3.Vector) *mat.Dense {
	data := make([]float64, 0, 3*len(pts))
	for _, p := range pts {
		data = append(data, p.X, p.Y, p.Z)
	}
	return mat.NewDense(len(pts), 3, data)
}

// DenseToPoints splits the first three columns of each row of m into points.
func DenseToPoints(m mat.Matrix) []r3.Vector {
	n, _ := m.Dims()
	pts := make([]r3.Vector, n)
	for i := range pts {
		pts[i] = r3.Vector{X: m.At(i, 0), Y: m.At(i, 1), Z: m.At(i, 2)}
	}
	return pts
}
