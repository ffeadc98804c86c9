package camera

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/tf3d/spatialmath"
)

var (
	// ErrZeroDepth is returned for points whose depth through the projection is zero.
	ErrZeroDepth = errors.New("point has zero depth")
	// ErrSingularProjection is returned when the left 3x3 block of a projection matrix cannot be inverted.
	ErrSingularProjection = errors.New("projection matrix has a singular 3x3 block")
)

// Project maps a 3D point through the 3x4 projection p to [u, v, w], where w is the third row of p*[x; 1]
// and u and v are the first two rows divided by w. Keeping w makes the mapping invertible by Reproject.
func Project(p mat.Matrix, pt r3.Vector) (r3.Vector, error) {
	out, err := ProjectPoints(p, []r3.Vector{pt})
	if err != nil {
		return r3.Vector{}, err
	}
	return out[0], nil
}

// ProjectPoints is Project applied to each point.
func ProjectPoints(p mat.Matrix, pts []r3.Vector) ([]r3.Vector, error) {
	if err := CheckProjection(p); err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return []r3.Vector{}, nil
	}
	out, err := ProjectMatrix(p, spatialmath.PointsToDense(pts))
	if err != nil {
		return nil, err
	}
	return spatialmath.DenseToPoints(out), nil
}

// ProjectMatrix is Project applied to each row of an Nx3 matrix.
func ProjectMatrix(p, pts mat.Matrix) (*mat.Dense, error) {
	if err := CheckProjection(p); err != nil {
		return nil, err
	}
	projected, err := spatialmath.ApplyHomogeneous(p, pts)
	if err != nil {
		return nil, err
	}
	n, _ := projected.Dims()
	for i := 0; i < n; i++ {
		w := projected.At(i, 2)
		if w == 0 {
			return nil, errors.Wrapf(ErrZeroDepth, "point %d", i)
		}
		projected.Set(i, 0, projected.At(i, 0)/w)
		projected.Set(i, 1, projected.At(i, 1)/w)
	}
	return projected, nil
}

// Reproject is the inverse of Project: given [u, v, w] it returns the point x with p*[x; 1] = w*[u, v, 1].
func Reproject(p mat.Matrix, projected r3.Vector) (r3.Vector, error) {
	out, err := ReprojectPoints(p, []r3.Vector{projected})
	if err != nil {
		return r3.Vector{}, err
	}
	return out[0], nil
}

// ReprojectPoints is Reproject applied to each point.
func ReprojectPoints(p mat.Matrix, projected []r3.Vector) ([]r3.Vector, error) {
	if err := CheckProjection(p); err != nil {
		return nil, err
	}
	if len(projected) == 0 {
		return []r3.Vector{}, nil
	}
	out, err := ReprojectMatrix(p, spatialmath.PointsToDense(projected))
	if err != nil {
		return nil, err
	}
	return spatialmath.DenseToPoints(out), nil
}

// ReprojectMatrix is Reproject applied to each row of an Nx3 matrix.
func ReprojectMatrix(p, projected mat.Matrix) (*mat.Dense, error) {
	kInv, offset, err := decompose(p)
	if err != nil {
		return nil, err
	}
	n, cols := projected.Dims()
	if n == 0 || cols != 3 {
		return nil, errors.Wrapf(spatialmath.ErrShapeMismatch, "projected points must be Nx3, got %dx%d", n, cols)
	}

	// Each row becomes w*[u v 1] - p4, which K maps back from.
	rays := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		w := projected.At(i, 2)
		if w == 0 {
			return nil, errors.Wrapf(ErrZeroDepth, "point %d", i)
		}
		rays.Set(i, 0, w*projected.At(i, 0)-offset.X)
		rays.Set(i, 1, w*projected.At(i, 1)-offset.Y)
		rays.Set(i, 2, w-offset.Z)
	}
	var out mat.Dense
	out.Mul(rays, kInv.T())
	return &out, nil
}

// CheckProjection returns ErrShapeMismatch unless p is 3x4.
func CheckProjection(p mat.Matrix) error {
	if rows, cols := p.Dims(); rows != 3 || cols != 4 {
		return spatialmath.NewShapeError("projection matrix", 3, 4, p)
	}
	return nil
}

// decompose splits p into the inverse of its left 3x3 block and its fourth column.
func decompose(p mat.Matrix) (*mat.Dense, r3.Vector, error) {
	if err := CheckProjection(p); err != nil {
		return nil, r3.Vector{}, err
	}
	k := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			k.Set(i, j, p.At(i, j))
		}
	}
	var kInv mat.Dense
	if err := kInv.Inverse(k); err != nil {
		return nil, r3.Vector{}, errors.Wrap(ErrSingularProjection, err.Error())
	}
	return &kInv, r3.Vector{X: p.At(0, 3), Y: p.At(1, 3), Z: p.At(2, 3)}, nil
}
