package camera

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/tf3d/spatialmath"
	"go.viam.com/tf3d/utils"
)

var (
	// ErrRangeTooShort is returned when no point on a pixel's viewing ray is as close to the origin as the given range.
	ErrRangeTooShort = errors.New("range is shorter than the viewing ray's distance to the origin")
	// ErrBehindCamera is returned when the only points matching a pixel and range lie behind the camera.
	ErrBehindCamera = errors.New("reprojection lies behind the camera")
	// ErrAmbiguousRange is returned when two distinct points in front of the camera match a pixel and range.
	// This only happens when the range is shorter than the distance from the origin to the camera center.
	ErrAmbiguousRange = errors.New("two points in front of the camera match the range")
)

// ProjectRange is Project with the third component replaced by the point's Euclidean distance from the origin.
func ProjectRange(p mat.Matrix, pt r3.Vector) (r3.Vector, error) {
	out, err := ProjectRangePoints(p, []r3.Vector{pt})
	if err != nil {
		return r3.Vector{}, err
	}
	return out[0], nil
}

// ProjectRangePoints is ProjectRange applied to each point.
func ProjectRangePoints(p mat.Matrix, pts []r3.Vector) ([]r3.Vector, error) {
	projected, err := ProjectPoints(p, pts)
	if err != nil {
		return nil, err
	}
	for i := range projected {
		projected[i].Z = pts[i].Norm()
	}
	return projected, nil
}

// ReprojectRange inverts ProjectRange. A viewing ray generally crosses the sphere of the given range twice.
// When exactly one crossing is in front of the camera (positive depth) it is returned; points behind the
// camera therefore do not round trip. When both crossings are in front of the camera, ErrAmbiguousRange is
// returned. A camera centered at the origin is never ambiguous.
func ReprojectRange(p mat.Matrix, projected r3.Vector) (r3.Vector, error) {
	out, err := ReprojectRangePoints(p, []r3.Vector{projected})
	if err != nil {
		return r3.Vector{}, err
	}
	return out[0], nil
}

// ReprojectRangePoints is ReprojectRange applied to each point.
func ReprojectRangePoints(p mat.Matrix, projected []r3.Vector) ([]r3.Vector, error) {
	kInv, offset, err := decompose(p)
	if err != nil {
		return nil, err
	}
	// Points on the ray through (u, v) are w*a - b for depth w.
	b := spatialmath.MulVec3(kInv, offset)
	out := make([]r3.Vector, len(projected))
	for i, pr := range projected {
		if pr.Z < 0 {
			return nil, errors.Wrapf(ErrRangeTooShort, "point %d has negative range %v", i, pr.Z)
		}
		a := spatialmath.MulVec3(kInv, r3.Vector{X: pr.X, Y: pr.Y, Z: 1})
		// |w*a - b|² = range² is quadratic in w.
		aa, ab := a.Dot(a), a.Dot(b)
		disc := utils.Square(ab) - aa*(b.Dot(b)-utils.Square(pr.Z))
		if disc < 0 {
			return nil, errors.Wrapf(ErrRangeTooShort, "point %d", i)
		}
		root := math.Sqrt(disc)
		w := (ab + root) / aa
		if w <= 0 {
			return nil, errors.Wrapf(ErrBehindCamera, "point %d", i)
		}
		if near := (ab - root) / aa; root > 0 && near > 0 {
			return nil, errors.Wrapf(ErrAmbiguousRange, "point %d has depths %v and %v", i, near, w)
		}
		out[i] = a.Mul(w).Sub(b)
	}
	return out, nil
}
