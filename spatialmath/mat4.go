package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// RtToMat4 converts a 4x4 matrix into a column-major mgl64.Mat4.
func RtToMat4(rt mat.Matrix) (mgl64.Mat4, error) {
	if err := CheckRt(rt); err != nil {
		return mgl64.Mat4{}, err
	}
	var m mgl64.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m.Set(i, j, rt.At(i, j))
		}
	}
	return m, nil
}

// RtFromMat4 converts an mgl64.Mat4 to a 4x4 *mat.Dense.
func RtFromMat4(m mgl64.Mat4) *mat.Dense {
	rt := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			rt.Set(i, j, m.At(i, j))
		}
	}
	return rt
}
