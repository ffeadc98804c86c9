// Package camera implements the pinhole camera model on 3x4 homogeneous projection matrices.
package camera

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrNoIntrinsics is when a camera does not have intrinsics parameters or other parameters.
var ErrNoIntrinsics = errors.New("camera intrinsic parameters are not available")

// NewNoIntrinsicsError is used when the intriniscs are not defined.
func NewNoIntrinsicsError(msg string) error {
	return errors.Wrap(ErrNoIntrinsics, msg)
}

// PinholeMatrix returns the 3x4 projection matrix
//
//	[[fx 0  cx 0],
//	 [0  fy cy 0],
//	 [0  0  1  0]]
func PinholeMatrix(fx, fy, cx, cy float64) *mat.Dense {
	return mat.NewDense(3, 4, []float64{
		fx, 0, cx, 0,
		0, fy, cy, 0,
		0, 0, 1, 0,
	})
}

// PinholeCameraIntrinsics holds the parameters necessary to do a perspective projection of a 3D scene to the 2D plane.
// Width and Height are optional; zero means the image size is not known.
type PinholeCameraIntrinsics struct {
	Width  int     `json:"width_px,omitempty"`
	Height int     `json:"height_px,omitempty"`
	Fx     float64 `json:"fx"`
	Fy     float64 `json:"fy"`
	Ppx    float64 `json:"ppx"`
	Ppy    float64 `json:"ppy"`
}

// CheckValid checks if the fields for PinholeCameraIntrinsics have valid inputs.
func (params *PinholeCameraIntrinsics) CheckValid() error {
	if params == nil {
		return NewNoIntrinsicsError("Intrinsics do not exist")
	}
	if params.Width < 0 || params.Height < 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid size (%#v, %#v)", params.Width, params.Height))
	}
	if params.Fx <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid focal length Fx = %#v", params.Fx))
	}
	if params.Fy <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid focal length Fy = %#v", params.Fy))
	}
	if params.Ppx < 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid principal X point Ppx = %#v", params.Ppx))
	}
	if params.Ppy < 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid principal Y point Ppy = %#v", params.Ppy))
	}
	return nil
}

// Matrix returns the 3x4 projection matrix of the intrinsics.
func (params *PinholeCameraIntrinsics) Matrix() *mat.Dense {
	return PinholeMatrix(params.Fx, params.Fy, params.Ppx, params.Ppy)
}

// CameraMatrix returns the 3x3 camera matrix
//
//	[[fx 0  ppx],
//	 [0  fy ppy],
//	 [0  0  1]]
func (params *PinholeCameraIntrinsics) CameraMatrix() *mat.Dense {
	cameraMatrix := mat.NewDense(3, 3, nil)
	cameraMatrix.Set(0, 0, params.Fx)
	cameraMatrix.Set(1, 1, params.Fy)
	cameraMatrix.Set(0, 2, params.Ppx)
	cameraMatrix.Set(1, 2, params.Ppy)
	cameraMatrix.Set(2, 2, 1)
	return cameraMatrix
}

// PointToPixel projects a 3D point in the camera frame to pixel coordinates.
func (params *PinholeCameraIntrinsics) PointToPixel(pt r3.Vector) (float64, float64, error) {
	projected, err := Project(params.Matrix(), pt)
	if err != nil {
		return 0, 0, err
	}
	return projected.X, projected.Y, nil
}

// PixelToPoint returns the 3D point in the camera frame seen at pixel (u, v) with depth z.
func (params *PinholeCameraIntrinsics) PixelToPoint(u, v, z float64) (r3.Vector, error) {
	return Reproject(params.Matrix(), r3.Vector{X: u, Y: v, Z: z})
}

// Contains reports whether the pixel (u, v) lies inside the image. It is always true when the image size is unknown.
func (params *PinholeCameraIntrinsics) Contains(u, v float64) bool {
	if params.Width == 0 || params.Height == 0 {
		return true
	}
	return u >= 0 && u < float64(params.Width) && v >= 0 && v < float64(params.Height)
}
