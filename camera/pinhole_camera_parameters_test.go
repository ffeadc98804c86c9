package camera

import (
	"encoding/json"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestPinholeCameraIntrinsicsCheckValid(t *testing.T) {
	var nilIntrinsics *PinholeCameraIntrinsics
	test.That(t, errors.Is(nilIntrinsics.CheckValid(), ErrNoIntrinsics), test.ShouldBeTrue)

	good := &PinholeCameraIntrinsics{Width: 1280, Height: 720, Fx: 900, Fy: 900, Ppx: 640, Ppy: 360}
	test.That(t, good.CheckValid(), test.ShouldBeNil)
	sizeless := &PinholeCameraIntrinsics{Fx: 2, Fy: 1, Ppx: 100, Ppy: 200}
	test.That(t, sizeless.CheckValid(), test.ShouldBeNil)

	for _, tc := range []struct {
		name       string
		intrinsics PinholeCameraIntrinsics
		msg        string
	}{
		{"negative size", PinholeCameraIntrinsics{Width: -1, Fx: 1, Fy: 1}, "Invalid size"},
		{"zero fx", PinholeCameraIntrinsics{Fy: 1}, "Fx"},
		{"negative fy", PinholeCameraIntrinsics{Fx: 1, Fy: -1}, "Fy"},
		{"negative ppx", PinholeCameraIntrinsics{Fx: 1, Fy: 1, Ppx: -3}, "Ppx"},
		{"negative ppy", PinholeCameraIntrinsics{Fx: 1, Fy: 1, Ppy: -3}, "Ppy"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.intrinsics.CheckValid()
			test.That(t, errors.Is(err, ErrNoIntrinsics), test.ShouldBeTrue)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.msg)
		})
	}
}

func TestPinholeCameraIntrinsicsMatrices(t *testing.T) {
	intrinsics := &PinholeCameraIntrinsics{Fx: 2, Fy: 1, Ppx: 100, Ppy: 200}
	test.That(t, mat.Equal(intrinsics.Matrix(), PinholeMatrix(2, 1, 100, 200)), test.ShouldBeTrue)
	test.That(t, mat.Equal(intrinsics.CameraMatrix(), mat.NewDense(3, 3, []float64{
		2, 0, 100,
		0, 1, 200,
		0, 0, 1,
	})), test.ShouldBeTrue)
}

func TestPinholeCameraIntrinsicsPixels(t *testing.T) {
	intrinsics := &PinholeCameraIntrinsics{Width: 640, Height: 480, Fx: 500, Fy: 400, Ppx: 320, Ppy: 240}
	u, v, err := intrinsics.PointToPixel(r3.Vector{X: 1, Y: -1, Z: 10})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, u, test.ShouldAlmostEqual, 370)
	test.That(t, v, test.ShouldAlmostEqual, 200)
	test.That(t, intrinsics.Contains(u, v), test.ShouldBeTrue)
	test.That(t, intrinsics.Contains(-1, v), test.ShouldBeFalse)
	test.That(t, intrinsics.Contains(u, 480), test.ShouldBeFalse)

	pt, err := intrinsics.PixelToPoint(u, v, 10)
	test.That(t, err, test.ShouldBeNil)
	assertPointsAlmostEqual(t, []r3.Vector{pt}, []r3.Vector{{X: 1, Y: -1, Z: 10}}, 1e-9)

	_, _, err = intrinsics.PointToPixel(r3.Vector{X: 1})
	test.That(t, errors.Is(err, ErrZeroDepth), test.ShouldBeTrue)

	test.That(t, (&PinholeCameraIntrinsics{Fx: 1, Fy: 1}).Contains(-5, 1e9), test.ShouldBeTrue)
}

func TestPinholeCameraIntrinsicsJSON(t *testing.T) {
	var intrinsics PinholeCameraIntrinsics
	err := json.Unmarshal([]byte(`{"width_px": 1280, "height_px": 720, "fx": 900.5, "fy": 901, "ppx": 640, "ppy": 360}`), &intrinsics)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, intrinsics, test.ShouldResemble, PinholeCameraIntrinsics{
		Width: 1280, Height: 720, Fx: 900.5, Fy: 901, Ppx: 640, Ppy: 360,
	})
}
