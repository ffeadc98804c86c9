package pipeline

import (
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/tf3d/camera"
	"go.viam.com/tf3d/spatialmath"
)

func TestConfigFromMapRejectsUnknownKeys(t *testing.T) {
	_, err := ConfigFromMap(map[string]interface{}{
		"stages": []interface{}{
			map[string]interface{}{"type": "offset", "offset": []interface{}{1, 2, 3}, "scale": 2},
		},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "scale")

	_, err = ConfigFromJSON([]byte(`{"stages": [`))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestStageValidate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		stage    StageConfig
		contains string
		cause    error
	}{
		{"missing type", StageConfig{}, "type", nil},
		{"unknown type", StageConfig{Type: "shear"}, "shear", nil},
		{"missing offset", StageConfig{Type: OffsetStage}, "offset", nil},
		{"short offset", StageConfig{Type: OffsetStage, Offset: []float64{1, 2}}, "offset", spatialmath.ErrShapeMismatch},
		{"translation on offset", StageConfig{Type: OffsetStage, Offset: []float64{1, 2, 3}, Translation: []float64{1, 2, 3}}, "translation", nil},
		{"long translation", StageConfig{Type: QuaternionStage, Quaternion: &QuaternionConfig{W: 1}, Translation: []float64{1, 2, 3, 4}}, "translation", spatialmath.ErrShapeMismatch},
		{"missing quaternion", StageConfig{Type: QuaternionStage}, "quaternion", nil},
		{"non unit quaternion", StageConfig{Type: QuaternionStage, Quaternion: &QuaternionConfig{W: 1, X: 1}}, "quaternion", spatialmath.ErrNonUnitQuaternion},
		{"missing axis", StageConfig{Type: AxisAngleStage, AngleRad: 1}, "axis", nil},
		{"zero axis", StageConfig{Type: AxisAngleStage, Axis: []float64{0, 0, 0}, AngleRad: 1}, "axis", spatialmath.ErrZeroAxis},
		{"two angles", StageConfig{Type: AxisAngleStage, Axis: []float64{0, 0, 1}, AngleRad: 1, AngleDeg: 1}, "angle_deg", nil},
		{"missing intrinsics", StageConfig{Type: PinholeStage}, "intrinsics", nil},
		{"bad intrinsics", StageConfig{Type: PinholeStage, Intrinsics: &camera.PinholeCameraIntrinsics{Fy: 1}}, "Fx", camera.ErrNoIntrinsics},
		{"missing matrix", StageConfig{Type: MatrixStage}, "matrix", nil},
		{"two rows", StageConfig{Type: MatrixStage, Matrix: [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}}}, "rows", spatialmath.ErrShapeMismatch},
		{"ragged", StageConfig{Type: MatrixStage, Matrix: [][]float64{{1, 0, 0, 0}, {0, 1, 0}, {0, 0, 1, 0}}}, "row 1", spatialmath.ErrShapeMismatch},
		{"bottom row", StageConfig{Type: MatrixStage, Matrix: [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {1, 0, 0, 1}}}, "bottom row", spatialmath.ErrShapeMismatch},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.stage.Validate("path")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, "path")
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.contains)
			if tc.cause != nil {
				test.That(t, err.Error(), test.ShouldContainSubstring, tc.cause.Error())
			}

			_, err = tc.stage.Build()
			test.That(t, err, test.ShouldNotBeNil)
		})
	}
}

func TestStageBuild(t *testing.T) {
	m, err := (&StageConfig{Type: AxisAngleStage, Axis: []float64{1, 0, 0}, AngleDeg: 180, Translation: []float64{1, 2, 3}}).Build()
	test.That(t, err, test.ShouldBeNil)
	translation, err := spatialmath.TFromRt(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, translation.X, test.ShouldAlmostEqual, 1)
	test.That(t, translation.Y, test.ShouldAlmostEqual, 2)
	test.That(t, translation.Z, test.ShouldAlmostEqual, 3)
	test.That(t, m.At(1, 1), test.ShouldAlmostEqual, -1)

	m, err = (&StageConfig{Type: MatrixStage, Matrix: [][]float64{{2, 0, 100, 0}, {0, 1, 200, 0}, {0, 0, 1, 0}}}).Build()
	test.That(t, err, test.ShouldBeNil)
	rows, cols := m.Dims()
	test.That(t, rows, test.ShouldEqual, 3)
	test.That(t, cols, test.ShouldEqual, 4)

	m, err = (&StageConfig{Type: AxisAngleStage, Axis: []float64{0, 1, 0}}).Build()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.RtAlmostEqual(m, spatialmath.Identity(), 1e-12), test.ShouldBeTrue)
}

func TestConfigValidateAggregates(t *testing.T) {
	conf := &Config{Stages: []StageConfig{
		{Name: "a", Type: OffsetStage},
		{Name: "a", Type: OffsetStage, Offset: []float64{1, 2, 3}},
		{Type: "bogus"},
	}}
	err := conf.Validate("pipeline")
	test.That(t, err, test.ShouldNotBeNil)
	errs := multierr.Errors(err)
	test.That(t, len(errs), test.ShouldEqual, 3)
	test.That(t, errs[0].Error(), test.ShouldContainSubstring, "pipeline.stages.0")
	test.That(t, errs[1].Error(), test.ShouldContainSubstring, "bogus")
	test.That(t, errs[2].Error(), test.ShouldContainSubstring, `duplicate stage name "a"`)

	conf.Stages[0].Offset = []float64{0, 0, 0}
	conf.Stages[1].Name = "b"
	conf.Stages[2].Type = PinholeStage
	conf.Stages[2].Intrinsics = &camera.PinholeCameraIntrinsics{Fx: 1, Fy: 1}
	test.That(t, conf.Validate("pipeline"), test.ShouldBeNil)
}
