package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/tf3d/camera"
	"go.viam.com/tf3d/spatialmath"
)

// StageType names the kind of matrix a stage builds.
type StageType string

// The supported stage types.
const (
	OffsetStage     StageType = "offset"
	QuaternionStage StageType = "quaternion"
	AxisAngleStage  StageType = "axis_angle"
	PinholeStage    StageType = "pinhole"
	MatrixStage     StageType = "matrix"
)

var stageTypes = []StageType{OffsetStage, QuaternionStage, AxisAngleStage, PinholeStage, MatrixStage}

// QuaternionConfig is a rotation quaternion with scalar part W.
type QuaternionConfig struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// StageConfig describes one transform in a pipeline. Which fields are read depends on Type:
//   - offset: offset
//   - quaternion: quaternion, translation (optional)
//   - axis_angle: axis, angle_rad or angle_deg, translation (optional)
//   - pinhole: intrinsics
//   - matrix: matrix, given as 3 or 4 rows of 4 columns
type StageConfig struct {
	Name        string                          `json:"name,omitempty"`
	Type        StageType                       `json:"type"`
	Offset      []float64                       `json:"offset,omitempty"`
	Translation []float64                       `json:"translation,omitempty"`
	Quaternion  *QuaternionConfig               `json:"quaternion,omitempty"`
	Axis        []float64                       `json:"axis,omitempty"`
	AngleRad    float64                         `json:"angle_rad,omitempty"`
	AngleDeg    float64                         `json:"angle_deg,omitempty"`
	Intrinsics  *camera.PinholeCameraIntrinsics `json:"intrinsics,omitempty"`
	Matrix      [][]float64                     `json:"matrix,omitempty"`
}

// Config is an ordered list of stages, applied first to last.
type Config struct {
	Stages []StageConfig `json:"stages"`
}

// ConfigFromMap decodes a pipeline config from loosely typed attributes, such as those found in a larger JSON
// document. Unknown keys are rejected.
func ConfigFromMap(attrs map[string]interface{}) (*Config, error) {
	var conf Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &conf, ErrorUnused: true})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, errors.Wrap(err, "cannot decode pipeline config")
	}
	return &conf, nil
}

// ConfigFromJSON decodes a pipeline config from JSON bytes. Unknown keys are rejected.
func ConfigFromJSON(data []byte) (*Config, error) {
	var attrs map[string]interface{}
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Wrap(err, "cannot parse pipeline config")
	}
	return ConfigFromMap(attrs)
}

// Validate ensures all stages of the config are valid. Every invalid stage is reported.
func (conf *Config) Validate(path string) error {
	if len(conf.Stages) == 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "stages")
	}
	var errs error
	for idx, stage := range conf.Stages {
		errs = multierr.Append(errs, stage.Validate(fmt.Sprintf("%s.%s.%d", path, "stages", idx)))
	}
	named := lo.Filter(conf.Stages, func(stage StageConfig, _ int) bool { return stage.Name != "" })
	for _, dup := range lo.FindDuplicates(lo.Map(named, func(stage StageConfig, _ int) string { return stage.Name })) {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path, errors.Errorf("duplicate stage name %q", dup)))
	}
	return errs
}

// Validate ensures the fields required by the stage's type are present and well formed.
func (conf *StageConfig) Validate(path string) error {
	if conf.Type == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "type")
	}
	if !lo.Contains(stageTypes, conf.Type) {
		return goutils.NewConfigValidationError(path, errors.Errorf("unknown stage type %q, expected one of %v", conf.Type, stageTypes))
	}
	if conf.Translation != nil {
		if conf.Type != QuaternionStage && conf.Type != AxisAngleStage {
			return goutils.NewConfigValidationError(path, errors.Errorf("%s stages do not take a translation", conf.Type))
		}
		if _, err := spatialmath.VectorFromSlice(conf.Translation); err != nil {
			return goutils.NewConfigValidationError(path, errors.Wrap(err, "translation"))
		}
	}

	switch conf.Type {
	case OffsetStage:
		if conf.Offset == nil {
			return goutils.NewConfigValidationFieldRequiredError(path, "offset")
		}
		if _, err := spatialmath.VectorFromSlice(conf.Offset); err != nil {
			return goutils.NewConfigValidationError(path, errors.Wrap(err, "offset"))
		}
	case QuaternionStage:
		if conf.Quaternion == nil {
			return goutils.NewConfigValidationFieldRequiredError(path, "quaternion")
		}
		if err := spatialmath.CheckUnitQuaternion(conf.quaternion()); err != nil {
			return goutils.NewConfigValidationError(path, err)
		}
	case AxisAngleStage:
		if conf.Axis == nil {
			return goutils.NewConfigValidationFieldRequiredError(path, "axis")
		}
		axis, err := spatialmath.VectorFromSlice(conf.Axis)
		if err != nil {
			return goutils.NewConfigValidationError(path, errors.Wrap(err, "axis"))
		}
		if axis.Norm() == 0 {
			return goutils.NewConfigValidationError(path, spatialmath.ErrZeroAxis)
		}
		if conf.AngleRad != 0 && conf.AngleDeg != 0 {
			return goutils.NewConfigValidationError(path, errors.New("only one of angle_rad and angle_deg may be set"))
		}
	case PinholeStage:
		if conf.Intrinsics == nil {
			return goutils.NewConfigValidationFieldRequiredError(path, "intrinsics")
		}
		if err := conf.Intrinsics.CheckValid(); err != nil {
			return goutils.NewConfigValidationError(path, err)
		}
	case MatrixStage:
		if conf.Matrix == nil {
			return goutils.NewConfigValidationFieldRequiredError(path, "matrix")
		}
		if _, err := denseFromRows(conf.Matrix); err != nil {
			return goutils.NewConfigValidationError(path, err)
		}
	}
	return nil
}
