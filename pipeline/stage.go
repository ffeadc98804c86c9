package pipeline

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/tf3d/spatialmath"
	"go.viam.com/tf3d/utils"
)

// Stage is a built pipeline stage.
type Stage struct {
	Name   string
	Type   StageType
	Matrix *mat.Dense
}

// Build validates the stage and returns its matrix: 4x4 for rigid stages, 3x4 for pinhole stages and 3x4 or
// 4x4 for matrix stages.
func (conf *StageConfig) Build() (*mat.Dense, error) {
	if err := conf.Validate(string(conf.Type)); err != nil {
		return nil, err
	}
	switch conf.Type {
	case OffsetStage:
		return spatialmath.RtFromOffsetSlice(conf.Offset)
	case QuaternionStage:
		return spatialmath.RtFromQuaternion(conf.quaternion(), conf.translation())
	case AxisAngleStage:
		axis, err := spatialmath.VectorFromSlice(conf.Axis)
		if err != nil {
			return nil, err
		}
		rotation, err := spatialmath.RtFromAxisAngle(axis, conf.angle())
		if err != nil {
			return nil, err
		}
		// Rotating then translating is [R | t].
		return spatialmath.Chain(rotation, spatialmath.RtFromOffset(conf.translation()))
	case PinholeStage:
		return conf.Intrinsics.Matrix(), nil
	case MatrixStage:
		return denseFromRows(conf.Matrix)
	default:
		return nil, errors.Errorf("unknown stage type %q", conf.Type)
	}
}

func (conf *StageConfig) name(idx int) string {
	if conf.Name != "" {
		return conf.Name
	}
	return fmt.Sprintf("%s_%d", conf.Type, idx)
}

func (conf *StageConfig) quaternion() quat.Number {
	if conf.Quaternion == nil {
		return quat.Number{}
	}
	return quat.Number{Real: conf.Quaternion.W, Imag: conf.Quaternion.X, Jmag: conf.Quaternion.Y, Kmag: conf.Quaternion.Z}
}

func (conf *StageConfig) translation() r3.Vector {
	t, err := spatialmath.VectorFromSlice(conf.Translation)
	if err != nil {
		return r3.Vector{}
	}
	return t
}

func (conf *StageConfig) angle() float64 {
	if conf.AngleDeg != 0 {
		return utils.DegToRad(conf.AngleDeg)
	}
	return conf.AngleRad
}

// denseFromRows builds a 3x4 or 4x4 matrix from rows. A 4x4 matrix must have the homogeneous bottom row.
func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) != 3 && len(rows) != 4 {
		return nil, errors.Wrapf(spatialmath.ErrShapeMismatch, "matrix must have 3 or 4 rows, got %d", len(rows))
	}
	data := make([]float64, 0, 4*len(rows))
	for i, row := range rows {
		if len(row) != 4 {
			return nil, errors.Wrapf(spatialmath.ErrShapeMismatch, "matrix row %d must have 4 columns, got %d", i, len(row))
		}
		data = append(data, row...)
	}
	m := mat.NewDense(len(rows), 4, data)
	if len(rows) == 4 {
		if err := spatialmath.CheckRt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
