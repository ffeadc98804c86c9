// Package pipeline composes a declarative list of transform and projection stages into a single matrix and
// applies it to points.
package pipeline

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/tf3d/camera"
	"go.viam.com/tf3d/logging"
	"go.viam.com/tf3d/spatialmath"
)

// A Pipeline is an immutable chain of stages. It is safe for concurrent use.
type Pipeline struct {
	stages []Stage
	matrix *mat.Dense
}

// New validates conf and chains its stages, first to last. A nil logger uses the global logger.
func New(conf *Config, logger logging.Logger) (*Pipeline, error) {
	if conf == nil {
		return nil, errors.New("pipeline config is nil")
	}
	if logger == nil {
		logger = logging.Global()
	}
	if err := conf.Validate("pipeline"); err != nil {
		return nil, err
	}

	stages := make([]Stage, 0, len(conf.Stages))
	for idx := range conf.Stages {
		stageConf := &conf.Stages[idx]
		m, err := stageConf.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d", idx)
		}
		name := stageConf.name(idx)
		rows, cols := m.Dims()
		logger.Debugw("built pipeline stage", "index", idx, "name", name, "type", stageConf.Type, "rows", rows, "cols", cols)
		if rows == 3 && idx != len(conf.Stages)-1 {
			logger.Warnw("projection is followed by more stages, its output will be treated as a homogeneous point", "stage", name)
		}
		stages = append(stages, Stage{Name: name, Type: stageConf.Type, Matrix: m})
	}

	matrix, err := spatialmath.Chain(lo.Map(stages, func(s Stage, _ int) mat.Matrix { return s.Matrix })...)
	if err != nil {
		return nil, err
	}
	logger.Debugw("built pipeline", "stages", lo.Map(stages, func(s Stage, _ int) string { return s.Name }))
	return &Pipeline{stages: stages, matrix: matrix}, nil
}

// Matrix returns a copy of the chained matrix.
func (p *Pipeline) Matrix() *mat.Dense {
	return mat.DenseCopyOf(p.matrix)
}

// Stages returns copies of the built stages in application order.
func (p *Pipeline) Stages() []Stage {
	return lo.Map(p.stages, func(s Stage, _ int) Stage {
		return Stage{Name: s.Name, Type: s.Type, Matrix: mat.DenseCopyOf(s.Matrix)}
	})
}

// Projects reports whether the pipeline ends in a projection and so produces [u, v, depth] rather than points.
func (p *Pipeline) Projects() bool {
	rows, _ := p.matrix.Dims()
	return rows == 3
}

// Apply runs every point through the pipeline. Projecting pipelines return [u, v, depth] per point.
func (p *Pipeline) Apply(pts []r3.Vector) ([]r3.Vector, error) {
	if p.Projects() {
		return camera.ProjectPoints(p.matrix, pts)
	}
	return spatialmath.TransformPoints(p.matrix, pts)
}

// Unapply is the inverse of Apply. Non-projecting pipelines must be rigid.
func (p *Pipeline) Unapply(pts []r3.Vector) ([]r3.Vector, error) {
	if p.Projects() {
		return camera.ReprojectPoints(p.matrix, pts)
	}
	inv, err := spatialmath.RtInverse(p.matrix)
	if err != nil {
		return nil, err
	}
	return spatialmath.TransformPoints(inv, pts)
}
