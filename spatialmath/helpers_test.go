package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// halfPi matches the angle used by the reference fixtures.
const halfPi = 3.14159265 / 2

func assertMatrixAlmostEqual(t *testing.T, got, want mat.Matrix, tol float64) {
	t.Helper()
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	test.That(t, []int{gr, gc}, test.ShouldResemble, []int{wr, wc})
	gotData := mat.DenseCopyOf(got).RawMatrix().Data
	wantData := mat.DenseCopyOf(want).RawMatrix().Data
	test.That(t, cmp.Diff(wantData, gotData, cmpopts.EquateApprox(0, tol)), test.ShouldBeEmpty)
}

func assertPointsAlmostEqual(t *testing.T, got, want []r3.Vector, tol float64) {
	t.Helper()
	test.That(t, cmp.Diff(want, got, cmpopts.EquateApprox(0, tol)), test.ShouldBeEmpty)
}

func randomQuaternion(rnd *rand.Rand) quat.Number {
	q := quat.Number{Real: rnd.NormFloat64(), Imag: rnd.NormFloat64(), Jmag: rnd.NormFloat64(), Kmag: rnd.NormFloat64()}
	return quat.Scale(1/quat.Abs(q), q)
}

func randomVector(rnd *rand.Rand, scale float64) r3.Vector {
	return r3.Vector{
		X: rnd.Float64()*2*scale - scale,
		Y: rnd.Float64()*2*scale - scale,
		Z: rnd.Float64()*2*scale - scale,
	}
}

func randomRt(t *testing.T, rnd *rand.Rand) *mat.Dense {
	t.Helper()
	rt, err := RtFromQuaternion(randomQuaternion(rnd), randomVector(rnd, 10))
	test.That(t, err, test.ShouldBeNil)
	return rt
}

func xRotation(theta float64) *mat.Dense {
	s, c := math.Sincos(theta)
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}
