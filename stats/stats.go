// Package stats holds the statistical and geometric checks used to validate
// generator output, both from tests and from the rngeasy check command.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/xor-shift/rngeasy/util/rng"
)

// Uniformity is the outcome of a chi-squared goodness of fit test against
// the discrete uniform distribution.
type Uniformity struct {
	ChiSquare float64
	DF        int
	PValue    float64

	// largest |observed/expected - 1| over all buckets
	MaxRelDeviation float64
}

// Uniform tests bucket counts against equal expected frequencies.
func Uniform(counts []uint64) Uniformity {
	obs := make([]float64, len(counts))
	for i, c := range counts {
		obs[i] = float64(c)
	}

	mean := floats.Sum(obs) / float64(len(obs))
	exp := make([]float64, len(obs))
	for i := range exp {
		exp[i] = mean
	}

	maxDev := 0.
	for _, o := range obs {
		maxDev = math.Max(maxDev, math.Abs(o/mean-1))
	}

	chi := stat.ChiSquare(obs, exp)
	df := len(obs) - 1

	return Uniformity{
		ChiSquare:       chi,
		DF:              df,
		PValue:          distuv.ChiSquared{K: float64(df)}.Survival(chi),
		MaxRelDeviation: maxDev,
	}
}

// Pass reports whether the counts are consistent with uniformity at the
// given significance level.
func (u Uniformity) Pass(significance float64) bool {
	return u.PValue >= significance
}

func Norm2(v rng.Vec2) float64 {
	return r2.Norm(r2.Vec{X: float64(v.X), Y: float64(v.Y)})
}

func Norm3(v rng.Vec3) float64 {
	return r3.Norm(r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)})
}

func QuatNorm(q rng.Quat) float64 {
	return quat.Abs(quat.Number{Real: float64(q.W), Imag: float64(q.X), Jmag: float64(q.Y), Kmag: float64(q.Z)})
}
