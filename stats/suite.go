package stats

import (
	"fmt"
	"math"

	"github.com/xor-shift/rngeasy/util/rng"
)

const (
	// Significance is the p-value below which a uniformity check fails.
	Significance = 1e-4
	// NormTolerance bounds |norm - 1| for unit vectors and quaternions.
	NormTolerance = 1e-5
)

// Check is the result of one property check.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Run checks the distribution properties of a stream seeded with seed over
// the given number of trials.
func Run(seed uint32, trials int) []Check {
	return []Check{
		checkSeeding(seed),
		checkBounds(seed, trials),
		checkDice(seed, trials),
		checkFloats(seed, trials),
		checkNorms(seed, trials),
		checkHemisphere(seed, trials),
		checkShuffle(seed),
	}
}

// Failed returns the checks that did not pass.
func Failed(checks []Check) []Check {
	var ret []Check
	for _, c := range checks {
		if !c.OK {
			ret = append(ret, c)
		}
	}
	return ret
}

func checkSeeding(seed uint32) Check {
	a, b := rng.Seed(seed), rng.Seed(seed)
	ok := a == b && (a.S0 != 0 || a.S1 != 0)
	return Check{Name: "seeding", OK: ok, Detail: fmt.Sprintf("state %s", a)}
}

func checkBounds(seed uint32, trials int) Check {
	state := rng.Seed(seed)
	for _, bound := range []uint32{1, 2, 3, 7, 100, 65536} {
		for i := 0; i < trials; i++ {
			if v := rng.U32To(&state, bound); v >= bound {
				return Check{Name: "bounds", Detail: fmt.Sprintf("U32To(%d) returned %d", bound, v)}
			}
			if v := rng.U32In(&state, 10, 10+bound-1); v < 10 || v > 10+bound-1 {
				return Check{Name: "bounds", Detail: fmt.Sprintf("U32In(10, %d) returned %d", 10+bound-1, v)}
			}
		}
	}
	return Check{Name: "bounds", OK: true}
}

func checkDice(seed uint32, trials int) Check {
	state := rng.Seed(seed)
	counts := make([]uint64, 6)
	for i := 0; i < trials; i++ {
		counts[rng.Dice(&state, 6)]++
	}

	u := Uniform(counts)
	return Check{
		Name:   "d6 uniformity",
		OK:     u.Pass(Significance),
		Detail: fmt.Sprintf("chi2=%.3f df=%d p=%.4f maxdev=%.4f", u.ChiSquare, u.DF, u.PValue, u.MaxRelDeviation),
	}
}

func checkFloats(seed uint32, trials int) Check {
	state := rng.Seed(seed)
	for i := 0; i < trials; i++ {
		if f := rng.FloatUnit(&state); f < 0 || f > 1 {
			return Check{Name: "float bounds", Detail: fmt.Sprintf("FloatUnit returned %g", f)}
		}
		if f := rng.FloatEUnit(&state); f < 0 || f >= 1 {
			return Check{Name: "float bounds", Detail: fmt.Sprintf("FloatEUnit returned %g", f)}
		}
	}
	return Check{Name: "float bounds", OK: true}
}

func checkNorms(seed uint32, trials int) Check {
	state := rng.Seed(seed)
	worst := 0.
	for i := 0; i < trials; i++ {
		worst = math.Max(worst, math.Abs(Norm2(rng.PointOnUnitCircle(&state))-1))
		worst = math.Max(worst, math.Abs(Norm3(rng.PointOnUnitSphere(&state))-1))
		worst = math.Max(worst, math.Abs(QuatNorm(rng.RandomQuaternion(&state))-1))
	}
	return Check{Name: "unit norms", OK: worst <= NormTolerance, Detail: fmt.Sprintf("worst error %.3g", worst)}
}

func checkHemisphere(seed uint32, trials int) Check {
	state := rng.Seed(seed)
	normal := rng.Vec3{Y: 1}
	for i := 0; i < trials; i++ {
		v := rng.PointOnUnitHemisphere(&state, normal)
		if d := rng.Dot(v, normal); d < -NormTolerance {
			return Check{Name: "hemisphere", Detail: fmt.Sprintf("dot %g for %+v", d, v)}
		}
	}
	return Check{Name: "hemisphere", OK: true}
}

func checkShuffle(seed uint32) Check {
	const count = 37

	seen := make(map[uint32]bool, count)
	for _, v := range rng.NewShuffler(count, seed).Permutation() {
		if v >= count || seen[v] {
			return Check{Name: "shuffle", Detail: fmt.Sprintf("value %d repeated or out of range", v)}
		}
		seen[v] = true
	}
	return Check{Name: "shuffle", OK: true, Detail: fmt.Sprintf("count %d", count)}
}
