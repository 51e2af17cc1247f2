package rng_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xor-shift/rngeasy/util/rng"
)

func TestUnitFromBitsEndpoints(t *testing.T) {
	assert.Equal(t, float32(0), rng.UnitFromBits(0))
	assert.Equal(t, float32(0), rng.UnitFromBits(0xff))
	assert.Equal(t, float32(1), rng.UnitFromBits(0xffffffff))
	assert.Equal(t, float32(1), rng.UnitFromBits(0xffffff00))

	assert.Equal(t, float32(0), rng.EUnitFromBits(0))
	assert.Less(t, rng.EUnitFromBits(0xffffffff), float32(1))
	assert.Equal(t, float32(0.5), rng.EUnitFromBits(0x80000000))
}

func TestUnitFromBitsIsDivision(t *testing.T) {
	// Only the largest mantissa maps to 1.0. A reciprocal multiply rounds
	// 0xfffffe up as well.
	assert.Less(t, rng.UnitFromBits(0xfffffe00), float32(1))
}

func TestFloatReference(t *testing.T) {
	unit := rng.Seed(42)
	eunit := rng.Seed(42)

	wantUnit := []uint32{0x3e805f5d, 0x3f65e944, 0x3ef76b01, 0x3d718a51, 0x3e9cac71}
	wantEUnit := []uint32{0x3e805f5c, 0x3f65e943, 0x3ef76b00, 0x3d718a50, 0x3e9cac70}

	for i := range wantUnit {
		assert.Equal(t, wantUnit[i], math.Float32bits(rng.FloatUnit(&unit)), "unit %d", i)
		assert.Equal(t, wantEUnit[i], math.Float32bits(rng.FloatEUnit(&eunit)), "eunit %d", i)
	}
}

func TestFloatBounds(t *testing.T) {
	state := rng.Seed(5)

	for i := 0; i < 1000000; i++ {
		f := rng.FloatUnit(&state)
		require.True(t, f >= 0 && f <= 1, "FloatUnit returned %g", f)

		e := rng.FloatEUnit(&state)
		require.True(t, e >= 0 && e < 1, "FloatEUnit returned %g", e)
	}
}

func TestFloatIn(t *testing.T) {
	state := rng.Seed(6)

	for i := 0; i < 10000; i++ {
		f := rng.FloatIn(&state, -3, 7)
		require.True(t, f >= -3 && f <= 7, "FloatIn returned %g", f)
	}

	assert.Equal(t, float32(2), rng.FloatIn(&state, 2, 2))
	requireArgPanic(t, rng.ErrInvertedRange, func() { rng.FloatIn(&state, 1, 0) })
}

func TestFloatSnit(t *testing.T) {
	state := rng.Seed(10)

	neg := 0
	const trials = 100000
	for i := 0; i < trials; i++ {
		f := rng.FloatSnit(&state)
		require.True(t, f >= -1 && f <= 1, "FloatSnit returned %g", f)
		if f < 0 {
			neg++
		}

		e := rng.FloatESnit(&state)
		require.True(t, e > -1 && e < 1, "FloatESnit returned %g", e)
	}

	assert.InDelta(t, 0.5, float64(neg)/trials, 0.01)

	// The reference shader picked the sign with mask 0x8000000, which is bit
	// 27 and one of the 24 bits kept for the magnitude, so sign and
	// magnitude were correlated. The sign is drawn from a separate advance here.
	t.Log("signed unit floats draw their sign independently of the magnitude; results differ from the reference shader")
}

func TestSignedUnitConsumesTwoAdvances(t *testing.T) {
	a := rng.Seed(11)
	b := rng.Seed(11)

	rng.FloatSnit(&a)
	b.Skip(2)

	assert.Equal(t, a, b)
}
