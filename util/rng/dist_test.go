package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xor-shift/rngeasy/stats"
	"github.com/xor-shift/rngeasy/util/rng"
)

func TestDiceMatchesU32To(t *testing.T) {
	a := rng.Seed(12)
	b := rng.Seed(12)

	for i := 0; i < 1000; i++ {
		require.Equal(t, rng.U32To(&a, 20), rng.Dice(&b, 20))
	}
}

func TestOneIn(t *testing.T) {
	state := rng.Seed(13)
	before := state

	for i := 0; i < 1000; i++ {
		require.False(t, rng.OneIn(&state, 0))
	}
	assert.Equal(t, before, state, "OneIn(0) must not advance the state")

	for i := 0; i < 1000; i++ {
		require.True(t, rng.OneIn(&state, 1))
	}

	hits := 0
	for i := 0; i < 100000; i++ {
		if rng.OneIn(&state, 4) {
			hits++
		}
	}
	assert.InDelta(t, 25000, hits, 1000)
}

func TestDiceNoRepeat(t *testing.T) {
	state := rng.Seed(14)

	prev := rng.Dice(&state, 6)
	counts := make([]uint64, 6)
	for i := 0; i < 60000; i++ {
		v := rng.DiceNoRepeat(&state, 6, prev)
		require.NotEqual(t, prev, v)
		require.Less(t, v, uint32(6))
		counts[v]++
		prev = v
	}

	assert.True(t, stats.Uniform(counts).Pass(stats.Significance), "counts %v", counts)
}

func TestDiceNoRepeatFixedPrevious(t *testing.T) {
	state := rng.Seed(15)

	counts := make([]uint64, 5)
	for i := 0; i < 50000; i++ {
		v := rng.DiceNoRepeat(&state, 5, 2)
		require.NotEqual(t, uint32(2), v)
		counts[v]++
	}

	assert.Zero(t, counts[2])
	others := []uint64{counts[0], counts[1], counts[3], counts[4]}
	assert.True(t, stats.Uniform(others).Pass(stats.Significance), "counts %v", counts)
}

func TestDiceNoRepeatEdges(t *testing.T) {
	state := rng.Seed(16)

	for i := 0; i < 100; i++ {
		require.Equal(t, uint32(1), rng.DiceNoRepeat(&state, 2, 0))
		require.Equal(t, uint32(0), rng.DiceNoRepeat(&state, 2, 1))
	}

	a := rng.Seed(17)
	b := rng.Seed(17)
	assert.Equal(t, rng.Dice(&a, 6), rng.DiceNoRepeat(&b, 6, 99))

	requireArgPanic(t, rng.ErrZeroBound, func() { rng.DiceNoRepeat(&state, 1, 0) })
	requireArgPanic(t, rng.ErrZeroBound, func() { rng.DiceNoRepeat(&state, 0, 0) })
}
