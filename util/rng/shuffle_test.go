package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xor-shift/rngeasy/util/rng"
)

func TestShuffleIsPermutation(t *testing.T) {
	for _, count := range []uint32{1, 2, 3, 4, 5, 16, 17, 37, 64, 100, 1000} {
		seen := make(map[uint32]bool, count)
		for i := uint32(0); i < count; i++ {
			v := rng.Shuffle(i, count, 0xc0ffee)
			require.Less(t, v, count)
			require.False(t, seen[v], "count %d: %d produced twice", count, v)
			seen[v] = true
		}
		assert.Len(t, seen, int(count))
	}
}

func TestShuffleReference(t *testing.T) {
	want := []uint32{
		8, 0, 3, 2, 32, 18, 6, 7, 13, 33, 15, 11, 9, 1, 14, 10, 22, 23, 20,
		19, 4, 21, 24, 17, 16, 25, 26, 27, 35, 29, 30, 31, 34, 28, 5, 12, 36,
	}

	got := make([]uint32, 37)
	for i := range got {
		got[i] = rng.Shuffle(uint32(i), 37, 1234)
	}
	assert.Equal(t, want, got)

	assert.Equal(t, []uint32{0, 7, 2, 4, 3, 5, 9, 1, 8, 6}, rng.NewShuffler(10, 7).Permutation())
}

func TestShuffleReproducible(t *testing.T) {
	for i := uint32(0); i < 37; i++ {
		assert.Equal(t, rng.Shuffle(i, 37, 99), rng.Shuffle(i, 37, 99))
	}
}

func TestShuffleSeedSensitivity(t *testing.T) {
	a := rng.NewShuffler(37, 1234).Permutation()
	b := rng.NewShuffler(37, 1235).Permutation()
	assert.NotEqual(t, a, b)

	differ := 0
	for seed := uint32(0); seed < 50; seed++ {
		if !assert.ObjectsAreEqual(a, rng.NewShuffler(37, seed).Permutation()) {
			differ++
		}
	}
	assert.Equal(t, 50, differ)
}

func TestShufflerMatchesShuffle(t *testing.T) {
	s := rng.NewShuffler(1000, 5)
	for i := uint32(0); i < 1000; i++ {
		require.Equal(t, rng.Shuffle(i, 1000, 5), s.Index(i))
	}
}

func TestShuffleLargeCount(t *testing.T) {
	const count = 1<<31 + 12345

	s := rng.NewShuffler(count, 3)
	for _, i := range []uint32{0, 1, 1 << 30, count - 1} {
		require.Less(t, s.Index(i), uint32(count))
	}
}

func TestShufflePreconditions(t *testing.T) {
	requireArgPanic(t, rng.ErrZeroBound, func() { rng.Shuffle(0, 0, 1) })
	requireArgPanic(t, rng.ErrIndexOutOfRange, func() { rng.Shuffle(37, 37, 1) })
}
