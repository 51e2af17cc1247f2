package rng

import "math/bits"

const feistelRounds = 4

// Shuffler permutes the indices [0, Count) without storing the permutation.
// It holds the Feistel masks for Count so that they are not recomputed for
// every index.
//
// Adapted into a stateless version from:
// https://blog.demofox.org/2013/07/06/fast-lightweight-random-shuffle-functionality-fixed/
type Shuffler struct {
	Count uint32
	Seed  uint32

	halfNumBits uint32
	rightMask   uint32
	leftMask    uint32
}

// NewShuffler panics if count is zero.
func NewShuffler(count, seed uint32) Shuffler {
	if count == 0 {
		argPanic("NewShuffler", ErrZeroBound, "count=0")
	}

	nextPow4 := uint64(4)
	for uint64(count) > nextPow4 {
		nextPow4 *= 4
	}

	numBits := uint32(bits.Len64(nextPow4 - 1))
	halfNumBits := numBits / 2
	rightMask := uint32(1)<<halfNumBits - 1

	return Shuffler{
		Count: count,
		Seed:  seed,

		halfNumBits: halfNumBits,
		rightMask:   rightMask,
		leftMask:    rightMask << halfNumBits,
	}
}

// Index returns the position idx maps to. It panics if idx >= Count.
func (s Shuffler) Index(idx uint32) uint32 {
	if idx >= s.Count {
		argPanic("Shuffle", ErrIndexOutOfRange, "index=%d count=%d", idx, s.Count)
	}

	// Terminates because the network is a bijection on [0, 4^k) and idx starts below Count.
	for {
		left := (idx & s.leftMask) >> s.halfNumBits
		right := idx & s.rightMask

		for round := 0; round < feistelRounds; round++ {
			left, right = right, left^(SplitMix32(right^s.Seed)&s.rightMask)
		}

		idx = (left << s.halfNumBits) | right

		if idx < s.Count {
			return idx
		}
	}
}

// Permutation materializes the whole permutation.
func (s Shuffler) Permutation() []uint32 {
	ret := make([]uint32, s.Count)
	for i := range ret {
		ret[i] = s.Index(uint32(i))
	}
	return ret
}

// Shuffle maps idx to its place in the permutation of [0, count) selected by
// seed. Use the same seed for every index of one shuffle.
func Shuffle(idx, count, seed uint32) uint32 {
	return NewShuffler(count, seed).Index(idx)
}
