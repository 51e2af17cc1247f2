package rng

// U32Any returns 32 uniformly distributed bits.
func U32Any(state *State) uint32 {
	return state.Advance()
}

// U32To returns a uniform value in [0, bound). It panics if bound is zero.
//
// Adapted from the pcg-random.org basic C generator. Raw values below
// (2^32 - bound) % bound are rerolled so that every residue is equally
// likely. The loop terminates for any uniform generator; for bounds up to
// 1024 a reroll happens about once in 4 million calls, for 2^16 about once
// in 66 thousand.
func U32To(state *State, bound uint32) uint32 {
	if bound == 0 {
		argPanic("U32To", ErrZeroBound, "bound=0")
	}

	threshold := -bound % bound
	for {
		r := state.Advance()
		if r >= threshold {
			return r % bound
		}
	}
}

// U32In returns a uniform value in [lo, hi]. It panics if hi < lo.
func U32In(state *State, lo, hi uint32) uint32 {
	if hi < lo {
		argPanic("U32In", ErrInvertedRange, "lo=%d hi=%d", lo, hi)
	}

	span := hi - lo + 1
	if span == 0 {
		// [0, 2^32-1]
		return state.Advance()
	}

	return lo + U32To(state, span)
}

// S32In returns a uniform value in [lo, hi]. It panics if hi < lo.
func S32In(state *State, lo, hi int32) int32 {
	if hi < lo {
		argPanic("S32In", ErrInvertedRange, "lo=%d hi=%d", lo, hi)
	}

	span := uint32(hi) - uint32(lo) + 1
	if span == 0 {
		return int32(state.Advance())
	}

	return int32(uint32(lo) + U32To(state, span))
}
