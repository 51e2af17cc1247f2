package rng

const (
	// Float32MantDig is the number of bits a float32 mantissa holds exactly.
	Float32MantDig = 24

	unitDivisor   = float32(1<<Float32MantDig - 1)
	eunitScale    = 1.0 / float32(1<<Float32MantDig)
	mantissaShift = 32 - Float32MantDig
)

// UnitFromBits maps the top 24 bits to [0, 1].
// https://prng.di.unimi.it/ "Generating uniform doubles in the unit interval"
//
// This has to be a division: multiplying by the reciprocal of 2^24-1 rounds
// some values up and yields about twice as many exact 1.0 results.
func UnitFromBits(bits uint32) float32 {
	return float32(bits>>mantissaShift) / unitDivisor
}

// EUnitFromBits maps the top 24 bits to [0, 1). Here the reciprocal is exact.
func EUnitFromBits(bits uint32) float32 {
	return float32(bits>>mantissaShift) * eunitScale
}

// FloatUnit returns a uniform float in [0, 1].
func FloatUnit(state *State) float32 {
	return UnitFromBits(state.Advance())
}

// FloatEUnit returns a uniform float in [0, 1).
func FloatEUnit(state *State) float32 {
	return EUnitFromBits(state.Advance())
}

// FloatIn returns a uniform float in [lo, hi]. It panics if hi < lo.
func FloatIn(state *State, lo, hi float32) float32 {
	if hi < lo {
		argPanic("FloatIn", ErrInvertedRange, "lo=%g hi=%g", lo, hi)
	}

	// the conversion keeps the compiler from fusing this into an FMA
	return lo + float32((hi-lo)*FloatUnit(state))
}

// FloatSnit returns a float in [-1, 1]. The magnitude and the sign come from
// two separate advances.
func FloatSnit(state *State) float32 {
	v := FloatUnit(state)
	return v * signFromBits(state.Advance())
}

// FloatESnit returns a float in (-1, 1), see FloatSnit.
func FloatESnit(state *State) float32 {
	v := FloatEUnit(state)
	return v * signFromBits(state.Advance())
}

func signFromBits(bits uint32) float32 {
	if bits&0x80000000 != 0 {
		return 1
	}
	return -1
}
