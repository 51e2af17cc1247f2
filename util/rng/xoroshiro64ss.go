// Package rng is a small deterministic random number library whose output is
// bit-exact on every platform that implements 32 bit wraparound integer
// arithmetic and IEEE-754 single precision floats.
//
// The generator is xoroshiro64** seeded through splitmix32. Every
// distribution takes the generator state explicitly; nothing in the package
// holds hidden state, so give each goroutine its own State.
package rng

import (
	"fmt"

	"github.com/xor-shift/rngeasy/util"
)

// State is the complete state of one random stream.
type State struct {
	S0 uint32
	S1 uint32
}

// Seed hashes seedBits twice with splitmix32 so that S0 and S1 are never both zero.
func Seed(seedBits uint32) State {
	var state State

	state.S1 = SplitMix32(seedBits)
	state.S0 = SplitMix32(state.S1)

	return state
}

// Advance steps the generator and returns 32 random bits. It is the only
// function that mutates a State.
// https://prng.di.unimi.it/xoroshiro64starstar.c
func (state *State) Advance() uint32 {
	s0 := state.S0
	s1 := state.S1
	result := util.RotL(s0*0x9E3779BB, 5) * 5

	s1 ^= s0
	state.S0 = util.RotL(s0, 26) ^ s1 ^ (s1 << 9)
	state.S1 = util.RotL(s1, 13)

	return result
}

// Skip advances the state n times, discarding the output.
func (state *State) Skip(n uint64) {
	for i := uint64(0); i < n; i++ {
		_ = state.Advance()
	}
}

func (state State) String() string {
	return fmt.Sprintf("%08x%08x", state.S0, state.S1)
}
