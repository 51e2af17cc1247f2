package rng

// Dice rolls a zero indexed die with the given number of sides, returning
// a value in [0, sides). It panics if sides is zero.
func Dice(state *State, sides uint32) uint32 {
	if sides == 0 {
		argPanic("Dice", ErrZeroBound, "sides=0")
	}
	return U32To(state, sides)
}

// DiceNoRepeat rolls like Dice but never returns prevRoll; the remaining
// sides-1 faces are equally likely. If prevRoll is not a face of the die
// this is the same as Dice. It panics if sides < 2.
func DiceNoRepeat(state *State, sides, prevRoll uint32) uint32 {
	if sides < 2 {
		argPanic("DiceNoRepeat", ErrZeroBound, "sides=%d leaves no face besides the previous roll", sides)
	}

	if prevRoll >= sides {
		return U32To(state, sides)
	}

	r := U32To(state, sides-1)
	if r >= prevRoll {
		r++
	}
	return r
}

// OneIn returns true with probability 1/chance. A chance of zero is never
// true and does not advance the state.
func OneIn(state *State, chance uint32) bool {
	if chance == 0 {
		return false
	}
	return Dice(state, chance) == 0
}
