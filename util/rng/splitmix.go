package rng

// SplitMix32 is the 32 bit splitmix finalizer. It is a bijection on uint32.
// https://stackoverflow.com/questions/17035441/looking-for-decent-quality-prng-with-only-32-bits-of-state
func SplitMix32(b uint32) uint32 {
	b += 0x9e3779b9
	b ^= b >> 15
	b *= 0x85ebca6b
	b ^= b >> 13
	b *= 0xc2b2ae3d
	b ^= b >> 16
	return b
}
