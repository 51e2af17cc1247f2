package rng

import "math"

const (
	Pi  = float32(3.14159265358979323846)
	Tau = Pi * 2.0
)

// Math supplies the transcendental functions geometric sampling needs. A
// GPU port implements it with the shader intrinsics so that CPU and GPU
// results can be compared through the same Sampler code.
type Math interface {
	Sin(x float32) float32
	Cos(x float32) float32
	Sqrt(x float32) float32
	InverseSqrt(x float32) float32
}

// StdMath implements Math with the math package, rounding every result to float32.
type StdMath struct{}

func (StdMath) Sin(x float32) float32  { return float32(math.Sin(float64(x))) }
func (StdMath) Cos(x float32) float32  { return float32(math.Cos(float64(x))) }
func (StdMath) Sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func (m StdMath) InverseSqrt(x float32) float32 {
	return 1.0 / m.Sqrt(x)
}

func floatWords(fs ...float32) []uint32 {
	words := make([]uint32, len(fs))
	for i, f := range fs {
		words[i] = math.Float32bits(f)
	}
	return words
}
