package rng

// Vec2 is a point in the plane.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a point in space.
type Vec3 struct {
	X, Y, Z float32
}

// Quat is a quaternion in Hamiltonian convention, component order xyzw.
type Quat struct {
	X, Y, Z, W float32
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot rounds every product before summing so the result is the same with
// or without fused multiply-add.
func Dot(a, b Vec3) float32 {
	return float32(a.X*b.X) + float32(a.Y*b.Y) + float32(a.Z*b.Z)
}

// Words returns the IEEE-754 bit patterns of the components.
func (v Vec2) Words() []uint32 { return floatWords(v.X, v.Y) }
func (v Vec3) Words() []uint32 { return floatWords(v.X, v.Y, v.Z) }
func (q Quat) Words() []uint32 { return floatWords(q.X, q.Y, q.Z, q.W) }
