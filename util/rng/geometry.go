package rng

// Sampler draws geometric values using a particular Math implementation.
type Sampler struct {
	Math Math
}

var std = Sampler{Math: StdMath{}}

// PointInUnitCircle returns a point uniformly distributed over the unit disc.
// The radius is the square root of a uniform value; a linear radius would
// crowd points towards the centre.
func (s Sampler) PointInUnitCircle(state *State) Vec2 {
	a := FloatEUnit(state) * Tau
	r := s.Math.Sqrt(FloatUnit(state))
	return Vec2{s.Math.Sin(a), s.Math.Cos(a)}.Mul(Vec2{r, r})
}

// PointOnUnitCircle returns a point uniformly distributed on the unit circle.
func (s Sampler) PointOnUnitCircle(state *State) Vec2 {
	a := FloatEUnit(state) * Tau
	return Vec2{s.Math.Sin(a), s.Math.Cos(a)}
}

// PointOnUnitSphere returns a point on the unit sphere using a cylindrical
// (archimedean) projection.
func (s Sampler) PointOnUnitSphere(state *State) Vec3 {
	a := FloatUnit(state) * Tau
	t := float32(FloatUnit(state)*2.0) - 1.0
	return Vec3{s.Math.Sin(a), s.Math.Cos(a), t}.Scale(s.Math.InverseSqrt(1.0 + float32(t*t)))
}

// PointOnUnitHemisphere returns a point on the half of the unit sphere that
// normal points into. Points on the boundary plane are returned unchanged.
func (s Sampler) PointOnUnitHemisphere(state *State, normal Vec3) Vec3 {
	v := s.PointOnUnitSphere(state)
	if Dot(v, normal) < 0 {
		return v.Scale(-1)
	}
	return v
}

// RandomQuaternion returns a uniformly distributed unit quaternion.
// http://planning.cs.uiuc.edu/node198.html
func (s Sampler) RandomQuaternion(state *State) Quat {
	u1 := FloatUnit(state)
	u2 := FloatUnit(state)
	u3 := FloatUnit(state)

	a := s.Math.Sqrt(1.0 - u1)
	b := s.Math.Sqrt(u1)

	return Quat{
		X: a * s.Math.Sin(Tau*u2),
		Y: a * s.Math.Cos(Tau*u2),
		Z: b * s.Math.Sin(Tau*u3),
		W: b * s.Math.Cos(Tau*u3),
	}
}

func PointInUnitCircle(state *State) Vec2 { return std.PointInUnitCircle(state) }
func PointOnUnitCircle(state *State) Vec2 { return std.PointOnUnitCircle(state) }
func PointOnUnitSphere(state *State) Vec3 { return std.PointOnUnitSphere(state) }
func RandomQuaternion(state *State) Quat  { return std.RandomQuaternion(state) }

func PointOnUnitHemisphere(state *State, normal Vec3) Vec3 {
	return std.PointOnUnitHemisphere(state, normal)
}
