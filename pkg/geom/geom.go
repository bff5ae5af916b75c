// Package geom holds the small vector helpers shared by every generator.
// Vectors are sdfx v3.Vec values; rotations are Euler XYZ angles in
// radians applied as Rz * Ry * Rx.
package geom

import (
	"math"
	"math/rand"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon is the floor used wherever a length or extent would otherwise
// reach zero and end up as a divisor.
const Epsilon = 1e-7

// Up is the reference axis that oriented points are rotated from.
var Up = v3.Vec{X: 0, Y: 0, Z: 1}

// Length returns the Euclidean norm of v.
func Length(v v3.Vec) float64 {
	return v.Length()
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b v3.Vec) float64 {
	return a.Sub(b).Length()
}

// Normalize returns v scaled to unit length and true, or the zero vector
// and false when v is too short to normalize.
func Normalize(v v3.Vec) (v3.Vec, bool) {
	l := v.Length()
	if l < Epsilon {
		return v3.Vec{}, false
	}
	return v.MulScalar(1 / l), true
}

// Reciprocal returns 1/x, or 0 when x is zero.
func Reciprocal(x float64) float64 {
	if x == 0 {
		return 0
	}
	return 1 / x
}

// Reciprocals applies Reciprocal per component.
func Reciprocals(v v3.Vec) v3.Vec {
	return v3.Vec{X: Reciprocal(v.X), Y: Reciprocal(v.Y), Z: Reciprocal(v.Z)}
}

// Floor clamps every component of v to at least min.
func Floor(v v3.Vec, min float64) v3.Vec {
	return v3.Vec{X: math.Max(min, v.X), Y: math.Max(min, v.Y), Z: math.Max(min, v.Z)}
}

// Uniform draws a value uniformly from [lo, hi]. Bounds may be given in
// either order; lo == hi returns lo without consuming randomness.
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	return lo + (hi-lo)*rng.Float64()
}

// RandomEuler returns Euler angles drawn independently per axis from
// [-π, π].
func RandomEuler(rng *rand.Rand) v3.Vec {
	return v3.Vec{
		X: Uniform(rng, -math.Pi, math.Pi),
		Y: Uniform(rng, -math.Pi, math.Pi),
		Z: Uniform(rng, -math.Pi, math.Pi),
	}
}

// Rotation builds the rotation matrix for Euler angles e (radians).
func Rotation(e v3.Vec) sdf.M44 {
	return sdf.RotateZ(e.Z).Mul(sdf.RotateY(e.Y)).Mul(sdf.RotateX(e.X))
}

// EulerFromDirection returns the Euler angles that turn Up toward dir.
// A zero-length dir yields no rotation.
func EulerFromDirection(dir v3.Vec) v3.Vec {
	d, ok := Normalize(dir)
	if !ok {
		return v3.Vec{}
	}
	// Antiparallel input has no unique rotation; flip about X.
	if d.Dot(Up) < -1+1e-12 {
		return v3.Vec{X: math.Pi}
	}
	if d.Dot(Up) > 1-1e-12 {
		return v3.Vec{}
	}
	return eulerFromMatrix(sdf.RotateToVector(Up, d))
}

// eulerFromMatrix decomposes the rotational part of m into XYZ Euler
// angles. The matrix columns are recovered by transforming the basis
// vectors, with the translation removed.
func eulerFromMatrix(m sdf.M44) v3.Vec {
	origin := m.MulPosition(v3.Vec{})
	c0 := m.MulPosition(v3.Vec{X: 1}).Sub(origin)
	c1 := m.MulPosition(v3.Vec{Y: 1}).Sub(origin)
	c2 := m.MulPosition(v3.Vec{Z: 1}).Sub(origin)

	r20 := math.Max(-1, math.Min(1, c0.Z))
	y := math.Asin(-r20)
	if math.Abs(r20) > 1-1e-9 {
		// Gimbal lock: fold Z into X.
		return v3.Vec{X: math.Atan2(-c2.Y, c1.Y), Y: y, Z: 0}
	}
	return v3.Vec{
		X: math.Atan2(c1.Z, c2.Z),
		Y: y,
		Z: math.Atan2(c0.Y, c0.X),
	}
}
