// Package geom provides the small amount of 3D vector math the point index needs.
package geom

import "math"

// Vec3 is a point or vector in 3D space. The array layout allows indexing
// by axis (0=x, 1=y, 2=z), which the partition tree relies on.
type Vec3 [3]float64

// V constructs a Vec3 from its components.
func V(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// SquaredNorm returns the squared Euclidean length of v.
func (v Vec3) SquaredNorm() float64 {
	return v.Dot(v)
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.SquaredNorm())
}

// SquaredDistance returns the squared Euclidean distance between v and w.
func (v Vec3) SquaredDistance(w Vec3) float64 {
	return v.Sub(w).SquaredNorm()
}

// Distance returns the Euclidean distance between v and w.
func (v Vec3) Distance(w Vec3) float64 {
	return math.Sqrt(v.SquaredDistance(w))
}

// MinElem returns the componentwise minimum of v and w.
func (v Vec3) MinElem(w Vec3) Vec3 {
	return Vec3{math.Min(v[0], w[0]), math.Min(v[1], w[1]), math.Min(v[2], w[2])}
}

// MaxElem returns the componentwise maximum of v and w.
func (v Vec3) MaxElem(w Vec3) Vec3 {
	return Vec3{math.Max(v[0], w[0]), math.Max(v[1], w[1]), math.Max(v[2], w[2])}
}
