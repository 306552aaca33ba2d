// Package ctm builds 3x3 colour transformation matrices for adjusting
// saturation.
package ctm

import "math"

// Matrix is a row-major 3x3 colour transformation matrix.
type Matrix [9]float32

// Identity leaves colours unchanged.
var Identity = Matrix{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// FromSaturation returns a matrix which blends each channel towards the
// average of all three. A saturation of 1 is the identity, 0 is fully
// desaturated, and values above 1 boost saturation. Every row sums to 1.
func FromSaturation(saturation float64) Matrix {
	coeff := (1 - saturation) / 3
	var m Matrix
	for i := range m {
		if i%4 == 0 {
			m[i] = float32(coeff + saturation)
		} else {
			m[i] = float32(coeff)
		}
	}
	return m
}

// Saturation recovers the saturation from a matrix built by [FromSaturation],
// rounded to two decimal places. For other matrices, it is just m[0]-m[1],
// which has no particular meaning.
func (m Matrix) Saturation() float64 {
	return math.Round((float64(m[0])-float64(m[1]))*100) / 100
}

// Slice returns the coefficients as a slice.
func (m Matrix) Slice() []float32 {
	return m[:]
}
