// Package redshift computes colour temperature white points for use as
// per-channel gains.
package redshift

import "math"

// Temperature is a colour temperature in Kelvin.
type Temperature int

// Neutral is the temperature with a white point of 1, 1, 1.
const Neutral Temperature = 6500

// WhitePoint contains per-channel multipliers for red, green, and blue. A
// component value of 1 is neutral.
type WhitePoint [3]float64

// WhitePointFor approximates the white point of a black body at temperature t
// (clamped to 1000K-40000K), normalized so [Neutral] is 1, 1, 1.
func WhitePointFor(t Temperature) WhitePoint {
	raw, neutral := blackBody(min(max(t, 1000), 40000)), blackBody(Neutral)
	var white WhitePoint
	for c := range white {
		white[c] = min(max(raw[c]/neutral[c], 0), 1)
	}
	return white
}

// blackBody uses the curve fit from
// https://tannerhelland.com/2012/09/18/convert-temperature-rgb-algorithm-code.html.
func blackBody(t Temperature) (rgb [3]float64) {
	temp := float64(t) / 100
	if temp <= 66 {
		rgb[0] = 1
		rgb[1] = (99.4708025861*math.Log(temp) - 161.1195681661) / 255
	} else {
		rgb[0] = 329.698727446 * math.Pow(temp-60, -0.1332047592) / 255
		rgb[1] = 288.1221695283 * math.Pow(temp-60, -0.0755148492) / 255
	}
	switch {
	case temp >= 66:
		rgb[2] = 1
	case temp <= 19:
		rgb[2] = 0
	default:
		rgb[2] = (138.5177312231*math.Log(temp-10) - 305.0447927307) / 255
	}
	for c := range rgb {
		rgb[c] = min(max(rgb[c], 0), 1)
	}
	return rgb
}
