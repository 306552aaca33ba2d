package cardinal

import "math"

// Encode returns the IEEE-754 binary32 bit pattern of f. It is a
// reinterpretation, not a numeric conversion.
func Encode(f float32) uint32 {
	return math.Float32bits(f)
}

// Decode is the inverse of [Encode].
func Decode(u uint32) float32 {
	return math.Float32frombits(u)
}

// EncodeAll encodes each float with [Encode].
func EncodeAll(fs ...float32) []uint32 {
	us := make([]uint32, len(fs))
	for i, f := range fs {
		us[i] = Encode(f)
	}
	return us
}

// DecodeAll decodes each value with [Decode].
func DecodeAll(us []uint32) []float32 {
	fs := make([]float32, len(us))
	for i, u := range us {
		fs[i] = Decode(u)
	}
	return fs
}
