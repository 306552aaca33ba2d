package redshift

import (
	"testing"
	"time"
)

func TestWhitePointFor(t *testing.T) {
	if w := WhitePointFor(Neutral); w != (WhitePoint{1, 1, 1}) {
		t.Errorf("neutral: got %v", w)
	}
	prev := WhitePointFor(1000)
	if prev[0] != 1 || prev[2] != 0 {
		t.Errorf("1000K: got %v", prev)
	}
	for k := Temperature(1100); k <= Neutral; k += 100 {
		w := WhitePointFor(k)
		for c := range w {
			if w[c] < 0 || w[c] > 1 {
				t.Errorf("%dK: component %d out of range: %v", k, c, w)
			}
			if w[c] < prev[c] {
				t.Errorf("%dK: component %d decreased from %v to %v", k, c, prev, w)
			}
		}
		prev = w
	}
	if WhitePointFor(500) != WhitePointFor(1000) {
		t.Errorf("temperature not clamped")
	}
	if w := WhitePointFor(10000); w[2] != 1 || w[0] >= 1 {
		t.Errorf("10000K: got %v", w)
	}
}

func TestSolar(t *testing.T) {
	var (
		midnight = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
		noon     = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	)
	if tmp := Solar(midnight, 0, 0, -6, 3, 3000, 6500); tmp != 3000 {
		t.Errorf("midnight: got %d, expected 3000", tmp)
	}
	if tmp := Solar(noon, 0, 0, -6, 3, 3000, 6500); tmp != 6500 {
		t.Errorf("noon: got %d, expected 6500", tmp)
	}
}
