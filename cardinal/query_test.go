package cardinal

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseQuery(t *testing.T) {
	for _, tc := range []struct {
		out    string
		values []uint32
		ok     bool
		err    error
	}{
		{"X(CARDINAL) = 1065353216, 0, 0\n", []uint32{1065353216, 0, 0}, true, nil},
		{"X(CARDINAL) = 1065353216", []uint32{1065353216}, true, nil},
		{"X(CARDINAL) = 4294967295,1", []uint32{4294967295, 1}, true, nil},
		{"X:  not found.\n", nil, false, nil},
		{"", nil, false, nil},
		{"X(CARDINAL) = ", nil, true, ErrMalformed},
		{"X(CARDINAL) = 1, two, 3", nil, true, ErrMalformed},
		{"X(CARDINAL) = -1", nil, true, ErrMalformed},
		{"X(CARDINAL) = 4294967296", nil, true, ErrMalformed},
		{"X(CARDINAL) = 1,, 2", nil, true, ErrMalformed},
		{"X(CARDINAL) = 1\xff", nil, false, ErrMalformed},
	} {
		values, ok, err := ParseQuery(tc.out)
		if !errors.Is(err, tc.err) || (err == nil) != (tc.err == nil) {
			t.Errorf("%q: got error %v, expected %v", tc.out, err, tc.err)
			continue
		}
		if ok != tc.ok {
			t.Errorf("%q: got ok=%t, expected %t", tc.out, ok, tc.ok)
		}
		if diff := cmp.Diff(tc.values, values); diff != "" {
			t.Errorf("%q: values (-want +got):\n%s", tc.out, diff)
		}
	}
}

func TestFormatValues(t *testing.T) {
	for _, tc := range []struct {
		values []uint32
		s      string
	}{
		{nil, ""},
		{[]uint32{1065353216}, "1065353216"},
		{[]uint32{1065353216, 0, 4294967295}, "1065353216,0,4294967295"},
	} {
		if s := FormatValues(tc.values); s != tc.s {
			t.Errorf("%v: got %q, expected %q", tc.values, s, tc.s)
		}
	}
}

func TestDisplayTarget(t *testing.T) {
	t.Setenv("DISPLAY", "")
	if d := DisplayTarget(""); d != DefaultDisplay {
		t.Errorf("no env: got %q, expected %q", d, DefaultDisplay)
	}
	if d := DisplayTarget(":2"); d != ":2" {
		t.Errorf("explicit: got %q, expected %q", d, ":2")
	}
	t.Setenv("DISPLAY", ":0")
	if d := DisplayTarget(""); d != "" {
		t.Errorf("env: got %q, expected default", d)
	}
}
