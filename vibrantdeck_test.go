package vibrantdeck

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pgaskin/vibrantdeck/cardinal"
	"github.com/pgaskin/vibrantdeck/ctm"
)

type failStore struct{}

func (failStore) Set(ctx context.Context, name string, values []uint32) error {
	return &cardinal.Error{Op: "set", Name: name, Err: cardinal.ErrExec}
}

func (failStore) Get(ctx context.Context, name string) ([]uint32, bool, error) {
	return nil, false, &cardinal.Error{Op: "get", Name: name, Err: cardinal.ErrExec}
}

func TestSaturation(t *testing.T) {
	var (
		ctx   = context.Background()
		store = new(cardinal.Memory)
		c     = New(store, nil)
	)
	if s, err := c.GetSaturation(ctx); err != nil || s != DefaultSaturation {
		t.Fatalf("unset: got %v %v, expected default", s, err)
	}
	for _, s := range []float64{0, 0.5, 1, 1.37, 2, 3.99, 4} {
		if err := c.SetSaturation(ctx, s); err != nil {
			t.Fatalf("set %v: unexpected error: %v", s, err)
		}
		values, _, _ := store.Get(ctx, PropColorMatrix)
		if len(values) != 9 {
			t.Fatalf("set %v: expected 9 values, got %d", s, len(values))
		}
		if got, err := c.GetSaturation(ctx); err != nil || got != s {
			t.Errorf("set %v: got %v %v", s, got, err)
		}
	}
	if err := c.SetSaturation(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, _, _ := store.Get(ctx, PropColorMatrix)
	if diff := cmp.Diff([]uint32{1065353216, 0, 0, 0, 1065353216, 0, 0, 0, 1065353216}, values); diff != "" {
		t.Errorf("identity (-want +got):\n%s", diff)
	}
}

func TestSaturationClamp(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		in, as float64
	}{
		{-1, 0},
		{10, 4},
		{math.Inf(1), 4},
		{math.Inf(-1), 0},
	} {
		var a, b cardinal.Memory
		if err := New(&a, nil).SetSaturation(ctx, tc.in); err != nil {
			t.Fatalf("set %v: unexpected error: %v", tc.in, err)
		}
		if err := New(&b, nil).SetSaturation(ctx, tc.as); err != nil {
			t.Fatalf("set %v: unexpected error: %v", tc.as, err)
		}
		av, _, _ := a.Get(ctx, PropColorMatrix)
		bv, _, _ := b.Get(ctx, PropColorMatrix)
		if diff := cmp.Diff(bv, av); diff != "" {
			t.Errorf("set %v should behave like %v (-want +got):\n%s", tc.in, tc.as, diff)
		}
	}
	if err := New(new(cardinal.Memory), nil).SetSaturation(ctx, math.NaN()); !errors.Is(err, ErrNaN) {
		t.Errorf("nan: expected ErrNaN, got %v", err)
	}
}

func TestSaturationMalformed(t *testing.T) {
	var (
		ctx   = context.Background()
		store = new(cardinal.Memory)
		c     = New(store, nil)
	)
	if err := store.Set(ctx, PropColorMatrix, []uint32{1065353216, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetSaturation(ctx); !errors.Is(err, cardinal.ErrMalformed) {
		t.Errorf("expected malformed error, got %v", err)
	}
}

func TestVibrancy(t *testing.T) {
	var (
		ctx   = context.Background()
		store = new(cardinal.Memory)
		c     = New(store, nil)
	)
	if v, err := c.GetVibrancy(ctx); err != nil || v != DefaultVibrancy {
		t.Fatalf("unset: got %v %v, expected default", v, err)
	}
	for _, tc := range []struct {
		in, out float64
	}{
		{0.25, 0.25},
		{0.333, 0.33},
		{-3, 0},
		{1.5, 1},
	} {
		if err := c.SetVibrancy(ctx, tc.in); err != nil {
			t.Fatalf("set %v: unexpected error: %v", tc.in, err)
		}
		if v, err := c.GetVibrancy(ctx); err != nil || v != tc.out {
			t.Errorf("set %v: got %v %v, expected %v", tc.in, v, err, tc.out)
		}
	}
	values, _, _ := store.Get(ctx, PropSDRGamutWideness)
	if diff := cmp.Diff([]uint32{cardinal.Encode(1)}, values); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestGain(t *testing.T) {
	var (
		ctx   = context.Background()
		store = new(cardinal.Memory)
		c     = New(store, nil)
	)
	if err := c.SetGammaLinearGain(ctx, RGB{1, 0.5, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.SetGammaGain(ctx, RGB{-1, 0, 8}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.SetGammaLinearGainBlend(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tc := range []struct {
		name   string
		values []float32
	}{
		{PropLinearGain, []float32{1, 0.5, 2}},
		{PropGain, []float32{-1, 0, 8}},
		{PropLinearGainBlend, []float32{1}},
	} {
		values, ok, err := c.Raw(ctx, tc.name)
		if !ok || err != nil {
			t.Errorf("%s: got ok=%t err=%v", tc.name, ok, err)
			continue
		}
		if diff := cmp.Diff(tc.values, values); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
	if err := c.SetGammaGain(ctx, RGB{1, math.NaN(), 1}); !errors.Is(err, ErrNaN) {
		t.Errorf("nan: expected ErrNaN, got %v", err)
	}
}

func TestTemperature(t *testing.T) {
	var (
		ctx   = context.Background()
		store = new(cardinal.Memory)
		c     = New(store, nil)
	)
	if err := c.SetTemperature(ctx, 6500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gain, _, _ := c.Raw(ctx, PropLinearGain)
	if diff := cmp.Diff([]float32{1, 1, 1}, gain); diff != "" {
		t.Errorf("gain (-want +got):\n%s", diff)
	}
	blend, _, _ := c.Raw(ctx, PropLinearGainBlend)
	if diff := cmp.Diff([]float32{1}, blend); diff != "" {
		t.Errorf("blend (-want +got):\n%s", diff)
	}
}

func TestTransportFailure(t *testing.T) {
	var (
		ctx = context.Background()
		c   = New(failStore{}, nil)
	)
	if err := c.SetSaturation(ctx, 2); !errors.Is(err, cardinal.ErrExec) {
		t.Errorf("set: expected exec error, got %v", err)
	}
	if err := c.SetVibrancy(ctx, 1); !errors.Is(err, cardinal.ErrExec) {
		t.Errorf("set: expected exec error, got %v", err)
	}
	if _, err := c.GetSaturation(ctx); !errors.Is(err, cardinal.ErrExec) {
		t.Errorf("get: expected exec error, got %v", err)
	}
}

func TestRoundTripMatrix(t *testing.T) {
	var (
		ctx   = context.Background()
		store = new(cardinal.Memory)
		c     = New(store, nil)
	)
	if err := c.SetSaturation(ctx, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, _, _ := c.Raw(ctx, PropColorMatrix)
	if m := ctm.Matrix(values); m != ctm.FromSaturation(2) {
		t.Errorf("got %v, expected %v", m, ctm.FromSaturation(2))
	}
}
