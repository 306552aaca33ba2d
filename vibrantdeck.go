// Package vibrantdeck adjusts the colour vibrancy and gamma of gamescope's
// output by setting the GAMESCOPE_COLOR_* properties on the root window.
//
// Values are not cached; each call is a single round trip to the
// [cardinal.Store]. Callers needing read-after-write ordering for a property
// must not make concurrent calls for it.
package vibrantdeck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/pgaskin/vibrantdeck/cardinal"
	"github.com/pgaskin/vibrantdeck/ctm"
	"github.com/pgaskin/vibrantdeck/redshift"
)

// Properties read by gamescope.
const (
	PropColorMatrix      = "GAMESCOPE_COLOR_MATRIX"
	PropSDRGamutWideness = "GAMESCOPE_COLOR_SDR_GAMUT_WIDENESS"
	PropLinearGain       = "GAMESCOPE_COLOR_LINEARGAIN"
	PropLinearGainBlend  = "GAMESCOPE_COLOR_LINEARGAIN_BLEND"
	PropGain             = "GAMESCOPE_COLOR_GAIN"
)

// Defaults used when a property is not set.
const (
	DefaultSaturation = 1.0
	DefaultVibrancy   = 1.0
)

// Domains.
const (
	MinSaturation = 0.0
	MaxSaturation = 4.0
	MinVibrancy   = 0.0
	MaxVibrancy   = 1.0
	MinBlend      = 0.0
	MaxBlend      = 1.0
)

// ErrNaN is returned for NaN inputs, which can't be clamped.
var ErrNaN = errors.New("value is NaN")

// RGB contains per-channel values for red, green, and blue.
type RGB [3]float64

// Controller gets and sets colour properties. It holds no state other than
// its configuration, and is safe for concurrent usage if the store is.
type Controller struct {
	store  cardinal.Store
	logger *slog.Logger
}

// New creates a new Controller using store. If logger is not nil, failed
// operations are logged to it.
func New(store cardinal.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{store: store, logger: logger}
}

// SetSaturation sets the colour matrix for saturation (clamped to 0-4). 1 is
// unmodified, 0 is grayscale.
func (c *Controller) SetSaturation(ctx context.Context, saturation float64) error {
	if err := notNaN(saturation); err != nil {
		return err
	}
	m := ctm.FromSaturation(clamp(saturation, MinSaturation, MaxSaturation))
	return c.set(ctx, PropColorMatrix, m.Slice()...)
}

// GetSaturation gets the saturation from the colour matrix, rounded to two
// decimal places, or [DefaultSaturation] if it isn't set.
func (c *Controller) GetSaturation(ctx context.Context) (float64, error) {
	fs, ok, err := c.get(ctx, PropColorMatrix, len(ctm.Matrix{}))
	if err != nil || !ok {
		return DefaultSaturation, err
	}
	return ctm.Matrix(fs).Saturation(), nil
}

// SetVibrancy sets the SDR gamut wideness (clamped to 0-1).
func (c *Controller) SetVibrancy(ctx context.Context, vibrancy float64) error {
	if err := notNaN(vibrancy); err != nil {
		return err
	}
	return c.set(ctx, PropSDRGamutWideness, float32(clamp(vibrancy, MinVibrancy, MaxVibrancy)))
}

// GetVibrancy gets the SDR gamut wideness rounded to two decimal places, or
// [DefaultVibrancy] if it isn't set.
func (c *Controller) GetVibrancy(ctx context.Context) (float64, error) {
	fs, ok, err := c.get(ctx, PropSDRGamutWideness, 1)
	if err != nil || !ok {
		return DefaultVibrancy, err
	}
	return round2(float64(fs[0])), nil
}

// SetGammaLinearGain sets the per-channel linear gain. It is not clamped.
func (c *Controller) SetGammaLinearGain(ctx context.Context, gain RGB) error {
	return c.setRGB(ctx, PropLinearGain, gain)
}

// SetGammaGain sets the per-channel gain. It is not clamped.
func (c *Controller) SetGammaGain(ctx context.Context, gain RGB) error {
	return c.setRGB(ctx, PropGain, gain)
}

// SetGammaLinearGainBlend sets the weight of the linear gain (clamped to
// 0-1). 1 means only the linear gain is used.
func (c *Controller) SetGammaLinearGainBlend(ctx context.Context, weight float64) error {
	if err := notNaN(weight); err != nil {
		return err
	}
	return c.set(ctx, PropLinearGainBlend, float32(clamp(weight, MinBlend, MaxBlend)))
}

// SetTemperature sets the linear gain to the white point of a colour
// temperature, and the blend to use only the linear gain.
func (c *Controller) SetTemperature(ctx context.Context, t redshift.Temperature) error {
	if err := c.SetGammaLinearGain(ctx, RGB(redshift.WhitePointFor(t))); err != nil {
		return err
	}
	return c.SetGammaLinearGainBlend(ctx, 1)
}

// Raw gets the decoded values of an arbitrary float property.
func (c *Controller) Raw(ctx context.Context, name string) ([]float32, bool, error) {
	return c.get(ctx, name, -1)
}

func (c *Controller) setRGB(ctx context.Context, name string, v RGB) error {
	for _, x := range v {
		if err := notNaN(x); err != nil {
			return err
		}
	}
	return c.set(ctx, name, float32(v[0]), float32(v[1]), float32(v[2]))
}

func (c *Controller) set(ctx context.Context, name string, fs ...float32) error {
	if err := c.store.Set(ctx, name, cardinal.EncodeAll(fs...)); err != nil {
		c.logger.Warn("failed to set property", "name", name, "values", fs, "error", err)
		return err
	}
	return nil
}

// get gets and decodes a property, checking that it has n values if n is not
// negative.
func (c *Controller) get(ctx context.Context, name string, n int) ([]float32, bool, error) {
	us, ok, err := c.store.Get(ctx, name)
	if err != nil {
		c.logger.Warn("failed to get property", "name", name, "error", err)
		return nil, ok, err
	}
	if !ok {
		return nil, false, nil
	}
	if n >= 0 && len(us) != n {
		err := &cardinal.Error{Op: "get", Name: name, Err: fmt.Errorf("%w: expected %d values, got %d", cardinal.ErrMalformed, n, len(us))}
		c.logger.Warn("failed to get property", "name", name, "error", err)
		return nil, true, err
	}
	return cardinal.DecodeAll(us), true, nil
}

func notNaN(x float64) error {
	if math.IsNaN(x) {
		return ErrNaN
	}
	return nil
}

func clamp(x, lo, hi float64) float64 {
	return min(max(x, lo), hi)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
