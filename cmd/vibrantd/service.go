package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/pgaskin/vibrantdeck"
	"github.com/pgaskin/vibrantdeck/drm"
	"github.com/pgaskin/vibrantdeck/redshift"
)

const (
	busName   = "io.github.pgaskin.VibrantDeck"
	busPath   = dbus.ObjectPath("/io/github/pgaskin/VibrantDeck")
	busIface  = "io.github.pgaskin.VibrantDeck"
	errorName = busIface + ".Error"
)

// Service exports a [vibrantdeck.Controller] over DBus. Setters return false
// on failure (which is logged) rather than a DBus error since failing to set a
// property is not fatal for the caller.
type Service struct {
	c       *vibrantdeck.Controller
	logger  *slog.Logger
	timeout time.Duration
	glob    string
}

func (s *Service) ctx() (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(context.Background(), s.timeout)
	}
	return context.WithCancel(context.Background())
}

func (s *Service) set(method string, fn func(ctx context.Context) error) (bool, *dbus.Error) {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := fn(ctx); err != nil {
		s.logger.Warn("dbus: call failed", "method", method, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Service) get(method string, fn func(ctx context.Context) (float64, error)) (float64, *dbus.Error) {
	ctx, cancel := s.ctx()
	defer cancel()

	v, err := fn(ctx)
	if err != nil {
		s.logger.Warn("dbus: call failed", "method", method, "error", err)
		return 0, dbus.NewError(errorName, []any{err.Error()})
	}
	return v, nil
}

func (s *Service) SetSaturation(saturation float64) (bool, *dbus.Error) {
	return s.set("SetSaturation", func(ctx context.Context) error {
		return s.c.SetSaturation(ctx, saturation)
	})
}

func (s *Service) GetSaturation() (float64, *dbus.Error) {
	return s.get("GetSaturation", s.c.GetSaturation)
}

func (s *Service) SetVibrancy(vibrancy float64) (bool, *dbus.Error) {
	return s.set("SetVibrancy", func(ctx context.Context) error {
		return s.c.SetVibrancy(ctx, vibrancy)
	})
}

func (s *Service) GetVibrancy() (float64, *dbus.Error) {
	return s.get("GetVibrancy", s.c.GetVibrancy)
}

func (s *Service) SetGammaLinearGain(r, g, b float64) (bool, *dbus.Error) {
	return s.set("SetGammaLinearGain", func(ctx context.Context) error {
		return s.c.SetGammaLinearGain(ctx, vibrantdeck.RGB{r, g, b})
	})
}

func (s *Service) SetGammaGain(r, g, b float64) (bool, *dbus.Error) {
	return s.set("SetGammaGain", func(ctx context.Context) error {
		return s.c.SetGammaGain(ctx, vibrantdeck.RGB{r, g, b})
	})
}

func (s *Service) SetGammaLinearGainBlend(weight float64) (bool, *dbus.Error) {
	return s.set("SetGammaLinearGainBlend", func(ctx context.Context) error {
		return s.c.SetGammaLinearGainBlend(ctx, weight)
	})
}

func (s *Service) SetTemperature(kelvin int32) (bool, *dbus.Error) {
	return s.set("SetTemperature", func(ctx context.Context) error {
		return s.c.SetTemperature(ctx, redshift.Temperature(kelvin))
	})
}

func (s *Service) Displays() ([]string, *dbus.Error) {
	names, err := drm.Connected(s.glob)
	if err != nil {
		s.logger.Warn("dbus: call failed", "method", "Displays", "error", err)
		return nil, dbus.MakeFailedError(err)
	}
	return names, nil
}

// Export exports s on conn and requests the well-known bus name.
func (s *Service) Export(conn *dbus.Conn) error {
	if err := conn.Export(s, busPath, busIface); err != nil {
		return err
	}
	node := &introspect.Node{
		Name: string(busPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    busIface,
				Methods: introspect.Methods(s),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), busPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return err
	}
	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errNameTaken
	}
	return nil
}
