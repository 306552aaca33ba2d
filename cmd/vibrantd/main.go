// Command vibrantd exposes gamescope colour controls on the DBus session bus
// for plugin hosts which can't run the CLI directly.
//
//	busctl --user call io.github.pgaskin.VibrantDeck /io/github/pgaskin/VibrantDeck io.github.pgaskin.VibrantDeck SetSaturation d 1.5
//
// With --solar, it also sets the linear gain to a colour temperature based on
// the sun's elevation at the configured location.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/pgaskin/vibrantdeck"
	"github.com/pgaskin/vibrantdeck/cardinal"
	"github.com/pgaskin/vibrantdeck/drm"
	"github.com/pgaskin/vibrantdeck/redshift"
	"github.com/spf13/pflag"
)

var (
	Display  = pflag.StringP("display", "d", "", "X11 display to use (default: $DISPLAY, or "+cardinal.DefaultDisplay+" if unset)")
	Backend  = pflag.StringP("backend", "b", "xprop", "property backend (xprop, x11)")
	XProp    = pflag.String("xprop", "xprop", "xprop command line for the xprop backend")
	Timeout  = pflag.DurationP("timeout", "t", time.Second*5, "timeout for each operation (0 to disable)")
	Glob     = pflag.String("drm-status", drm.StatusGlob, "glob for drm connector status files")
	System   = pflag.Bool("system", false, "use the system bus instead of the session bus")
	Restart  = pflag.Bool("restart-on-rebuild", false, "re-exec when the executable changes")
	Solar    = pflag.Bool("solar", false, "set the colour temperature based on the sun's elevation")
	Lat      = pflag.Float64("latitude", 0, "latitude for --solar")
	Lng      = pflag.Float64("longitude", 0, "longitude for --solar")
	ElevDay  = pflag.Float64("elevation-day", 3, "solar elevation in degrees for the transition to daytime")
	ElevNite = pflag.Float64("elevation-night", -6, "solar elevation in degrees for the transition to night")
	TempDay  = pflag.Int("temperature-day", int(redshift.Neutral), "daytime colour temperature")
	TempNite = pflag.Int("temperature-night", 4500, "night colour temperature")
	Interval = pflag.Duration("solar-interval", time.Minute, "how often to update the colour temperature")
	Verbose  = pflag.BoolP("verbose", "v", false, "show debug logs")
	Help     = pflag.BoolP("help", "h", false, "show this help text")
)

var errNameTaken = errors.New("bus name " + busName + " is already taken")

func main() {
	pflag.Parse()

	if *Help || pflag.NArg() != 0 {
		fmt.Printf("usage: %s [options]\n\noptions:\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		if !*Help {
			os.Exit(2)
		}
		return
	}

	level := slog.LevelInfo
	if *Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	if *Solar && *ElevNite >= *ElevDay {
		return fmt.Errorf("night elevation must be smaller than day")
	}

	var store cardinal.Store
	switch *Backend {
	case "xprop":
		x, err := cardinal.NewXProp(*XProp, *Display, logger)
		if err != nil {
			return err
		}
		x.Stderr = os.Stderr
		store = x
	case "x11":
		x, err := cardinal.NewX11(*Display, logger)
		if err != nil {
			return err
		}
		defer x.Close()
		store = x
	default:
		return fmt.Errorf("unknown backend %q", *Backend)
	}

	var (
		conn *dbus.Conn
		err  error
	)
	if *System {
		conn, err = dbus.ConnectSystemBus()
	} else {
		conn, err = dbus.ConnectSessionBus()
	}
	if err != nil {
		return fmt.Errorf("connect to dbus: %w", err)
	}
	defer conn.Close()

	c := vibrantdeck.New(store, logger)

	svc := &Service{
		c:       c,
		logger:  logger,
		timeout: *Timeout,
		glob:    *Glob,
	}
	if err := svc.Export(conn); err != nil {
		return fmt.Errorf("export service: %w", err)
	}
	logger.Info("listening", "name", busName, "path", busPath)

	if *Restart {
		go watchExecutable(logger)
	}

	if *Solar {
		go solar(ctx, logger, c)
	}

	<-ctx.Done()
	return nil
}

func solar(ctx context.Context, logger *slog.Logger, c *vibrantdeck.Controller) {
	ticker := time.NewTicker(*Interval)
	defer ticker.Stop()
	for last := redshift.Temperature(-1); ; {
		temperature := redshift.Solar(time.Now(), *Lat, *Lng, *ElevNite, *ElevDay, redshift.Temperature(*TempNite), redshift.Temperature(*TempDay))
		if temperature != last {
			func() {
				ctx, cancel := ctx, context.CancelFunc(func() {})
				if *Timeout > 0 {
					ctx, cancel = context.WithTimeout(ctx, *Timeout)
				}
				defer cancel()

				if err := c.SetTemperature(ctx, temperature); err != nil {
					logger.Warn("solar: failed to set temperature", "temperature", temperature, "error", err)
					return
				}
				logger.Debug("solar: set temperature", "temperature", temperature)
				last = temperature
			}()
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
