// Command vibrant gets and sets gamescope colour properties.
//
//	vibrant get saturation|vibrancy
//	vibrant get raw NAME
//	vibrant set saturation 0-4
//	vibrant set vibrancy 0-1
//	vibrant set lineargain R G B
//	vibrant set gain R G B
//	vibrant set blend 0-1
//	vibrant set temperature KELVIN
//	vibrant displays
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pgaskin/vibrantdeck"
	"github.com/pgaskin/vibrantdeck/cardinal"
	"github.com/pgaskin/vibrantdeck/drm"
	"github.com/pgaskin/vibrantdeck/redshift"
	"github.com/spf13/pflag"
)

var (
	Display = pflag.StringP("display", "d", "", "X11 display to use (default: $DISPLAY, or "+cardinal.DefaultDisplay+" if unset)")
	Backend = pflag.StringP("backend", "b", "xprop", "property backend (xprop, x11)")
	XProp   = pflag.String("xprop", "xprop", "xprop command line for the xprop backend")
	Timeout = pflag.DurationP("timeout", "t", time.Second*5, "timeout for each operation (0 to disable)")
	Glob    = pflag.String("drm-status", drm.StatusGlob, "glob for drm connector status files")
	Verbose = pflag.BoolP("verbose", "v", false, "show debug logs")
	Help    = pflag.BoolP("help", "h", false, "show this help text")
)

var errUsage = errors.New("usage")

func main() {
	pflag.Parse()

	if *Help || pflag.NArg() == 0 {
		fmt.Printf("usage: %s [options] get saturation|vibrancy|raw NAME\n", os.Args[0])
		fmt.Printf("       %s [options] set saturation|vibrancy|blend VALUE\n", os.Args[0])
		fmt.Printf("       %s [options] set lineargain|gain R G B\n", os.Args[0])
		fmt.Printf("       %s [options] set temperature KELVIN\n", os.Args[0])
		fmt.Printf("       %s [options] displays\n", os.Args[0])
		fmt.Printf("\noptions:\n%s", pflag.CommandLine.FlagUsages())
		if !*Help {
			os.Exit(2)
		}
		return
	}

	level := slog.LevelWarn
	if *Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if err := run(context.Background(), os.Stdout, logger, pflag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "vibrant: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "vibrant: error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, logger *slog.Logger, args []string) error {
	if args[0] == "displays" {
		if len(args) != 1 {
			return fmt.Errorf("%w: displays takes no arguments", errUsage)
		}
		cs, err := drm.Connectors(*Glob)
		if err != nil {
			return err
		}
		for _, c := range cs {
			if c.Monitor != "" {
				fmt.Fprintf(w, "%s\t%s\n", c.Name, c.Monitor)
			} else {
				fmt.Fprintln(w, c.Name)
			}
		}
		return nil
	}

	store, closeStore, err := openStore(logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if *Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *Timeout)
		defer cancel()
	}

	return command(ctx, w, vibrantdeck.New(store, logger), args)
}

func command(ctx context.Context, w io.Writer, c *vibrantdeck.Controller, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: missing property", errUsage)
	}
	switch op, prop, vals := args[0], args[1], args[2:]; op {
	case "get":
		switch prop {
		case "saturation", "vibrancy":
			if len(vals) != 0 {
				return fmt.Errorf("%w: get %s takes no arguments", errUsage, prop)
			}
			get := c.GetSaturation
			if prop == "vibrancy" {
				get = c.GetVibrancy
			}
			v, err := get(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, strconv.FormatFloat(v, 'f', -1, 64))
		case "raw":
			if len(vals) != 1 {
				return fmt.Errorf("%w: get raw takes a property name", errUsage)
			}
			fs, ok, err := c.Raw(ctx, vals[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: not found", vals[0])
			}
			strs := make([]string, len(fs))
			for i, f := range fs {
				strs[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
			}
			fmt.Fprintln(w, strings.Join(strs, " "))
		default:
			return fmt.Errorf("%w: unknown property %q", errUsage, prop)
		}
	case "set":
		fs, err := parseFloats(vals)
		if err != nil {
			return err
		}
		switch prop {
		case "saturation", "vibrancy", "blend", "temperature":
			if len(fs) != 1 {
				return fmt.Errorf("%w: set %s takes one value", errUsage, prop)
			}
		case "lineargain", "gain":
			if len(fs) != 3 {
				return fmt.Errorf("%w: set %s takes three values", errUsage, prop)
			}
		}
		switch prop {
		case "saturation":
			return c.SetSaturation(ctx, fs[0])
		case "vibrancy":
			return c.SetVibrancy(ctx, fs[0])
		case "blend":
			return c.SetGammaLinearGainBlend(ctx, fs[0])
		case "temperature":
			return c.SetTemperature(ctx, redshift.Temperature(fs[0]))
		case "lineargain":
			return c.SetGammaLinearGain(ctx, vibrantdeck.RGB(fs))
		case "gain":
			return c.SetGammaGain(ctx, vibrantdeck.RGB(fs))
		default:
			return fmt.Errorf("%w: unknown property %q", errUsage, prop)
		}
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, op)
	}
	return nil
}

func parseFloats(strs []string) ([]float64, error) {
	fs := make([]float64, len(strs))
	for i, s := range strs {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid value %q", errUsage, s)
		}
		fs[i] = f
	}
	return fs, nil
}

func openStore(logger *slog.Logger) (cardinal.Store, func(), error) {
	switch *Backend {
	case "xprop":
		x, err := cardinal.NewXProp(*XProp, *Display, logger)
		if err != nil {
			return nil, nil, err
		}
		x.Stderr = os.Stderr
		return x, func() {}, nil
	case "x11":
		x, err := cardinal.NewX11(*Display, logger)
		if err != nil {
			return nil, nil, err
		}
		return x, x.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown backend %q", errUsage, *Backend)
	}
}
