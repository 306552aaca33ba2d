package cardinal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"slices"

	"github.com/mattn/go-shellwords"
)

// XProp is a [Store] which runs xprop(1) for each operation. The zero value
// runs "xprop" from PATH against [DisplayTarget]("").
type XProp struct {
	// Command is the xprop command and any leading arguments. If empty,
	// "xprop" is used.
	Command []string

	// Display is passed to [DisplayTarget].
	Display string

	// Stderr receives the standard error of xprop. If nil, it is discarded.
	Stderr io.Writer

	// Logger is used for debug logs. If nil, nothing is logged.
	Logger *slog.Logger
}

// NewXProp parses command as a shell command line (e.g., "flatpak-spawn
// --host xprop") and returns a store which uses it.
func NewXProp(command, display string, logger *slog.Logger) (*XProp, error) {
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse xprop command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("parse xprop command: %q is empty", command)
	}
	return &XProp{
		Command: argv,
		Display: display,
		Logger:  logger,
	}, nil
}

// Args returns the xprop arguments (excluding the command itself) for setting
// the named property if set is true, or querying it otherwise.
func (x *XProp) Args(name string, set bool, values []uint32) []string {
	var args []string
	if len(x.Command) > 1 {
		args = slices.Clone(x.Command[1:])
	}
	args = append(args, "-root")
	if display := DisplayTarget(x.Display); display != "" {
		args = append(args, "-display", display)
	}
	if set {
		args = append(args, "-f", name, "32c", "-set", name, FormatValues(values))
	} else {
		args = append(args, name)
	}
	return args
}

func (x *XProp) command(ctx context.Context, args []string) *exec.Cmd {
	name := "xprop"
	if len(x.Command) != 0 {
		name = x.Command[0]
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = x.Stderr
	if x.Logger != nil {
		x.Logger.Debug("xprop: exec", "args", cmd.Args)
	}
	return cmd
}

func (x *XProp) Set(ctx context.Context, name string, values []uint32) error {
	if len(values) == 0 {
		return &Error{"set", name, errors.New("no values")}
	}
	if err := x.command(ctx, x.Args(name, true, values)).Run(); err != nil {
		return &Error{"set", name, fmt.Errorf("%w: %w", ErrExec, err)}
	}
	return nil
}

func (x *XProp) Get(ctx context.Context, name string) ([]uint32, bool, error) {
	var stdout bytes.Buffer
	cmd := x.command(ctx, x.Args(name, false, nil))
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, false, &Error{"get", name, fmt.Errorf("%w: %w", ErrExec, err)}
	}
	values, ok, err := ParseQuery(stdout.String())
	if err != nil {
		return nil, ok, &Error{"get", name, err}
	}
	return values, ok, nil
}
