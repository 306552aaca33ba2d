// Package cardinal reads and writes 32-bit CARDINAL array properties on the
// root window of an X11 display.
//
// Property values are sequences of uint32. Floats are carried as their bit
// patterns (see [Encode] and [Decode]) since the property format only holds
// integers.
package cardinal

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
)

// DefaultDisplay is targeted when the environment does not name a display,
// which is usually the case when running under a plugin host.
const DefaultDisplay = ":1"

// Some errors.
var (
	ErrExec      = errors.New("property client failed")
	ErrMalformed = errors.New("malformed property value")
)

// Error is returned by stores for failed operations. It wraps [ErrExec] or
// [ErrMalformed].
type Error struct {
	Op   string // "get" or "set"
	Name string // property name
	Err  error
}

func (e *Error) Error() string {
	return e.Op + " " + e.Name + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Store is a property store. Implementations do not cache, and every call is
// a round trip to the display server. There is no ordering between concurrent
// calls.
type Store interface {
	// Set replaces the named property with values.
	Set(ctx context.Context, name string, values []uint32) error

	// Get gets the named property. If it does not exist, ok is false and err
	// is nil.
	Get(ctx context.Context, name string) (values []uint32, ok bool, err error)
}

// DisplayTarget returns the display to explicitly connect to. If display is
// empty and the DISPLAY environment variable is set, it returns an empty
// string (use the default). Otherwise, if display is empty, it returns
// [DefaultDisplay].
func DisplayTarget(display string) string {
	if display != "" {
		return display
	}
	if os.Getenv("DISPLAY") != "" {
		return ""
	}
	return DefaultDisplay
}

// FormatValues formats values as a comma-separated list of decimal integers.
func FormatValues(values []uint32) string {
	var b strings.Builder
	for i, v := range values {
		if i != 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return b.String()
}
