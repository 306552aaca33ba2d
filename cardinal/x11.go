package cardinal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// maxLength is the maximum number of values read from a property.
const maxLength = 1024

// X11 is a [Store] which talks to the X server directly instead of running
// xprop. It is safe for concurrent usage.
type X11 struct {
	conn   *xgb.Conn
	logger *slog.Logger

	root xproto.Window

	amu   sync.Mutex
	atoms map[string]xproto.Atom
}

// NewX11 opens a X11 connection to the specified display (see
// [DisplayTarget]). If logger is not nil, it is used for debug logs from this
// package.
func NewX11(display string, logger *slog.Logger) (*X11, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	conn, err := xgb.NewConnDisplay(DisplayTarget(display))
	if err != nil {
		return nil, fmt.Errorf("%w: connect to x11: %w", ErrExec, err)
	}

	x := &X11{
		conn:   conn,
		logger: logger,
		atoms:  map[string]xproto.Atom{},
	}
	x.root = xproto.Setup(conn).DefaultScreen(conn).Root
	return x, nil
}

func (x *X11) Close() {
	x.conn.Close()
}

// atom interns name. If onlyIfExists is true and the atom doesn't exist,
// [xproto.AtomNone] is returned (and not cached).
func (x *X11) atom(name string, onlyIfExists bool) (xproto.Atom, error) {
	x.amu.Lock()
	defer x.amu.Unlock()

	if atom, ok := x.atoms[name]; ok {
		return atom, nil
	}
	reply, err := xproto.InternAtom(x.conn, onlyIfExists, uint16(len(name)), name).Reply()
	if err != nil {
		return xproto.AtomNone, fmt.Errorf("intern atom: %w", err)
	}
	if reply.Atom != xproto.AtomNone {
		x.atoms[name] = reply.Atom
	}
	return reply.Atom, nil
}

// do runs fn, returning early if ctx is done first. xgb requests can't be
// cancelled, so fn keeps running in the background.
func do[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var z T
		return z, ctx.Err()
	}
}

func (x *X11) Set(ctx context.Context, name string, values []uint32) error {
	if len(values) == 0 {
		return &Error{"set", name, errors.New("no values")}
	}
	_, err := do(ctx, func() (struct{}, error) {
		atom, err := x.atom(name, false)
		if err != nil {
			return struct{}{}, err
		}
		buf := make([]byte, len(values)*4)
		for i, v := range values {
			xgb.Put32(buf[i*4:], v)
		}
		x.logger.Debug("x11: change property", "name", name, "atom", atom, "values", values)
		if err := xproto.ChangePropertyChecked(x.conn, xproto.PropModeReplace, x.root, atom, xproto.AtomCardinal, 32, uint32(len(values)), buf).Check(); err != nil {
			return struct{}{}, fmt.Errorf("change property: %w", err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return &Error{"set", name, fmt.Errorf("%w: %w", ErrExec, err)}
	}
	return nil
}

func (x *X11) Get(ctx context.Context, name string) ([]uint32, bool, error) {
	type result struct {
		values    []uint32
		ok        bool
		malformed error
	}
	r, err := do(ctx, func() (result, error) {
		atom, err := x.atom(name, true)
		if err != nil {
			return result{}, err
		}
		if atom == xproto.AtomNone {
			return result{}, nil // never interned, so it can't be set
		}
		reply, err := xproto.GetProperty(x.conn, false, x.root, atom, xproto.GetPropertyTypeAny, 0, maxLength).Reply()
		if err != nil {
			return result{}, fmt.Errorf("get property: %w", err)
		}
		if reply.Type == xproto.AtomNone {
			return result{}, nil
		}
		if reply.Type != xproto.AtomCardinal || reply.Format != 32 {
			return result{ok: true, malformed: fmt.Errorf("%w: unexpected type %d format %d", ErrMalformed, reply.Type, reply.Format)}, nil
		}
		values := make([]uint32, reply.ValueLen)
		for i := range values {
			values[i] = xgb.Get32(reply.Value[i*4:])
		}
		return result{values: values, ok: true}, nil
	})
	if err != nil {
		return nil, false, &Error{"get", name, fmt.Errorf("%w: %w", ErrExec, err)}
	}
	if r.malformed != nil {
		return nil, true, &Error{"get", name, r.malformed}
	}
	return r.values, r.ok, nil
}
