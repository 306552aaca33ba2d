package cardinal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseQuery parses the output of an xprop query for a single property.
//
//	GAMESCOPE_COLOR_MATRIX(CARDINAL) = 1065353216, 0, 0, 0, 1065353216, 0, 0, 0, 1065353216
//	GAMESCOPE_COLOR_MATRIX:  not found.
//
// If the output does not contain '=', the property is not set, and ok is
// false. If it does but the values can't be parsed, the error wraps
// [ErrMalformed].
func ParseQuery(out string) (values []uint32, ok bool, err error) {
	if !utf8.ValidString(out) {
		return nil, false, fmt.Errorf("%w: invalid utf-8 in output", ErrMalformed)
	}
	_, list, ok := strings.Cut(out, "=")
	if !ok {
		return nil, false, nil
	}
	if list = strings.TrimSpace(list); list == "" {
		return nil, true, fmt.Errorf("%w: no values", ErrMalformed)
	}
	for tok := range strings.SplitSeq(list, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 32)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		values = append(values, uint32(v))
	}
	return values, true, nil
}
