package core

import (
	"fmt"
	"strings"
)

// Compare orders two values of the same kind.
//
// null equals null, false sorts before true, numbers compare by exact value,
// strings by code point and arrays element by element. Objects, and values
// of different kinds, are not ordered and yield ErrUnorderable.
func Compare(a, b Value) (int, error) {
	if a.kind != b.kind {
		return 0, fmt.Errorf("%w: %s and %s", ErrUnorderable, a.kind, b.kind)
	}
	switch a.kind {
	case KindNull:
		return 0, nil
	case KindBool:
		switch {
		case a.b == b.b:
			return 0, nil
		case !a.b:
			return -1, nil
		default:
			return 1, nil
		}
	case KindNumber:
		return compareNumbers(a.s, b.s), nil
	case KindString:
		return strings.Compare(a.s, b.s), nil
	case KindArray:
		for i := 0; i < len(a.arr) && i < len(b.arr); i++ {
			c, err := Compare(a.arr[i], b.arr[i])
			if err != nil || c != 0 {
				return c, err
			}
		}
		switch {
		case len(a.arr) < len(b.arr):
			return -1, nil
		case len(a.arr) > len(b.arr):
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnorderable, a.kind)
	}
}
