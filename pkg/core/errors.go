package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrMalformed is returned when input text is not valid JSON (or YAML).
	ErrMalformed = errors.New("malformed input")
	// ErrNotArray is returned when the top-level value is not an array.
	ErrNotArray = errors.New("top-level value is not an array")
	// ErrNotObject is returned when an array element is not an object.
	ErrNotObject = errors.New("array element is not an object")
	// ErrNotIDList is returned when an ids file does not hold a flat array.
	ErrNotIDList = errors.New("ids source is not a flat array")
	// ErrUnorderable is returned when values cannot be sorted against each other.
	ErrUnorderable = errors.New("values cannot be ordered")
)

// ShapeError reports a document whose structure is not an array of objects.
type ShapeError struct {
	Err   error
	Got   Kind
	Index int // -1 for the top-level value
}

func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: got %s", e.Err, e.Got)
	}
	return fmt.Sprintf("%v: element %d is %s", e.Err, e.Index, e.Got)
}

func (e *ShapeError) Unwrap() error { return e.Err }
