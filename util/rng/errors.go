package rng

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrZeroBound       = errors.New("bound is zero")
	ErrInvertedRange   = errors.New("range maximum is below its minimum")
	ErrIndexOutOfRange = errors.New("index is outside of [0, count)")
)

// ArgumentError is the value distribution functions panic with when called
// outside of their preconditions.
type ArgumentError struct {
	Func   string
	Detail string
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("rng: invalid argument to %s: %s (%s)", e.Func, e.Err, e.Detail)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func argPanic(fn string, err error, format string, args ...any) {
	panic(&ArgumentError{Func: fn, Detail: fmt.Sprintf(format, args...), Err: err})
}
