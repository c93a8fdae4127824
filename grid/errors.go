package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks invalid flag values. Nothing is read or written when it
	// is returned.
	ErrConfig = errors.New("invalid configuration")
	// ErrNoImages means no input could be placed in the grid.
	ErrNoImages = errors.New("no usable input images")
)

// DecodeError reports an input that could not be turned into pixels. Such
// inputs are skipped.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode image %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// OutputError reports a failure to encode or store the composed grid.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("could not write output %q: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// configErrorf formats like fmt.Errorf, %w included, and marks the result
// with ErrConfig.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfig}, args...)...)
}
