package mlog

import (
	"errors"
	"fmt"
)

// Error taxonomy. All errors returned by this package wrap one of these
// sentinels, so callers can classify with errors.Is.
var (
	// ErrInvalidConfiguration marks bad or missing configuration fields,
	// detected at construction time.
	ErrInvalidConfiguration = errors.New("mlog: invalid configuration")

	// ErrConfiguration marks a failure to build a logger from an otherwise
	// well-formed configuration (unsupported target, unwritable directory).
	ErrConfiguration = errors.New("mlog: configuration error")

	// ErrHandler marks a runtime sink write failure. Writes are not retried.
	ErrHandler = errors.New("mlog: handler error")
)

func invalidConfigf(field, format string, args ...any) error {
	return fmt.Errorf("%w: field %q: %s", ErrInvalidConfiguration, field, fmt.Sprintf(format, args...))
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func handlerErrorf(sink string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrHandler, sink, err)
}
