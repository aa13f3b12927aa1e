package mlog

import (
	"fmt"
	"io"
	"os"
)

const defaultQueueSize = 1024

// options tune logger construction. They apply to loggers built directly and
// to every logger a Registry constructs.
type options struct {
	consoleWriter io.Writer
	errorHandler  func(error)
	queueSize     int
}

// Option customizes logger construction.
type Option func(*options)

// WithConsoleWriter redirects CONSOLE target output, mainly for tests.
// Defaults to os.Stdout.
func WithConsoleWriter(w io.Writer) Option {
	return func(o *options) { o.consoleWriter = w }
}

// WithErrorHandler installs the callback that receives write failures from
// async loggers. The default prints to stderr. Failures are additionally
// recorded and returned by Flush and Close; they are never dropped silently.
func WithErrorHandler(h func(error)) Option {
	return func(o *options) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

// WithQueueSize bounds the async dispatch queue (default 1024). Callers
// block when the queue is full rather than losing entries.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "mlog: %v\n", err) }

func buildOptions(opts []Option) options {
	o := options{
		errorHandler: defaultErrorHandler,
		queueSize:    defaultQueueSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
