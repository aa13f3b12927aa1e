package mlog

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/trickstertwo/xclock"
)

// Event is a fluent builder for a single log entry:
//
//	logger.Info().Str("user", "alice").Int("attempt", 2).Msg("login ok")
//
// Msg and Msgf terminate the builder; an Event must not be reused after.
type Event struct {
	l      *Logger
	level  Level
	fields []Field
	trace  string
}

var eventPool = sync.Pool{
	New: func() any { return &Event{fields: make([]Field, 0, 8)} },
}

func getEvent(l *Logger, level Level) *Event {
	ev := eventPool.Get().(*Event)
	ev.l = l
	ev.level = level
	ev.fields = ev.fields[:0]
	ev.trace = ""
	return ev
}

func (e *Event) putBack() {
	// allow GC of large backing arrays by capping
	if cap(e.fields) > 128 {
		e.fields = make([]Field, 0, 8)
	}
	e.l = nil
	e.level = 0
	e.trace = ""
	eventPool.Put(e)
}

// Field builders.

func (e *Event) Str(k, v string) *Event {
	e.fields = append(e.fields, Field{Key: k, Kind: KindString, Str: v})
	return e
}

func (e *Event) Int(k string, v int) *Event { return e.Int64(k, int64(v)) }

func (e *Event) Int64(k string, v int64) *Event {
	e.fields = append(e.fields, Field{Key: k, Kind: KindInt64, Int64: v})
	return e
}

func (e *Event) Uint64(k string, v uint64) *Event {
	e.fields = append(e.fields, Field{Key: k, Kind: KindUint64, Uint64: v})
	return e
}

func (e *Event) Float64(k string, v float64) *Event {
	e.fields = append(e.fields, Field{Key: k, Kind: KindFloat64, Float64: v})
	return e
}

func (e *Event) Bool(k string, v bool) *Event {
	e.fields = append(e.fields, Field{Key: k, Kind: KindBool, Bool: v})
	return e
}

func (e *Event) Dur(k string, v time.Duration) *Event {
	e.fields = append(e.fields, Field{Key: k, Kind: KindDuration, Dur: v})
	return e
}

func (e *Event) Time(k string, v time.Time) *Event {
	e.fields = append(e.fields, Field{Key: k, Kind: KindTime, Time: v})
	return e
}

func (e *Event) Any(k string, v any) *Event {
	e.fields = append(e.fields, Field{Key: k, Kind: KindAny, Any: v})
	return e
}

// Err attaches an error under the "error" key. Nil errors are ignored.
func (e *Event) Err(err error) *Event {
	if err == nil {
		return e
	}
	e.fields = append(e.fields, Field{Key: "error", Kind: KindError, Err: err})
	return e
}

// Fields appends a whole Context in order.
func (e *Event) Fields(ctx Context) *Event {
	e.fields = append(e.fields, ctx...)
	return e
}

// Trace captures the current goroutine stack. The capture happens here, on
// the caller's stack, so it stays meaningful even when the write is handed
// off to an async worker. It serializes as the "exception" field in JSON
// output and is appended after the message line in text output.
func (e *Event) Trace() *Event {
	e.trace = string(debug.Stack())
	return e
}

// Msg emits the entry with the given message. For sync loggers the returned
// error is the sink write failure, if any; async loggers return nil here and
// surface failures via the error handler and Flush/Close.
func (e *Event) Msg(msg string) error {
	return e.emit(msg)
}

// Msgf emits the entry with a printf-formatted message.
func (e *Event) Msgf(format string, args ...any) error {
	if e.l != nil && !e.l.Enabled(e.level) {
		e.putBack()
		return nil
	}
	return e.emit(fmt.Sprintf(format, args...))
}

func (e *Event) emit(msg string) error {
	l := e.l
	if l == nil || !l.Enabled(e.level) {
		e.putBack()
		return nil
	}
	var ctx Context
	if len(e.fields) > 0 {
		ctx = make(Context, len(e.fields))
		copy(ctx, e.fields)
	}
	entry := Entry{
		At:      xclock.Now().UTC(),
		Level:   e.level,
		Name:    l.cfg.Name,
		Message: msg,
		Context: ctx,
		Trace:   e.trace,
	}
	e.putBack()
	return l.emit(entry)
}
