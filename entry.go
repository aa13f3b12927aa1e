package mlog

import (
	"time"

	"github.com/trickstertwo/xclock"
	"github.com/valyala/bytebufferpool"
)

// Reserved top-level keys of the serialized entry. Context fields carrying
// one of these keys (or repeating an earlier context key) are dropped:
// reserved keys always win, and an entry never serializes a key twice.
const (
	keyTimestamp = "timestamp"
	keyLevel     = "level"
	keyName      = "name"
	keyMessage   = "message"
	keyException = "exception"
)

// Entry is an immutable structured log record. At is always UTC.
// Trace holds a formatted stack trace or error detail when one was captured
// at the call site; it serializes as the "exception" key.
type Entry struct {
	At      time.Time
	Level   Level
	Name    string
	Message string
	Context Context
	Trace   string
}

// NewEntry builds an Entry stamped with the current UTC time from the
// package clock. Context is kept by reference; callers hand over ownership.
func NewEntry(level Level, name, message string, ctx Context) Entry {
	return Entry{
		At:      xclock.Now().UTC(),
		Level:   level,
		Name:    name,
		Message: message,
		Context: ctx,
	}
}

// MarshalJSON renders the canonical flat wire shape: timestamp (RFC 3339
// UTC), level, name, message, then every context pair in insertion order,
// then exception when a trace was captured.
func (e Entry) MarshalJSON() ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	e.appendJSON(buf)
	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func (e Entry) appendJSON(buf *bytebufferpool.ByteBuffer) {
	buf.B = append(buf.B, '{')

	buf.B = append(buf.B, `"timestamp":"`...)
	buf.B = e.At.UTC().AppendFormat(buf.B, time.RFC3339Nano)
	buf.B = append(buf.B, '"')

	buf.B = append(buf.B, `,"level":`...)
	appendJSONString(buf, e.Level.String())

	buf.B = append(buf.B, `,"name":`...)
	appendJSONString(buf, e.Name)

	buf.B = append(buf.B, `,"message":`...)
	appendJSONString(buf, e.Message)

	for i := range e.Context {
		f := &e.Context[i]
		if isReservedKey(f.Key) || seenBefore(e.Context[:i], f.Key) {
			continue
		}
		buf.B = append(buf.B, ',')
		appendJSONString(buf, f.Key)
		buf.B = append(buf.B, ':')
		appendJSONValue(buf, f)
	}

	if e.Trace != "" {
		buf.B = append(buf.B, `,"exception":`...)
		appendJSONString(buf, e.Trace)
	}

	buf.B = append(buf.B, '}')
}

func isReservedKey(k string) bool {
	switch k {
	case keyTimestamp, keyLevel, keyName, keyMessage, keyException:
		return true
	}
	return false
}

func seenBefore(prior Context, k string) bool {
	for i := range prior {
		if prior[i].Key == k {
			return true
		}
	}
	return false
}
