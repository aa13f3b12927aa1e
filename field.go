package mlog

import "time"

// Kind identifies the concrete type stored in a Field.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt64
	KindUint64
	KindFloat64
	KindBool
	KindDuration
	KindTime
	KindError
	KindAny
)

// Field is a typed key/value pair of entry context. The union layout keeps
// the common scalar kinds reflection-free.
type Field struct {
	Key     string
	Kind    Kind
	Str     string
	Int64   int64
	Uint64  uint64
	Float64 float64
	Bool    bool
	Dur     time.Duration
	Time    time.Time
	Err     error
	Any     any
}

// Context is the ordered free-form key/value data attached to one entry.
// It is captured once at emit time and never mutated afterwards.
type Context []Field

// Helpers for ergonomics.

func Str(k, v string) Field               { return Field{Key: k, Kind: KindString, Str: v} }
func Int(k string, v int) Field           { return Field{Key: k, Kind: KindInt64, Int64: int64(v)} }
func Int64(k string, v int64) Field       { return Field{Key: k, Kind: KindInt64, Int64: v} }
func Uint64(k string, v uint64) Field     { return Field{Key: k, Kind: KindUint64, Uint64: v} }
func Float64(k string, v float64) Field   { return Field{Key: k, Kind: KindFloat64, Float64: v} }
func Bool(k string, v bool) Field         { return Field{Key: k, Kind: KindBool, Bool: v} }
func Dur(k string, v time.Duration) Field { return Field{Key: k, Kind: KindDuration, Dur: v} }
func Time(k string, v time.Time) Field    { return Field{Key: k, Kind: KindTime, Time: v} }
func Err(err error) Field                 { return Field{Key: "error", Kind: KindError, Err: err} }
func Any(k string, v any) Field           { return Field{Key: k, Kind: KindAny, Any: v} }
