package mlog

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// textFormatter substitutes the configured template once per entry.
// Templates use {timestamp}, {name}, {level} and {message} placeholders;
// unknown placeholders are kept verbatim. The template is compiled into
// segments at construction so the write path never re-parses it.
type textFormatter struct {
	segments   []textSegment
	dateLayout string
}

type placeholder uint8

const (
	phLiteral placeholder = iota
	phTimestamp
	phName
	phLevel
	phMessage
)

type textSegment struct {
	ph      placeholder
	literal string
}

// newTextFormatter compiles format as given, empty string included; defaults
// are Config's concern, not the formatter's.
func newTextFormatter(format, dateLayout string) *textFormatter {
	return &textFormatter{
		segments:   compileTemplate(format),
		dateLayout: dateLayout,
	}
}

func compileTemplate(format string) []textSegment {
	var segs []textSegment
	lit := strings.Builder{}
	for len(format) > 0 {
		open := strings.IndexByte(format, '{')
		if open < 0 {
			lit.WriteString(format)
			break
		}
		end := strings.IndexByte(format[open:], '}')
		if end < 0 {
			lit.WriteString(format)
			break
		}
		end += open
		ph := phLiteral
		switch format[open+1 : end] {
		case "timestamp":
			ph = phTimestamp
		case "name":
			ph = phName
		case "level":
			ph = phLevel
		case "message":
			ph = phMessage
		}
		if ph == phLiteral {
			// Not a known placeholder; keep the braces as-is.
			lit.WriteString(format[:end+1])
			format = format[end+1:]
			continue
		}
		lit.WriteString(format[:open])
		if lit.Len() > 0 {
			segs = append(segs, textSegment{ph: phLiteral, literal: lit.String()})
			lit.Reset()
		}
		segs = append(segs, textSegment{ph: ph})
		format = format[end+1:]
	}
	if lit.Len() > 0 {
		segs = append(segs, textSegment{ph: phLiteral, literal: lit.String()})
	}
	return segs
}

func (f *textFormatter) appendEntry(buf *bytebufferpool.ByteBuffer, e Entry) {
	for _, seg := range f.segments {
		switch seg.ph {
		case phTimestamp:
			buf.B = e.At.UTC().AppendFormat(buf.B, f.dateLayout)
		case phName:
			buf.B = append(buf.B, e.Name...)
		case phLevel:
			buf.B = append(buf.B, e.Level.String()...)
		case phMessage:
			buf.B = append(buf.B, e.Message...)
		default:
			buf.B = append(buf.B, seg.literal...)
		}
	}
	// Structured context is appended as key=value pairs so text targets do
	// not lose it; collision policy matches the JSON shape.
	for i := range e.Context {
		fld := &e.Context[i]
		if isReservedKey(fld.Key) || seenBefore(e.Context[:i], fld.Key) {
			continue
		}
		buf.B = append(buf.B, ' ')
		buf.B = append(buf.B, fld.Key...)
		buf.B = append(buf.B, '=')
		appendTextValue(buf, fld)
	}
	if e.Trace != "" {
		buf.B = append(buf.B, '\n')
		buf.B = append(buf.B, e.Trace...)
	}
	buf.B = append(buf.B, '\n')
}
