package mlog

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

const hexDigits = "0123456789abcdef"

// appendJSONString writes s as a quoted JSON string with minimal escaping.
func appendJSONString(buf *bytebufferpool.ByteBuffer, s string) {
	buf.B = append(buf.B, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '\\' && c != '"' && c < 0x80 {
			i++
			continue
		}
		if start < i {
			buf.B = append(buf.B, s[start:i]...)
		}
		start = i
		if c < 0x80 {
			switch c {
			case '\\', '"':
				buf.B = append(buf.B, '\\', c)
			case '\n':
				buf.B = append(buf.B, '\\', 'n')
			case '\r':
				buf.B = append(buf.B, '\\', 'r')
			case '\t':
				buf.B = append(buf.B, '\\', 't')
			default:
				buf.B = append(buf.B, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.B = append(buf.B, `�`...)
			i++
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		buf.B = append(buf.B, s[start:]...)
	}
	buf.B = append(buf.B, '"')
}

// appendJSONValue writes the field value as a JSON value.
func appendJSONValue(buf *bytebufferpool.ByteBuffer, f *Field) {
	switch f.Kind {
	case KindString:
		appendJSONString(buf, f.Str)
	case KindInt64:
		buf.B = strconv.AppendInt(buf.B, f.Int64, 10)
	case KindUint64:
		buf.B = strconv.AppendUint(buf.B, f.Uint64, 10)
	case KindFloat64:
		appendJSONFloat(buf, f.Float64)
	case KindBool:
		buf.B = strconv.AppendBool(buf.B, f.Bool)
	case KindDuration:
		appendJSONString(buf, f.Dur.String())
	case KindTime:
		buf.B = append(buf.B, '"')
		buf.B = f.Time.UTC().AppendFormat(buf.B, time.RFC3339Nano)
		buf.B = append(buf.B, '"')
	case KindError:
		if f.Err == nil {
			buf.B = append(buf.B, "null"...)
			return
		}
		appendJSONString(buf, f.Err.Error())
	case KindAny:
		appendJSONAny(buf, f.Any)
	default:
		buf.B = append(buf.B, "null"...)
	}
}

func appendJSONFloat(buf *bytebufferpool.ByteBuffer, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		buf.B = append(buf.B, "null"...)
		return
	}
	buf.B = strconv.AppendFloat(buf.B, v, 'g', -1, 64)
}

// appendJSONAny falls back to encoding/json for arbitrary nested values.
func appendJSONAny(buf *bytebufferpool.ByteBuffer, v any) {
	if v == nil {
		buf.B = append(buf.B, "null"...)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		appendJSONString(buf, "unserializable")
		return
	}
	buf.B = append(buf.B, data...)
}

// appendTextValue writes the field value in the text wire form.
func appendTextValue(buf *bytebufferpool.ByteBuffer, f *Field) {
	switch f.Kind {
	case KindString:
		appendTextString(buf, f.Str)
	case KindInt64:
		buf.B = strconv.AppendInt(buf.B, f.Int64, 10)
	case KindUint64:
		buf.B = strconv.AppendUint(buf.B, f.Uint64, 10)
	case KindFloat64:
		buf.B = strconv.AppendFloat(buf.B, f.Float64, 'g', -1, 64)
	case KindBool:
		buf.B = strconv.AppendBool(buf.B, f.Bool)
	case KindDuration:
		buf.B = append(buf.B, f.Dur.String()...)
	case KindTime:
		buf.B = f.Time.UTC().AppendFormat(buf.B, time.RFC3339Nano)
	case KindError:
		if f.Err == nil {
			buf.B = append(buf.B, "null"...)
			return
		}
		buf.B = strconv.AppendQuote(buf.B, f.Err.Error())
	case KindAny:
		appendTextAny(buf, f.Any)
	default:
		buf.B = append(buf.B, "null"...)
	}
}

// appendTextString quotes only when the value contains spaces, quotes or
// control bytes; bare tokens stay unquoted.
func appendTextString(buf *bytebufferpool.ByteBuffer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || c == '"' || c == '=' {
			buf.B = strconv.AppendQuote(buf.B, s)
			return
		}
	}
	buf.B = append(buf.B, s...)
}

func appendTextAny(buf *bytebufferpool.ByteBuffer, v any) {
	switch vv := v.(type) {
	case nil:
		buf.B = append(buf.B, "null"...)
	case string:
		appendTextString(buf, vv)
	case bool:
		buf.B = strconv.AppendBool(buf.B, vv)
	case int:
		buf.B = strconv.AppendInt(buf.B, int64(vv), 10)
	case int64:
		buf.B = strconv.AppendInt(buf.B, vv, 10)
	case uint64:
		buf.B = strconv.AppendUint(buf.B, vv, 10)
	case float64:
		buf.B = strconv.AppendFloat(buf.B, vv, 'g', -1, 64)
	case time.Time:
		buf.B = vv.UTC().AppendFormat(buf.B, time.RFC3339Nano)
	case time.Duration:
		buf.B = append(buf.B, vv.String()...)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			buf.B = append(buf.B, "unserializable"...)
			return
		}
		buf.B = append(buf.B, data...)
	}
}
