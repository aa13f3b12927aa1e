package mlog

import "github.com/valyala/bytebufferpool"

// jsonFormatter emits one serialized Entry per line (newline-delimited JSON).
type jsonFormatter struct{}

func (jsonFormatter) appendEntry(buf *bytebufferpool.ByteBuffer, e Entry) {
	e.appendJSON(buf)
	buf.B = append(buf.B, '\n')
}
