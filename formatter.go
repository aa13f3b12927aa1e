package mlog

import "github.com/valyala/bytebufferpool"

// formatter renders one complete line (newline included) for an entry.
type formatter interface {
	appendEntry(buf *bytebufferpool.ByteBuffer, e Entry)
}

// newFormatter pairs the target with its formatter. The target set is
// closed; anything unrecognized is a construction error, never a fallback.
func newFormatter(cfg Config) (formatter, error) {
	switch cfg.Target {
	case TargetConsole, TargetFile:
		return newTextFormatter(cfg.TextFormat, cfg.DateFormat), nil
	case TargetJSON:
		return jsonFormatter{}, nil
	default:
		return nil, configErrorf("unsupported target %s for logger %q", cfg.Target, cfg.Name)
	}
}
