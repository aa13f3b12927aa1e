package mlog

import (
	"io"
	"os"
	"sync"
)

// sink is the writable destination behind one logger. Writes are serialized
// by a mutex so every line lands whole, even when clones of the same file
// are appended to concurrently.
type sink struct {
	mu   sync.Mutex
	w    io.Writer
	c    io.Closer
	desc string
}

// newSink binds a Config to its destination. File backed targets create the
// directory recursively and open the file in append mode; reopening never
// truncates.
func newSink(cfg Config, console io.Writer) (*sink, error) {
	switch cfg.Target {
	case TargetConsole:
		if console == nil {
			console = os.Stdout
		}
		return &sink{w: console, desc: "console"}, nil
	case TargetFile, TargetJSON:
		path := cfg.FullPath()
		if path == "" {
			return nil, configErrorf("target %s requires directory and filename for logger %q", cfg.Target, cfg.Name)
		}
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return nil, configErrorf("create log directory %q: %v", cfg.Directory, err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, configErrorf("open log file %q: %v", path, err)
		}
		return &sink{w: f, c: f, desc: path}, nil
	default:
		return nil, configErrorf("unsupported target %s for logger %q", cfg.Target, cfg.Name)
	}
}

// writeLine appends one formatted line. Errors are not retried; they surface
// as ErrHandler.
func (s *sink) writeLine(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(p); err != nil {
		return handlerErrorf(s.desc, err)
	}
	return nil
}

func (s *sink) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
