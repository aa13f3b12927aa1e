package mlog

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/valyala/bytebufferpool"
)

// Logger binds one Config to one sink and formatter for its lifetime. It is
// not reconfigurable; new settings mean a new logger. Loggers are safe for
// concurrent use.
//
// A Logger runs in one of two modes, fixed at construction. Sync loggers
// write on the calling goroutine and return write failures from Msg/Msgf.
// Async loggers hand the formatted entry to a single worker goroutine over a
// bounded queue: calls never block on sink I/O (only on a full queue), per
// caller submission order is preserved, and write failures are reported to
// the error handler, recorded, and returned by the next Flush or Close.
// Close may overlap with in-flight logging calls; entries arriving after it
// fail with ErrHandler rather than panicking the caller.
type Logger struct {
	cfg  Config
	sink *sink
	fmtr formatter

	// Observers: lock-free reads via atomic.Value; synchronized updates
	// via obsMu. Stored value is []Observer and is immutable to readers.
	observers atomic.Value
	obsMu     sync.Mutex

	// async mode; nil queue means sync. qmu serializes queue sends against
	// Close: senders hold it in read mode so the channel cannot be closed
	// mid-send.
	queue   chan asyncItem
	qmu     sync.RWMutex
	wg      sync.WaitGroup
	handler func(error)
	closed  atomic.Bool

	errMu    sync.Mutex
	writeErr error
}

type asyncItem struct {
	entry Entry
	flush chan struct{}
}

// NewLogger builds a synchronous logger from cfg.
func NewLogger(cfg Config, opts ...Option) (*Logger, error) {
	return newLogger(cfg, false, buildOptions(opts))
}

// NewAsyncLogger builds an asynchronous logger from cfg.
func NewAsyncLogger(cfg Config, opts ...Option) (*Logger, error) {
	return newLogger(cfg, true, buildOptions(opts))
}

func newLogger(cfg Config, async bool, o options) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fmtr, err := newFormatter(cfg)
	if err != nil {
		return nil, err
	}
	snk, err := newSink(cfg, o.consoleWriter)
	if err != nil {
		return nil, err
	}
	l := &Logger{
		cfg:     cfg,
		sink:    snk,
		fmtr:    fmtr,
		handler: o.errorHandler,
	}
	l.observers.Store(([]Observer)(nil))
	if async {
		l.queue = make(chan asyncItem, o.queueSize)
		l.wg.Add(1)
		go l.worker()
	}
	return l, nil
}

// Name returns the logger's cache identity.
func (l *Logger) Name() string { return l.cfg.Name }

// Config returns a copy of the logger's configuration.
func (l *Logger) Config() Config { return l.cfg }

// Async reports whether writes are dispatched to a worker.
func (l *Logger) Async() bool { return l.queue != nil }

// Enabled reports whether entries at 'level' meet the configured threshold.
func (l *Logger) Enabled(level Level) bool { return level >= l.cfg.Level }

// Leveled entry points returning fluent builders.

func (l *Logger) Debug() *Event    { return getEvent(l, LevelDebug) }
func (l *Logger) Info() *Event     { return getEvent(l, LevelInfo) }
func (l *Logger) Warning() *Event  { return getEvent(l, LevelWarning) }
func (l *Logger) Error() *Event    { return getEvent(l, LevelError) }
func (l *Logger) Critical() *Event { return getEvent(l, LevelCritical) }

// AddObserver registers an observer for subsequent entries.
func (l *Logger) AddObserver(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	cur, _ := l.observers.Load().([]Observer)
	next := make([]Observer, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, o)
	l.observers.Store(next)
}

func (l *Logger) emit(e Entry) error {
	if !l.Enabled(e.Level) {
		return nil
	}
	if obs, _ := l.observers.Load().([]Observer); len(obs) > 0 {
		for _, o := range obs {
			o.OnLog(e)
		}
	}
	if l.queue != nil {
		return l.enqueue(asyncItem{entry: e})
	}
	return l.write(e)
}

// enqueue submits an item to the worker, blocking while the queue is full.
// The read lock keeps Close from closing the channel under the send; the
// worker drains independently, so held senders always complete.
func (l *Logger) enqueue(item asyncItem) error {
	l.qmu.RLock()
	defer l.qmu.RUnlock()
	if l.closed.Load() {
		return handlerErrorf(l.sink.desc, errLoggerClosed)
	}
	l.queue <- item
	return nil
}

func (l *Logger) write(e Entry) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	l.fmtr.appendEntry(buf, e)
	return l.sink.writeLine(buf.B)
}

func (l *Logger) worker() {
	defer l.wg.Done()
	for item := range l.queue {
		if item.flush != nil {
			close(item.flush)
			continue
		}
		if err := l.write(item.entry); err != nil {
			l.recordErr(err)
			l.handler(err)
		}
	}
}

var errLoggerClosed = errors.New("logger closed")

func (l *Logger) recordErr(err error) {
	l.errMu.Lock()
	if l.writeErr == nil {
		l.writeErr = err
	}
	l.errMu.Unlock()
}

func (l *Logger) takeErr() error {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	err := l.writeErr
	l.writeErr = nil
	return err
}

// Flush waits until every entry dispatched so far has been written and
// returns the first write failure recorded since the previous checkpoint.
// For sync loggers it is a no-op.
func (l *Logger) Flush() error {
	if l.queue == nil {
		return l.takeErr()
	}
	done := make(chan struct{})
	if err := l.enqueue(asyncItem{flush: done}); err != nil {
		// Already closed; the queue was fully drained by Close.
		return l.takeErr()
	}
	<-done
	return l.takeErr()
}

// Close drains the async queue, stops the worker and closes a file sink.
// Console writers are left open. Close is idempotent.
func (l *Logger) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	if l.queue != nil {
		// The write lock waits out any sender that saw closed=false before
		// the swap; everyone after it fails the enqueue check instead.
		l.qmu.Lock()
		close(l.queue)
		l.qmu.Unlock()
		l.wg.Wait()
	}
	return errors.Join(l.takeErr(), l.sink.Close())
}
