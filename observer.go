package mlog

// Observer is notified for each entry that passes the logger's threshold,
// before the entry reaches the sink. Implementations must be safe for
// concurrent use; async loggers notify on the calling goroutine.
type Observer interface {
	OnLog(e Entry)
}

// ObserverFunc adapter.
type ObserverFunc func(Entry)

func (f ObserverFunc) OnLog(e Entry) { f(e) }
