package mlog

import (
	"errors"
	"fmt"
	"sync"
)

// Registry is the single source of truth mapping logger names to adapter
// instances. Sync and async loggers live in independent caches: requesting
// both modes for one name yields two distinct loggers over two distinct
// sinks (two append handles to the same path interleave whole lines, with
// no cross-logger ordering).
//
// Within a mode at most one logger ever exists per name until ClearCache.
// The first configuration wins; later GetOrCreate calls for a cached name
// return the existing logger and ignore the supplied config.
type Registry struct {
	mu     sync.Mutex
	syncs  map[string]*Logger
	asyncs map[string]*Logger
	opts   options
}

// NewRegistry builds an empty registry. Options are applied to every logger
// the registry constructs.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		syncs:  make(map[string]*Logger),
		asyncs: make(map[string]*Logger),
		opts:   buildOptions(opts),
	}
}

// GetOrCreate returns the cached sync logger for cfg.Name, constructing and
// caching it on first request. Construction failures surface as
// ErrConfiguration naming the logger and mode; the cache is left unchanged.
func (r *Registry) GetOrCreate(cfg Config) (*Logger, error) {
	return r.getOrCreate(cfg, false)
}

// GetOrCreateAsync is GetOrCreate for the async cache.
func (r *Registry) GetOrCreateAsync(cfg Config) (*Logger, error) {
	return r.getOrCreate(cfg, true)
}

func (r *Registry) getOrCreate(cfg Config, async bool) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cache, mode := r.syncs, "sync"
	if async {
		cache, mode = r.asyncs, "async"
	}
	if l, ok := cache[cfg.Name]; ok {
		return l, nil
	}
	l, err := newLogger(cfg, async, r.opts)
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			return nil, fmt.Errorf("create %s logger %q: %w", mode, cfg.Name, err)
		}
		return nil, fmt.Errorf("%w: create %s logger %q: %w", ErrConfiguration, mode, cfg.Name, err)
	}
	cache[cfg.Name] = l
	return l, nil
}

// ClearCache atomically empties both caches. Previously returned loggers
// stay valid and keep writing to their open sinks; they are only no longer
// reachable through the registry.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncs = make(map[string]*Logger)
	r.asyncs = make(map[string]*Logger)
}

// Len reports the number of cached sync and async loggers.
func (r *Registry) Len() (syncCount, asyncCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.syncs), len(r.asyncs)
}
