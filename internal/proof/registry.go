package proof

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Registry publishes the current Store. Readers never observe a partially
// built store: Reload loads a complete Store first and swaps the pointer.
type Registry struct {
	cfg     Config
	logger  *zap.Logger
	current atomic.Pointer[Store]
}

func NewRegistry(cfg Config, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{cfg: cfg, logger: logger}
}

// Current returns the published store, or nil before the first load.
func (r *Registry) Current() *Store {
	return r.current.Load()
}

// Reload reads the proof files and publishes the result.
func (r *Registry) Reload() *Store {
	store := Load(r.cfg, r.logger)
	r.Swap(store)
	return store
}

// Swap publishes a store built elsewhere.
func (r *Registry) Swap(store *Store) {
	r.current.Store(store)
}
