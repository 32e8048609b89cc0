package providers

import (
	"log/slog"
	"sync"
)

// Registry holds the active content generator and its rate limiter.
// It supports hot reload: when configuration changes, Reload swaps the
// generator without restarting the server.
type Registry struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	gen     Generator
	limiter *RateLimiter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// SetLogger sets the logger used for reload diagnostics.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logger != nil {
		r.logger = logger
	}
}

// Reload rebuilds the generator from config. On failure the previous
// generator is kept so a bad config edit does not take the server down.
func (r *Registry) Reload(cfg GeneratorConfig) {
	gen, err := NewGenerator(cfg)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.logger.Warn("generator reload failed, keeping previous", "type", cfg.Type, "error", err)
		return
	}

	r.gen = gen
	r.limiter = NewRateLimiter(cfg.RateLimit)
	r.logger.Info("generator configured", "type", cfg.Type, "model", cfg.Model)
}

// Generator returns the active generator, or nil if none is configured.
func (r *Registry) Generator() Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

// Limiter returns the active rate limiter, or nil if none is configured.
func (r *Registry) Limiter() *RateLimiter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.limiter
}
