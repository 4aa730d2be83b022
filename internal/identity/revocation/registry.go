// Package revocation tracks access tokens that were logged out before
// their natural expiry. The registry is deliberately in-memory only: a
// restart clears it, which is an accepted bounded risk because access
// tokens are short-lived. It sits on the hot path of every authenticated
// request, so lookups must not serialize behind unrelated writes.
package revocation

import (
	"log/slog"
	"sync"
	"time"
)

// Registry is a concurrent expiring set of revoked access tokens. Entries
// are removed lazily on lookup and in bulk by a periodic background sweep.
type Registry struct {
	entries sync.Map // map[string]time.Time (token -> expiry)

	logger   *slog.Logger
	interval time.Duration

	// Now is the clock used for expiry decisions, swappable in tests.
	Now func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewRegistry creates a registry whose sweep runs on the given interval.
// A zero or negative interval defaults to 10 minutes.
func NewRegistry(logger *slog.Logger, interval time.Duration) *Registry {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Registry{
		logger:   logger,
		interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Revoke marks a token as unusable until expiry. Idempotent: revoking the
// same token again simply overwrites the entry.
func (r *Registry) Revoke(token string, expiry time.Time) {
	r.entries.Store(token, expiry)
}

// IsRevoked reports whether the token is currently revoked. An entry whose
// expiry has passed is logically absent: it is removed as a side effect and
// the token reported as not revoked.
func (r *Registry) IsRevoked(token string) bool {
	v, ok := r.entries.Load(token)
	if !ok {
		return false
	}

	expiry := v.(time.Time)
	if !r.Now().Before(expiry) {
		r.entries.Delete(token)
		return false
	}
	return true
}

// Len counts live entries; expired ones still awaiting cleanup are skipped.
func (r *Registry) Len() int {
	now := r.Now()
	n := 0
	r.entries.Range(func(_, v any) bool {
		if now.Before(v.(time.Time)) {
			n++
		}
		return true
	})
	return n
}

// Start launches the background sweep. Non-blocking; call Stop to shut it
// down at process exit.
func (r *Registry) Start() {
	go r.run()
	r.logger.Info("revocation sweep started", "interval", r.interval)
}

// Stop shuts the sweeper down and blocks until any in-progress sweep ends.
func (r *Registry) Stop() {
	close(r.stopCh)
	<-r.doneCh
	r.logger.Info("revocation sweep stopped")
}

func (r *Registry) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-r.stopCh:
			return
		}
	}
}

// Sweep removes every entry whose expiry has passed, bounding registry
// size even without lookup traffic. Safe to run concurrently with Revoke
// and IsRevoked.
func (r *Registry) Sweep() {
	now := r.Now()
	removed := 0
	r.entries.Range(func(k, v any) bool {
		if !now.Before(v.(time.Time)) {
			r.entries.Delete(k)
			removed++
		}
		return true
	})

	if removed > 0 {
		r.logger.Debug("revocation sweep removed expired entries", "removed", removed)
	}
}
