// Package geo abstracts the host's one-shot geolocation provider. The core
// treats it as a fallible, possibly slow external call.
package geo

import (
	"context"
	"sync"
	"time"

	"github.com/trekmate/trekmate-core/internal/types"
)

const (
	// DefaultTimeout bounds a single position request.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxAge is how stale a cached fix may be before a fresh one is
	// requested.
	DefaultMaxAge = 60 * time.Second
)

// Locator yields the current position or an error.
type Locator interface {
	Current(ctx context.Context) (types.GeoPoint, error)
}

// StaticLocator always returns a fixed point. Used by tests and the demo
// binary where no real positioning backend exists.
type StaticLocator struct {
	Point types.GeoPoint
}

func (s StaticLocator) Current(_ context.Context) (types.GeoPoint, error) {
	return s.Point, nil
}

// CachedLocator wraps a Locator with a request timeout and a staleness
// window: a fix younger than maxAge is served without touching the inner
// provider.
type CachedLocator struct {
	inner   Locator
	timeout time.Duration
	maxAge  time.Duration
	now     func() time.Time

	mu      sync.Mutex
	lastFix types.GeoPoint
	fixedAt time.Time
}

func NewCachedLocator(inner Locator) *CachedLocator {
	return &CachedLocator{
		inner:   inner,
		timeout: DefaultTimeout,
		maxAge:  DefaultMaxAge,
		now:     time.Now,
	}
}

func (c *CachedLocator) Current(ctx context.Context) (types.GeoPoint, error) {
	c.mu.Lock()
	if !c.fixedAt.IsZero() && c.now().Sub(c.fixedAt) <= c.maxAge {
		fix := c.lastFix
		c.mu.Unlock()
		return fix, nil
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fix, err := c.inner.Current(ctx)
	if err != nil {
		return types.GeoPoint{}, err
	}

	c.mu.Lock()
	c.lastFix = fix
	c.fixedAt = c.now()
	c.mu.Unlock()
	return fix, nil
}
