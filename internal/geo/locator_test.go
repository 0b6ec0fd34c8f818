package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekmate/trekmate-core/internal/types"
)

// countingLocator records how often the inner provider is consulted.
type countingLocator struct {
	point types.GeoPoint
	err   error
	calls int
}

func (c *countingLocator) Current(_ context.Context) (types.GeoPoint, error) {
	c.calls++
	return c.point, c.err
}

func TestCachedLocatorServesFreshFix(t *testing.T) {
	inner := &countingLocator{point: types.GeoPoint{Lat: 27.7, Lng: 85.3}}
	loc := NewCachedLocator(inner)

	first, err := loc.Current(context.Background())
	require.NoError(t, err)
	second, err := loc.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second fix must come from the staleness window")
}

func TestCachedLocatorRefreshesStaleFix(t *testing.T) {
	inner := &countingLocator{point: types.GeoPoint{Lat: 27.7, Lng: 85.3}}
	loc := NewCachedLocator(inner)

	current := time.Now()
	loc.now = func() time.Time { return current }

	_, err := loc.Current(context.Background())
	require.NoError(t, err)

	current = current.Add(DefaultMaxAge + time.Second)
	_, err = loc.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLocatorPropagatesError(t *testing.T) {
	inner := &countingLocator{err: errors.New("no fix")}
	loc := NewCachedLocator(inner)

	_, err := loc.Current(context.Background())
	assert.Error(t, err)
}

func TestCachedLocatorDoesNotCacheFailures(t *testing.T) {
	inner := &countingLocator{err: errors.New("no fix")}
	loc := NewCachedLocator(inner)

	_, _ = loc.Current(context.Background())

	inner.err = nil
	inner.point = types.GeoPoint{Lat: 1, Lng: 2}
	fix, err := loc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.GeoPoint{Lat: 1, Lng: 2}, fix)
	assert.Equal(t, 2, inner.calls)
}

func TestStaticLocator(t *testing.T) {
	loc := StaticLocator{Point: types.GeoPoint{Name: "Kathmandu"}}
	fix, err := loc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kathmandu", fix.Name)
}
