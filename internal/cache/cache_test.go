package cache

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekmate/trekmate-core/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetGetRoundTrip(t *testing.T) {
	c := New(storage.NewMemoryStore(), testLogger())

	in := payload{Name: "everest", Count: 3}
	c.Set("trek", in, time.Minute)

	var out payload
	require.True(t, c.Get("trek", &out))
	assert.Equal(t, in, out)
}

func TestGetMissingKey(t *testing.T) {
	c := New(storage.NewMemoryStore(), testLogger())

	var out payload
	assert.False(t, c.Get("nope", &out))
}

func TestExpiredEntryIsEvicted(t *testing.T) {
	store := storage.NewMemoryStore()
	c := New(store, testLogger())

	c.Set("trek", payload{Name: "short"}, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	var out payload
	require.False(t, c.Get("trek", &out))

	// The durable copy must be tombstoned by the read, not only skipped.
	_, err := store.Get("cache_trek")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSurvivesColdMemoryLayer(t *testing.T) {
	store := storage.NewMemoryStore()
	warm := New(store, testLogger())
	warm.Set("trek", payload{Name: "annapurna"}, time.Minute)

	// A fresh cache over the same store simulates a restart.
	cold := New(store, testLogger())
	var out payload
	require.True(t, cold.Get("trek", &out))
	assert.Equal(t, "annapurna", out.Name)
}

func TestZeroTTLMeansDefault(t *testing.T) {
	store := storage.NewMemoryStore()
	c := New(store, testLogger())
	c.now = func() time.Time { return time.UnixMilli(1_000_000) }

	c.Set("trek", payload{Name: "default"}, 0)

	raw, err := store.Get("cache_trek")
	require.NoError(t, err)
	assert.Contains(t, raw, `"ttl_ms":300000`)
	assert.Contains(t, raw, `"timestamp":1000000`)
}

func TestOverwriteReplacesValue(t *testing.T) {
	c := New(storage.NewMemoryStore(), testLogger())

	c.Set("trek", payload{Name: "old"}, time.Minute)
	c.Set("trek", payload{Name: "new"}, time.Minute)

	var out payload
	require.True(t, c.Get("trek", &out))
	assert.Equal(t, "new", out.Name)
}

func TestInvalidate(t *testing.T) {
	store := storage.NewMemoryStore()
	c := New(store, testLogger())

	c.Set("trek", payload{Name: "gone"}, time.Minute)
	c.Invalidate("trek")

	var out payload
	assert.False(t, c.Get("trek", &out))
	_, err := store.Get("cache_trek")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUnreadableStoredEntryIsDiscarded(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("cache_trek", "{not json"))

	c := New(store, testLogger())
	var out payload
	require.False(t, c.Get("trek", &out))

	_, err := store.Get("cache_trek")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

type failingStore struct{}

func (failingStore) Get(string) (string, error) { return "", storage.ErrNotFound }

func (failingStore) Set(string, string) error { return assert.AnError }

func (failingStore) Delete(string) error { return assert.AnError }

func TestStoreFailuresAreSwallowed(t *testing.T) {
	c := New(failingStore{}, testLogger())

	// Write-through fails but the hot layer still serves the entry.
	c.Set("trek", payload{Name: "ram-only"}, time.Minute)

	var out payload
	require.True(t, c.Get("trek", &out))
	assert.Equal(t, "ram-only", out.Name)
}
