package recommend

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekmate/trekmate-core/internal/cache"
	"github.com/trekmate/trekmate-core/internal/catalog"
	"github.com/trekmate/trekmate-core/internal/client"
	"github.com/trekmate/trekmate-core/internal/domain/conditions"
	"github.com/trekmate/trekmate-core/internal/storage"
	"github.com/trekmate/trekmate-core/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, condCfg conditions.Config, opts ...Option) *Engine {
	t.Helper()
	store := storage.NewMemoryStore()
	remote := client.New(client.Config{BaseURL: "http://example.invalid"}, store, testLogger())
	cond := conditions.NewService(condCfg, remote, nil, cache.New(store, testLogger()), testLogger())
	return NewEngine(catalog.Load(), cond, testLogger(), opts...)
}

var kathmandu = types.GeoPoint{Lat: 27.7172, Lng: 85.3240, Name: "Kathmandu"}

func TestDistanceUsesHaversineWhenBothSidesHaveCoordinates(t *testing.T) {
	e := newTestEngine(t, conditions.Config{})
	trek := types.Trek{Region: "Himalayas", Coordinates: &types.GeoPoint{Lat: 27.8, Lng: 86.9}}

	assert.InDelta(t, 157.9, e.Distance(kathmandu, trek), 5)
}

func TestDistanceHeuristicBands(t *testing.T) {
	e := newTestEngine(t, conditions.Config{}, WithRand(func() float64 { return 0.5 }))

	// Region matches the location name: near band.
	near := e.Distance(types.GeoPoint{Name: "Pokhara, Himalayas"}, types.Trek{Region: "Himalayas"})
	assert.Equal(t, 25.0, near)

	// No relation: far band, always behind real coordinates.
	far := e.Distance(types.GeoPoint{Name: "Reykjavik"}, types.Trek{Region: "Himalayas"})
	assert.Equal(t, 350.0, far)
}

func TestDistanceHeuristicBounds(t *testing.T) {
	e := newTestEngine(t, conditions.Config{})

	for i := 0; i < 100; i++ {
		near := e.Distance(types.GeoPoint{Name: "Himalayas"}, types.Trek{Region: "Himalayas"})
		assert.GreaterOrEqual(t, near, 0.0)
		assert.Less(t, near, 50.0)

		far := e.Distance(types.GeoPoint{Name: "Reykjavik"}, types.Trek{Region: "Himalayas"})
		assert.GreaterOrEqual(t, far, 100.0)
		assert.Less(t, far, 600.0)
	}
}

func TestDistanceFallsBackWhenTrekHasNoCoordinates(t *testing.T) {
	e := newTestEngine(t, conditions.Config{}, WithRand(func() float64 { return 0 }))

	// The user has coordinates but the trek does not: heuristic applies.
	d := e.Distance(kathmandu, types.Trek{Region: "Himalayas"})
	assert.Equal(t, 0.0, d)
}

func TestFilterTreksColdStart(t *testing.T) {
	e := newTestEngine(t, conditions.Config{})

	got := e.FilterTreksByLocation(context.Background(), types.GeoPoint{}, types.Preferences{})
	require.Len(t, got, 6)

	// Catalog order, no distances annotated.
	assert.Equal(t, "Everest Base Camp Trek", got[0].Name)
	for _, trek := range got {
		assert.Zero(t, trek.DistanceKm)
	}
}

func TestFilterTreksSortedByDistance(t *testing.T) {
	e := newTestEngine(t, conditions.Config{}, WithRand(func() float64 { return 0.5 }))

	got := e.FilterTreksByLocation(context.Background(), kathmandu, types.Preferences{})
	require.NotEmpty(t, got)

	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
		return got[i].DistanceKm < got[j].DistanceKm
	}))
	assert.Equal(t, "Everest Base Camp Trek", got[0].Name)
	assert.Equal(t, "Annapurna Circuit Trek", got[1].Name)
}

func TestFilterTreksMaxDistance(t *testing.T) {
	e := newTestEngine(t, conditions.Config{})

	got := e.FilterTreksByLocation(context.Background(), kathmandu, types.Preferences{MaxDistance: 500})
	require.Len(t, got, 2)
	assert.Equal(t, "Everest Base Camp Trek", got[0].Name)
	assert.Equal(t, "Annapurna Circuit Trek", got[1].Name)
}

func TestFilterTreksDifficultyAndDuration(t *testing.T) {
	e := newTestEngine(t, conditions.Config{}, WithRand(func() float64 { return 0.5 }))

	got := e.FilterTreksByLocation(context.Background(), kathmandu, types.Preferences{
		Difficulty:  types.DifficultyMedium,
		MaxDuration: 4,
	})
	require.NotEmpty(t, got)
	for _, trek := range got {
		assert.Equal(t, types.DifficultyMedium, trek.Difficulty)
		assert.LessOrEqual(t, trek.DurationInDays, 4)
	}
}

func TestFilterTreksImpossibleCombinationIsEmpty(t *testing.T) {
	e := newTestEngine(t, conditions.Config{})

	got := e.FilterTreksByLocation(context.Background(), kathmandu, types.Preferences{
		MaxDistance: 500,
		Difficulty:  types.DifficultyEasy,
	})
	assert.Empty(t, got)
}

func TestFilterTreksCapsResults(t *testing.T) {
	var treks []types.Trek
	for i := 1; i <= 25; i++ {
		treks = append(treks, types.Trek{ID: i, Name: "Trek", Region: "Himalayas"})
	}
	store := storage.NewMemoryStore()
	remote := client.New(client.Config{BaseURL: "http://example.invalid"}, store, testLogger())
	cond := conditions.NewService(conditions.Config{}, remote, nil, cache.New(store, testLogger()), testLogger())
	e := NewEngine(catalog.FromTreks(treks), cond, testLogger(), WithRand(func() float64 { return 0.5 }))

	got := e.FilterTreksByLocation(context.Background(), types.GeoPoint{Name: "Himalayas"}, types.Preferences{})
	assert.Len(t, got, 10)
}

func TestGetLocationBasedTreksDegradedAIStillRanksLocally(t *testing.T) {
	// Demo-mode conditions service: the AI leg reports unavailable.
	e := newTestEngine(t, conditions.Config{})

	result := e.GetLocationBasedTreks(context.Background(), kathmandu, types.Preferences{MaxDistance: 500})

	assert.True(t, result.IsMockData)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.AIRecommendations)
	require.Len(t, result.LocalTreks, 2)
	assert.Equal(t, "Everest Base Camp Trek", result.LocalTreks[0].Name)
	assert.Equal(t, kathmandu, result.UserLocation)
}

func TestGetLocationBasedTreksMergesAISuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/location-recommendations", r.URL.Path)
		w.Write([]byte(`{"recommendations":[{"name":"Langtang Valley"}],"is_mock_data":false}`))
	}))
	defer srv.Close()

	e := newTestEngine(t, conditions.Config{ProxyURL: srv.URL})
	result := e.GetLocationBasedTreks(context.Background(), kathmandu, types.Preferences{})

	assert.False(t, result.IsMockData)
	assert.Empty(t, result.Error)
	require.Len(t, result.AIRecommendations, 1)
	assert.Contains(t, string(result.AIRecommendations[0]), "Langtang Valley")
	assert.NotEmpty(t, result.LocalTreks)
}

func TestGetLocationWeatherAndSafety(t *testing.T) {
	e := newTestEngine(t, conditions.Config{})

	out := e.GetLocationWeatherAndSafety(context.Background(), kathmandu)
	assert.Equal(t, kathmandu, out.Location)
	assert.True(t, out.Weather.IsMockData)
	assert.True(t, out.Safety.IsMockData)
	assert.NotEmpty(t, out.Weather.Forecast)
	assert.NotEmpty(t, out.Safety.Warnings)
}
