package recommend

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/trekmate/trekmate-core/internal/catalog"
	"github.com/trekmate/trekmate-core/internal/domain/conditions"
	"github.com/trekmate/trekmate-core/internal/types"
)

const (
	// coldStartLimit is how many treks we surface when the user's location
	// is unknown.
	coldStartLimit = 6
	// resultLimit caps every ranked result set.
	resultLimit = 10

	// Distance bands for treks whose coordinates are unknown. A trek whose
	// region matches the user's location name lands in the near band, the
	// rest land far enough to sort behind anything with real coordinates.
	nearBandKm    = 50
	farBandMinKm  = 100
	farBandSpanKm = 500
)

// Engine ranks the trek catalog around a user location and merges that local
// ranking with AI-generated suggestions from the conditions service.
type Engine struct {
	catalog    *catalog.Catalog
	conditions *conditions.Service
	logger     *slog.Logger
	matcher    *RegionMatcher
	rng        func() float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand overrides the randomness source used for the no-coordinates
// distance bands. Tests pin it to a constant.
func WithRand(rng func() float64) Option {
	return func(e *Engine) { e.rng = rng }
}

func NewEngine(cat *catalog.Catalog, cond *conditions.Service, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog:    cat,
		conditions: cond,
		logger:     logger,
		matcher:    NewRegionMatcher(cat.Regions()),
		rng:        rand.Float64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Distance estimates how far a trek is from the user, in kilometers. When
// both sides carry coordinates this is the haversine distance; otherwise the
// trek is placed in a randomized band, near if its region matches the
// location name and far if not. The bands keep un-geocoded treks sortable
// without pretending to precision we don't have.
func (e *Engine) Distance(location types.GeoPoint, trek types.Trek) float64 {
	if location.HasCoordinates() && trek.Coordinates != nil && trek.Coordinates.HasCoordinates() {
		return haversine(location, *trek.Coordinates)
	}
	if e.matcher.Related(location.Name, trek.Region) {
		return e.rng() * nearBandKm
	}
	return farBandMinKm + e.rng()*farBandSpanKm
}

// FilterTreksByLocation ranks the catalog by distance from location and
// applies the user's preference filters. A zero location yields the catalog
// head as a cold-start list. The result never exceeds resultLimit entries.
func (e *Engine) FilterTreksByLocation(ctx context.Context, location types.GeoPoint, prefs types.Preferences) []types.ScoredTrek {
	ctx, span := otel.Tracer("RecommendationEngine").Start(ctx, "FilterTreksByLocation", trace.WithAttributes(
		attribute.String("location.id", location.CacheID()),
		attribute.String("prefs.difficulty", string(prefs.Difficulty)),
	))
	defer span.End()

	treks := e.catalog.Treks()

	if location.IsZero() {
		span.AddEvent("Cold start, no location")
		limit := coldStartLimit
		if limit > len(treks) {
			limit = len(treks)
		}
		scored := make([]types.ScoredTrek, 0, limit)
		for _, trek := range treks[:limit] {
			scored = append(scored, types.ScoredTrek{Trek: trek})
		}
		return scored
	}

	scored := make([]types.ScoredTrek, 0, len(treks))
	for _, trek := range treks {
		scored = append(scored, types.ScoredTrek{
			Trek:       trek,
			DistanceKm: e.Distance(location, trek),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].DistanceKm < scored[j].DistanceKm
	})

	scored = applyPreferences(scored, prefs)

	if len(scored) > resultLimit {
		scored = scored[:resultLimit]
	}
	span.SetAttributes(attribute.Int("results.count", len(scored)))
	e.logger.DebugContext(ctx, "Ranked treks by location",
		slog.String("location", location.CacheID()),
		slog.Int("results", len(scored)))
	return scored
}

// applyPreferences filters in a fixed order: distance cap, then difficulty,
// then duration cap.
func applyPreferences(scored []types.ScoredTrek, prefs types.Preferences) []types.ScoredTrek {
	out := scored
	if prefs.MaxDistance > 0 {
		out = keep(out, func(t types.ScoredTrek) bool { return t.DistanceKm <= prefs.MaxDistance })
	}
	if prefs.Difficulty != "" {
		out = keep(out, func(t types.ScoredTrek) bool { return t.Difficulty == prefs.Difficulty })
	}
	if prefs.MaxDuration > 0 {
		out = keep(out, func(t types.ScoredTrek) bool { return t.DurationInDays <= prefs.MaxDuration })
	}
	return out
}

func keep(in []types.ScoredTrek, pred func(types.ScoredTrek) bool) []types.ScoredTrek {
	out := in[:0:0]
	for _, t := range in {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

// GetLocationBasedTreks combines AI suggestions with the local ranking. The
// local ranking is always present; when the AI side degrades the envelope
// carries the failure text and whatever mock suggestions the fallback
// produced.
func (e *Engine) GetLocationBasedTreks(ctx context.Context, location types.GeoPoint, prefs types.Preferences) types.RecommendationResult {
	ctx, span := otel.Tracer("RecommendationEngine").Start(ctx, "GetLocationBasedTreks", trace.WithAttributes(
		attribute.String("location.id", location.CacheID()),
	))
	defer span.End()

	result := types.RecommendationResult{
		UserLocation: location,
		LocalTreks:   e.FilterTreksByLocation(ctx, location, prefs),
	}

	recs, err := e.conditions.LocationRecommendations(ctx, location, "treks")
	result.AIRecommendations = recs.Recommendations
	result.IsMockData = recs.IsMockData
	if err != nil {
		span.RecordError(err)
		e.logger.WarnContext(ctx, "AI recommendations degraded",
			slog.Any("error", err),
			slog.String("location", location.CacheID()))
		result.Error = err.Error()
	}

	span.SetStatus(codes.Ok, "Recommendations assembled")
	return result
}

// GetLocationWeatherAndSafety fetches the weather forecast and safety alerts
// for a location concurrently. Both legs fail open inside the conditions
// service, so this never returns an error.
func (e *Engine) GetLocationWeatherAndSafety(ctx context.Context, location types.GeoPoint) types.WeatherAndSafety {
	ctx, span := otel.Tracer("RecommendationEngine").Start(ctx, "GetLocationWeatherAndSafety", trace.WithAttributes(
		attribute.String("location.id", location.CacheID()),
	))
	defer span.End()

	out := types.WeatherAndSafety{Location: location}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Weather = e.conditions.GetWeatherForecast(gctx, location)
		return nil
	})
	g.Go(func() error {
		out.Safety = e.conditions.GetSafetyAlerts(gctx, location)
		return nil
	})
	_ = g.Wait()

	return out
}
