// Package conditions wraps the real-time data provider: weather, route
// conditions, safety alerts, atmospheric data, cultural info, and emergency
// services. Every method is fail-open: on any failure it returns a synthetic
// payload flagged IsMockData so the caller always has something renderable.
package conditions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/trekmate/trekmate-core/internal/cache"
	"github.com/trekmate/trekmate-core/internal/client"
	"github.com/trekmate/trekmate-core/internal/llm"
	"github.com/trekmate/trekmate-core/internal/types"
)

const (
	cacheKeyPrefix = "gemini_"

	// weatherTTL covers weather, route conditions, and safety alerts.
	weatherTTL = 30 * time.Minute
	// atmosphereTTL is shorter: pressure and wind drift faster.
	atmosphereTTL = 10 * time.Minute

	generationTemperature = float32(0.2)
)

// Config selects the provider mode: a proxy URL wins, then a direct Gemini
// key; with neither configured every call serves its fail-open payload.
type Config struct {
	ProxyURL string
	APIKey   string
}

// Service is the real-time conditions accessor. Safe for concurrent use.
type Service struct {
	mode      types.SessionMode
	proxyURL  string
	remote    *client.Client
	generator llm.ConditionsGenerator
	cache     *cache.Cache
	logger    *slog.Logger

	// liveInterval is the poll period of live-update subscriptions.
	liveInterval time.Duration
}

func NewService(cfg Config, remote *client.Client, generator llm.ConditionsGenerator, c *cache.Cache, logger *slog.Logger) *Service {
	mode := types.ModeDemo
	switch {
	case cfg.ProxyURL != "":
		mode = types.ModeProxy
	case cfg.APIKey != "" && generator != nil:
		mode = types.ModeDirect
	}
	logger.Info("conditions service initialized", slog.String("mode", string(mode)))
	return &Service{
		mode:         mode,
		proxyURL:     cfg.ProxyURL,
		remote:       remote,
		generator:    generator,
		cache:        c,
		logger:       logger,
		liveInterval: 30 * time.Second,
	}
}

// Mode reports the provider mode decided at construction.
func (s *Service) Mode() types.SessionMode { return s.mode }

// GetWeatherForecast returns the forecast for a location, cached for 30
// minutes per location identity.
func (s *Service) GetWeatherForecast(ctx context.Context, location types.GeoPoint) types.WeatherForecast {
	key := cacheKeyPrefix + "weather_" + location.CacheID()
	var out types.WeatherForecast
	s.fetch(ctx, "GetWeatherForecast", key, weatherTTL, &out,
		"/weather",
		struct {
			Location  types.GeoPoint `json:"location"`
			Timeframe string         `json:"timeframe"`
		}{location, "next_14_days"},
		weatherPrompt(location),
		func() { out = fallbackWeather() },
	)
	return out
}

// GetRouteConditions returns the current trail state for a trek, cached for
// 30 minutes per trek id.
func (s *Service) GetRouteConditions(ctx context.Context, trek types.Trek) types.RouteConditions {
	key := fmt.Sprintf("%sroute_%d", cacheKeyPrefix, trek.ID)
	var out types.RouteConditions
	s.fetch(ctx, "GetRouteConditions", key, weatherTTL, &out,
		"/route-conditions",
		struct {
			Trek types.Trek `json:"trek"`
		}{trek},
		routeConditionsPrompt(trek),
		func() { out = fallbackRouteConditions() },
	)
	return out
}

// GetSafetyAlerts returns alerts, closures, and warnings for a trek area,
// cached for 30 minutes per location identity.
func (s *Service) GetSafetyAlerts(ctx context.Context, location types.GeoPoint) types.SafetyAlerts {
	key := cacheKeyPrefix + "alerts_" + location.CacheID()
	var out types.SafetyAlerts
	s.fetch(ctx, "GetSafetyAlerts", key, weatherTTL, &out,
		"/safety-alerts",
		struct {
			Location types.GeoPoint `json:"location"`
		}{location},
		safetyAlertsPrompt(location),
		func() { out = fallbackSafetyAlerts() },
	)
	return out
}

// GetAtmosphericConditions returns temperature, pressure, and wind for an
// altitude and coordinate pair, cached for 10 minutes.
func (s *Service) GetAtmosphericConditions(ctx context.Context, altitudeMeters int, location types.GeoPoint) types.AtmosphericConditions {
	key := fmt.Sprintf("%satmosphere_%d_%g_%g", cacheKeyPrefix, altitudeMeters, location.Lat, location.Lng)
	var out types.AtmosphericConditions
	s.fetch(ctx, "GetAtmosphericConditions", key, atmosphereTTL, &out,
		"/atmospheric-conditions",
		struct {
			Altitude int            `json:"altitude"`
			Location types.GeoPoint `json:"location"`
		}{altitudeMeters, location},
		atmospherePrompt(altitudeMeters, location),
		func() { out = fallbackAtmosphere() },
	)
	return out
}

// GetCulturalInfo returns cultural and historical notes for a trek area,
// cached with the default TTL.
func (s *Service) GetCulturalInfo(ctx context.Context, location types.GeoPoint) types.CulturalInfo {
	key := cacheKeyPrefix + "culture_" + location.CacheID()
	var out types.CulturalInfo
	s.fetch(ctx, "GetCulturalInfo", key, cache.DefaultTTL, &out,
		"/cultural-info",
		struct {
			Location types.GeoPoint `json:"location"`
		}{location},
		culturalPrompt(location),
		func() { out = fallbackCulturalInfo() },
	)
	return out
}

// AnalyzeRoute suggests optimizations for a route. Not cached: route inputs
// are too variable to key reliably.
func (s *Service) AnalyzeRoute(ctx context.Context, route types.RouteData) types.RouteAnalysis {
	var out types.RouteAnalysis
	s.fetchUncached(ctx, "AnalyzeRoute", &out,
		"/route-analysis",
		struct {
			Route types.RouteData `json:"route"`
		}{route},
		routeAnalysisPrompt(route),
		func() { out = fallbackRouteAnalysis(route) },
	)
	return out
}

// GetLocationBasedRecommendations returns provider-shaped recommendations
// near a location for a category ("treks", "camps", "all", ...). Not cached:
// inherently one-shot.
func (s *Service) GetLocationBasedRecommendations(ctx context.Context, location types.GeoPoint, category string) types.LocationRecommendations {
	out, _ := s.LocationRecommendations(ctx, location, category)
	return out
}

// LocationRecommendations is GetLocationBasedRecommendations with the
// underlying fetch error exposed, for callers that annotate degraded
// envelopes. The payload is always usable regardless of the error.
func (s *Service) LocationRecommendations(ctx context.Context, location types.GeoPoint, category string) (types.LocationRecommendations, error) {
	if category == "" {
		category = "all"
	}
	var out types.LocationRecommendations
	err := s.fetchUncached(ctx, "GetLocationBasedRecommendations", &out,
		"/location-recommendations",
		struct {
			UserLocation types.GeoPoint `json:"userLocation"`
			Category     string         `json:"category"`
		}{location, category},
		recommendationsPrompt(location, category),
		func() { out = fallbackRecommendations() },
	)
	return out, err
}

// GetEmergencyServices returns emergency services within radiusKm of a
// location (default 50 km). Not cached.
func (s *Service) GetEmergencyServices(ctx context.Context, location types.GeoPoint, radiusKm float64) types.EmergencyServices {
	if radiusKm <= 0 {
		radiusKm = 50
	}
	var out types.EmergencyServices
	s.fetchUncached(ctx, "GetEmergencyServices", &out,
		"/emergency-services",
		struct {
			Location types.GeoPoint `json:"location"`
			Radius   float64        `json:"radius"`
		}{location, radiusKm},
		emergencyPrompt(location, radiusKm),
		func() { out = fallbackEmergencyServices() },
	)
	return out
}

// fetch is the shared cached path: cache, then provider, then fail-open
// fallback. out must be a pointer; fallback must fill it.
func (s *Service) fetch(ctx context.Context, op, key string, ttl time.Duration, out any, path string, body any, prompt string, fallback func()) {
	ctx, span := otel.Tracer("ConditionsService").Start(ctx, op, trace.WithAttributes(
		attribute.String("cache.key", key),
		attribute.String("provider.mode", string(s.mode)),
	))
	defer span.End()

	if s.cache.Get(key, out) {
		span.AddEvent("Cache hit")
		span.SetStatus(codes.Ok, "served from cache")
		return
	}

	if err := s.obtain(ctx, out, path, body, prompt); err != nil {
		s.logger.WarnContext(ctx, "conditions fetch failed, serving fallback", slog.String("op", op), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Ok, "served fallback")
		fallback()
		return
	}

	s.cache.Set(key, out, ttl)
	span.AddEvent("Stored in cache")
	span.SetStatus(codes.Ok, "fetched and cached")
}

// fetchUncached is fetch without the cache on either side. It reports the
// degradation cause while still filling out via fallback, so callers can
// stay fail-open and annotate.
func (s *Service) fetchUncached(ctx context.Context, op string, out any, path string, body any, prompt string, fallback func()) error {
	ctx, span := otel.Tracer("ConditionsService").Start(ctx, op, trace.WithAttributes(
		attribute.String("provider.mode", string(s.mode)),
	))
	defer span.End()

	if err := s.obtain(ctx, out, path, body, prompt); err != nil {
		s.logger.WarnContext(ctx, "conditions fetch failed, serving fallback", slog.String("op", op), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Ok, "served fallback")
		fallback()
		return err
	}
	span.SetStatus(codes.Ok, "fetched")
	return nil
}

// obtain routes one request to the configured provider.
func (s *Service) obtain(ctx context.Context, out any, path string, body any, prompt string) error {
	switch s.mode {
	case types.ModeProxy:
		return s.remote.Post(ctx, s.proxyURL+path, body, out)
	case types.ModeDirect:
		return s.generate(ctx, prompt, out)
	default:
		return types.ErrUnavailable
	}
}

// generate asks the generative provider for a JSON payload and parses it.
func (s *Service) generate(ctx context.Context, prompt string, out any) error {
	resp, err := s.generator.GenerateResponse(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](generationTemperature),
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	txt := llm.ResponseText(resp)
	if txt == "" {
		return fmt.Errorf("empty generation response")
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(txt)), out); err != nil {
		return fmt.Errorf("unparseable generation response: %w", err)
	}
	return nil
}
