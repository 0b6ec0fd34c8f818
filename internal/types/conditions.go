package types

import (
	"encoding/json"
	"time"
)

// ForecastDay is one day of a weather forecast.
type ForecastDay struct {
	Day       string  `json:"day"`
	Condition string  `json:"condition"`
	TempC     float64 `json:"temp"`
	Humidity  int     `json:"humidity"`
}

// WeatherForecast is the weather payload for a location. IsMockData marks a
// synthetic fail-open payload so the caller can disclose degraded data.
type WeatherForecast struct {
	Forecast   []ForecastDay `json:"forecast"`
	IsMockData bool          `json:"is_mock_data"`
}

// RouteStatus describes the current state of a trail.
type RouteStatus struct {
	TrailStatus string    `json:"trail_status"`
	Difficulty  string    `json:"difficulty"`
	CrowdLevel  string    `json:"crowd_level"`
	LastUpdated time.Time `json:"last_updated"`
}

type RouteConditions struct {
	Conditions RouteStatus `json:"conditions"`
	IsMockData bool        `json:"is_mock_data"`
}

// SafetyWarning is an advisory that does not close a route.
type SafetyWarning struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type SafetyAlerts struct {
	Alerts     []SafetyWarning `json:"alerts"`
	Closures   []string        `json:"closures"`
	Warnings   []SafetyWarning `json:"warnings"`
	IsMockData bool            `json:"is_mock_data"`
}

type AtmosphericConditions struct {
	Temperature   float64 `json:"temperature"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection string  `json:"wind_direction"`
	Visibility    float64 `json:"visibility"`
	IsMockData    bool    `json:"is_mock_data"`
}

// RouteData describes a route submitted for analysis.
type RouteData struct {
	TrekID     int        `json:"trek_id,omitempty"`
	DistanceKm float64    `json:"distance"`
	Waypoints  []GeoPoint `json:"waypoints,omitempty"`
}

type RouteAnalysis struct {
	Suggestions       []string `json:"suggestions"`
	EstimatedDuration float64  `json:"estimated_duration"` // hours
	Difficulty        string   `json:"difficulty"`
	IsMockData        bool     `json:"is_mock_data"`
}

// LocationRecommendations carries provider-shaped recommendation entries. The
// entries stay opaque to the core; only the UI interprets them.
type LocationRecommendations struct {
	Recommendations []json.RawMessage `json:"recommendations"`
	IsMockData      bool              `json:"is_mock_data"`
}

type EmergencyService struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Phone      string  `json:"phone,omitempty"`
	DistanceKm float64 `json:"distance_km,omitempty"`
}

type EmergencyServices struct {
	Services        []EmergencyService `json:"services"`
	NearestHospital *EmergencyService  `json:"nearest_hospital"`
	IsMockData      bool               `json:"is_mock_data"`
}

type CulturalInfo struct {
	History    string   `json:"history"`
	Culture    string   `json:"culture"`
	LocalTips  []string `json:"local_tips"`
	IsMockData bool     `json:"is_mock_data"`
}

// Telemetry is one synthesized live sample for an active trek.
type Telemetry struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// LiveUpdate is delivered to live-update subscribers on every poll tick.
type LiveUpdate struct {
	Timestamp time.Time `json:"timestamp"`
	TrekID    int       `json:"trek_id"`
	Data      Telemetry `json:"data"`
}

// WeatherAndSafety joins the concurrently fetched weather and safety payloads
// for one location. A sub-failure degrades that one field, never the envelope.
type WeatherAndSafety struct {
	Weather  WeatherForecast `json:"weather"`
	Safety   SafetyAlerts    `json:"safety"`
	Location GeoPoint        `json:"location"`
}
