package types

import "encoding/json"

// Difficulty grades a trek.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyExpert Difficulty = "Expert"
)

// Trek is one entry of the immutable catalog loaded at process start.
// The core only ever reads treks, it never mutates or reloads them.
type Trek struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Region           string     `json:"region"`
	Difficulty       Difficulty `json:"difficulty"`
	DurationInDays   int        `json:"duration_in_days"`
	CostInUSD        int        `json:"cost_in_usd"`
	AltitudeInMeters int        `json:"altitude_in_meters"`
	BestSeason       string     `json:"best_season,omitempty"`
	Description      string     `json:"description,omitempty"`
	Rating           float64    `json:"rating"`
	Reviews          int        `json:"reviews"`
	Coordinates      *GeoPoint  `json:"coordinates,omitempty"`
}

// ScoredTrek is a Trek annotated with its distance from the request location.
// Produced fresh on every recommendation request and never persisted.
type ScoredTrek struct {
	Trek
	DistanceKm float64 `json:"distance_km"`
}

// Preferences narrows a recommendation request.
type Preferences struct {
	MaxDistance float64    `json:"max_distance,omitempty"` // km
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	MaxDuration int        `json:"max_duration,omitempty"` // days
	Category    string     `json:"category,omitempty"`
}

// RecommendationResult joins AI-side recommendations with locally ranked treks.
// Produced once per request and consumed once by the caller; its sub-fetches
// are cached individually, never the envelope itself.
type RecommendationResult struct {
	AIRecommendations []json.RawMessage `json:"ai_recommendations"`
	LocalTreks        []ScoredTrek      `json:"local_treks"`
	UserLocation      GeoPoint          `json:"user_location"`
	IsMockData        bool              `json:"is_mock_data"`
	Error             string            `json:"error,omitempty"`
}
