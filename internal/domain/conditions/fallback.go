package conditions

import (
	"encoding/json"
	"time"

	"github.com/trekmate/trekmate-core/internal/types"
)

// Fail-open payloads. Each mirrors the shape of the live response and is
// flagged IsMockData so the UI can disclose degraded data.

func fallbackWeather() types.WeatherForecast {
	return types.WeatherForecast{
		Forecast: []types.ForecastDay{
			{Day: "Today", Condition: "Sunny", TempC: 20, Humidity: 50},
			{Day: "Tomorrow", Condition: "Cloudy", TempC: 18, Humidity: 60},
		},
		IsMockData: true,
	}
}

func fallbackRouteConditions() types.RouteConditions {
	return types.RouteConditions{
		Conditions: types.RouteStatus{
			TrailStatus: "Open",
			Difficulty:  "Moderate",
			CrowdLevel:  "Medium",
			LastUpdated: time.Now(),
		},
		IsMockData: true,
	}
}

func fallbackSafetyAlerts() types.SafetyAlerts {
	return types.SafetyAlerts{
		Alerts:   []types.SafetyWarning{},
		Closures: []string{},
		Warnings: []types.SafetyWarning{
			{Type: "Weather", Message: "Possible afternoon thunderstorms", Severity: "Medium"},
		},
		IsMockData: true,
	}
}

func fallbackAtmosphere() types.AtmosphericConditions {
	return types.AtmosphericConditions{
		Temperature:   15,
		Pressure:      1013,
		WindSpeed:     10,
		WindDirection: "N",
		Visibility:    50,
		IsMockData:    true,
	}
}

func fallbackRouteAnalysis(route types.RouteData) types.RouteAnalysis {
	return types.RouteAnalysis{
		Suggestions: []string{
			"Consider starting early to avoid afternoon traffic",
			"Water sources available at camps",
		},
		EstimatedDuration: route.DistanceKm / 4,
		Difficulty:        "Moderate",
		IsMockData:        true,
	}
}

func fallbackRecommendations() types.LocationRecommendations {
	return types.LocationRecommendations{
		Recommendations: []json.RawMessage{},
		IsMockData:      true,
	}
}

func fallbackEmergencyServices() types.EmergencyServices {
	return types.EmergencyServices{
		Services:        []types.EmergencyService{},
		NearestHospital: nil,
		IsMockData:      true,
	}
}

func fallbackCulturalInfo() types.CulturalInfo {
	return types.CulturalInfo{
		History:    "",
		Culture:    "",
		LocalTips:  []string{},
		IsMockData: true,
	}
}
