package conditions

import (
	"fmt"
	"strings"

	"github.com/trekmate/trekmate-core/internal/types"
)

// Prompt builders for direct generation mode. Each asks for JSON matching the
// corresponding response struct; the answer goes through cleanJSONResponse
// before parsing.

const jsonOnly = "Respond with JSON only, no prose and no markdown fences."

func weatherPrompt(location types.GeoPoint) string {
	return fmt.Sprintf(`Provide a 14-day weather outlook for the trekking area %q (lat %g, lng %g).
%s Structure:
{"forecast":[{"day":"Today","condition":"Sunny","temp":20,"humidity":50}]}`,
		location.CacheID(), location.Lat, location.Lng, jsonOnly)
}

func routeConditionsPrompt(trek types.Trek) string {
	return fmt.Sprintf(`Report current trail conditions for the %s in %s.
%s Structure:
{"conditions":{"trail_status":"Open","difficulty":"Moderate","crowd_level":"Medium","last_updated":"2026-01-01T00:00:00Z"}}`,
		trek.Name, trek.Region, jsonOnly)
}

func safetyAlertsPrompt(location types.GeoPoint) string {
	return fmt.Sprintf(`List current safety alerts, closures, and warnings for the trekking area %q.
%s Structure:
{"alerts":[],"closures":[],"warnings":[{"type":"Weather","message":"...","severity":"Medium"}]}`,
		location.CacheID(), jsonOnly)
}

func atmospherePrompt(altitudeMeters int, location types.GeoPoint) string {
	return fmt.Sprintf(`Estimate current atmospheric conditions at %dm altitude near lat %g, lng %g.
%s Structure:
{"temperature":15,"pressure":1013,"wind_speed":10,"wind_direction":"N","visibility":50}`,
		altitudeMeters, location.Lat, location.Lng, jsonOnly)
}

func culturalPrompt(location types.GeoPoint) string {
	return fmt.Sprintf(`Summarize the cultural and historical background of the trekking area %q.
%s Structure:
{"history":"...","culture":"...","local_tips":["..."]}`,
		location.CacheID(), jsonOnly)
}

func routeAnalysisPrompt(route types.RouteData) string {
	var waypoints []string
	for _, w := range route.Waypoints {
		waypoints = append(waypoints, fmt.Sprintf("(%g,%g)", w.Lat, w.Lng))
	}
	return fmt.Sprintf(`Analyze a %gkm trekking route through waypoints [%s] and suggest optimizations.
%s Structure:
{"suggestions":["..."],"estimated_duration":6,"difficulty":"Moderate"}`,
		route.DistanceKm, strings.Join(waypoints, " "), jsonOnly)
}

func recommendationsPrompt(location types.GeoPoint, category string) string {
	return fmt.Sprintf(`Recommend %s near %q (lat %g, lng %g) for a trekker.
%s Structure:
{"recommendations":[{"name":"...","category":%q,"description":"..."}]}`,
		category, location.CacheID(), location.Lat, location.Lng, jsonOnly, category)
}

func emergencyPrompt(location types.GeoPoint, radiusKm float64) string {
	return fmt.Sprintf(`List emergency services within %gkm of %q (lat %g, lng %g).
%s Structure:
{"services":[{"name":"...","kind":"hospital","phone":"...","distance_km":12}],"nearest_hospital":{"name":"...","kind":"hospital"}}`,
		radiusKm, location.CacheID(), location.Lat, location.Lng, jsonOnly)
}

// cleanJSONResponse strips markdown fences and surrounding prose from a
// generated answer, leaving the outermost JSON object.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}

	braceCount := 0
	lastValidBrace := -1
	for i := firstBrace; i < len(response); i++ {
		switch response[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				lastValidBrace = i
			}
		}
		if lastValidBrace != -1 {
			break
		}
	}

	if lastValidBrace == -1 {
		lastBrace := strings.LastIndex(response, "}")
		if lastBrace == -1 || lastBrace <= firstBrace {
			return response
		}
		lastValidBrace = lastBrace
	}

	return response[firstBrace : lastValidBrace+1]
}
