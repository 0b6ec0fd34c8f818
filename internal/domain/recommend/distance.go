package recommend

import (
	"math"
	"strings"

	a "github.com/petar-dambovaliev/aho-corasick"

	"github.com/trekmate/trekmate-core/internal/types"
)

const earthRadiusKm = 6371.0

// haversine returns the great-circle distance between two coordinate pairs.
func haversine(from, to types.GeoPoint) float64 {
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(toRadians(from.Lat))*math.Cos(toRadians(to.Lat))*sinLng*sinLng

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// RegionMatcher decides whether a free-text place name and a catalog region
// plausibly refer to the same area, by case-insensitive substring containment
// in either direction. This is a stand-in for real geocoding, not a product
// behavior; see the distance fallback in Engine.Distance.
type RegionMatcher struct {
	matchers map[string]a.AhoCorasick
}

// NewRegionMatcher builds one matcher per known region name.
func NewRegionMatcher(regions []string) *RegionMatcher {
	matchers := make(map[string]a.AhoCorasick, len(regions))
	for _, region := range regions {
		if region == "" {
			continue
		}
		builder := a.NewAhoCorasickBuilder(a.Opts{
			AsciiCaseInsensitive: true,
			MatchOnlyWholeWords:  false,
		})
		matchers[region] = builder.Build([]string{region})
	}
	return &RegionMatcher{matchers: matchers}
}

// Related reports whether the place name mentions the region or the region
// mentions the place name.
func (m *RegionMatcher) Related(locationName, region string) bool {
	if locationName == "" || region == "" {
		return false
	}
	if matcher, ok := m.matchers[region]; ok {
		iter := matcher.Iter(locationName)
		if iter.Next() != nil {
			return true
		}
	} else if strings.Contains(strings.ToLower(locationName), strings.ToLower(region)) {
		return true
	}
	return strings.Contains(strings.ToLower(region), strings.ToLower(locationName))
}
