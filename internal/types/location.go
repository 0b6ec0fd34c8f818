package types

import "fmt"

// GeoPoint is either a precise coordinate, a free-text place name, or both.
// A fully empty GeoPoint means "location unset", not an error.
type GeoPoint struct {
	Lat  float64 `json:"lat,omitempty"`
	Lng  float64 `json:"lng,omitempty"`
	Name string  `json:"name,omitempty"`
}

// HasCoordinates reports whether the point carries a usable coordinate pair.
// A point sitting exactly on the null island origin is treated as unset,
// matching how the rest of the pipeline distinguishes "no fix" from a fix.
func (p GeoPoint) HasCoordinates() bool {
	return p.Lat != 0 || p.Lng != 0
}

// IsZero reports whether the location is entirely unset.
func (p GeoPoint) IsZero() bool {
	return !p.HasCoordinates() && p.Name == ""
}

// CacheID returns the stable identity used in cache keys: the coordinate pair
// when present, otherwise the place name.
func (p GeoPoint) CacheID() string {
	if p.Name != "" {
		return p.Name
	}
	if p.HasCoordinates() {
		return coordKey(p.Lat, p.Lng)
	}
	return "unset"
}

func coordKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f_%.4f", lat, lng)
}

