package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trekmate/trekmate-core/internal/types"
)

func TestHaversineKnownDistances(t *testing.T) {
	tests := []struct {
		name     string
		from, to types.GeoPoint
		wantKm   float64
		delta    float64
	}{
		{
			name:   "Kathmandu to Everest region",
			from:   types.GeoPoint{Lat: 27.7172, Lng: 85.3240},
			to:     types.GeoPoint{Lat: 27.8, Lng: 86.9},
			wantKm: 157.9,
			delta:  5,
		},
		{
			name:   "London to Paris",
			from:   types.GeoPoint{Lat: 51.5074, Lng: -0.1278},
			to:     types.GeoPoint{Lat: 48.8566, Lng: 2.3522},
			wantKm: 344,
			delta:  5,
		},
		{
			name:   "same point",
			from:   types.GeoPoint{Lat: 27.7172, Lng: 85.3240},
			to:     types.GeoPoint{Lat: 27.7172, Lng: 85.3240},
			wantKm: 0,
			delta:  0.001,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.wantKm, haversine(tc.from, tc.to), tc.delta)
		})
	}
}

func TestHaversineIsSymmetric(t *testing.T) {
	a := types.GeoPoint{Lat: 27.7172, Lng: 85.3240}
	b := types.GeoPoint{Lat: -44.916, Lng: 167.7755}
	assert.InDelta(t, haversine(a, b), haversine(b, a), 0.001)
}

func TestRegionMatcherRelated(t *testing.T) {
	m := NewRegionMatcher([]string{"Himalayas", "South America", "Europe"})

	tests := []struct {
		name     string
		location string
		region   string
		want     bool
	}{
		{"region inside name", "Pokhara, Himalayas, Nepal", "Himalayas", true},
		{"case insensitive", "trekking the HIMALAYAS", "Himalayas", true},
		{"name inside region", "Himal", "Himalayas", true},
		{"unrelated", "Patagonia", "Himalayas", false},
		{"multi word region", "somewhere in South America", "South America", true},
		{"unknown region still matches by containment", "visiting Oceania soon", "Oceania", true},
		{"empty name", "", "Himalayas", false},
		{"empty region", "Kathmandu", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Related(tc.location, tc.region))
		})
	}
}
