package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoPointCacheID(t *testing.T) {
	tests := []struct {
		name  string
		point GeoPoint
		want  string
	}{
		{"name wins", GeoPoint{Lat: 27.7172, Lng: 85.3240, Name: "Kathmandu"}, "Kathmandu"},
		{"coordinates formatted", GeoPoint{Lat: 27.7172, Lng: 85.3240}, "27.7172_85.3240"},
		{"rounded to four decimals", GeoPoint{Lat: 27.71726, Lng: 85.32401}, "27.7173_85.3240"},
		{"unset", GeoPoint{}, "unset"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.point.CacheID())
		})
	}
}

func TestGeoPointFlags(t *testing.T) {
	assert.True(t, GeoPoint{}.IsZero())
	assert.False(t, GeoPoint{Name: "Cusco"}.IsZero())
	assert.False(t, GeoPoint{Lat: 1}.IsZero())

	assert.False(t, GeoPoint{Name: "Cusco"}.HasCoordinates())
	assert.True(t, GeoPoint{Lat: 0, Lng: 85.3}.HasCoordinates())
	assert.False(t, GeoPoint{Lat: 0, Lng: 0}.HasCoordinates())
}
