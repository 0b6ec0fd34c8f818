package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/trekmate/trekmate-core/internal/types"
)

// SortBy names a catalog sort order.
type SortBy string

const (
	SortByRating       SortBy = "rating"
	SortByPriceAsc     SortBy = "price-asc"
	SortByPriceDesc    SortBy = "price-desc"
	SortByDurationAsc  SortBy = "duration-asc"
	SortByDurationDesc SortBy = "duration-desc"
	SortByAltitudeAsc  SortBy = "altitude-asc"
	SortByAltitudeDesc SortBy = "altitude-desc"
	SortByName         SortBy = "name"
	SortByPopularity   SortBy = "popularity"
)

// Filters narrows a catalog search. Zero-valued fields are ignored, so the
// zero Filters matches every trek.
type Filters struct {
	// Query is matched case-insensitively against name, description,
	// region and difficulty.
	Query        string
	Region       string // exact region name
	Difficulties []types.Difficulty
	MinDuration  int // days
	MaxDuration  int
	MinCost      int // USD
	MaxCost      int
	MinAltitude  int // meters
	MaxAltitude  int
	MinRating    float64
	Season       string // month name, matched inside the best-season window
	SortBy       SortBy
}

// Search returns the treks matching every set filter, ordered by f.SortBy.
// An unset SortBy sorts by rating, best first. The result is always a fresh
// slice; the catalog itself is never reordered.
func (c *Catalog) Search(f Filters) []types.Trek {
	var out []types.Trek
	for _, t := range c.treks {
		if matches(t, f) {
			out = append(out, t)
		}
	}
	sortTreks(out, f.SortBy)
	return out
}

func matches(t types.Trek, f Filters) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.Region), q) &&
			!strings.Contains(strings.ToLower(string(t.Difficulty)), q) {
			return false
		}
	}
	if f.Region != "" && t.Region != f.Region {
		return false
	}
	if len(f.Difficulties) > 0 && !containsDifficulty(f.Difficulties, t.Difficulty) {
		return false
	}
	if f.MinDuration > 0 && t.DurationInDays < f.MinDuration {
		return false
	}
	if f.MaxDuration > 0 && t.DurationInDays > f.MaxDuration {
		return false
	}
	if f.MinCost > 0 && t.CostInUSD < f.MinCost {
		return false
	}
	if f.MaxCost > 0 && t.CostInUSD > f.MaxCost {
		return false
	}
	if f.MinAltitude > 0 && t.AltitudeInMeters < f.MinAltitude {
		return false
	}
	if f.MaxAltitude > 0 && t.AltitudeInMeters > f.MaxAltitude {
		return false
	}
	if f.MinRating > 0 && t.Rating < f.MinRating {
		return false
	}
	if f.Season != "" && !strings.Contains(t.BestSeason, f.Season) {
		return false
	}
	return true
}

func containsDifficulty(set []types.Difficulty, d types.Difficulty) bool {
	for _, s := range set {
		if s == d {
			return true
		}
	}
	return false
}

// sortTreks orders treks in place. Equal keys keep catalog order.
func sortTreks(treks []types.Trek, by SortBy) {
	less := func(i, j int) bool { return treks[i].Rating > treks[j].Rating }
	switch by {
	case SortByPriceAsc:
		less = func(i, j int) bool { return treks[i].CostInUSD < treks[j].CostInUSD }
	case SortByPriceDesc:
		less = func(i, j int) bool { return treks[i].CostInUSD > treks[j].CostInUSD }
	case SortByDurationAsc:
		less = func(i, j int) bool { return treks[i].DurationInDays < treks[j].DurationInDays }
	case SortByDurationDesc:
		less = func(i, j int) bool { return treks[i].DurationInDays > treks[j].DurationInDays }
	case SortByAltitudeAsc:
		less = func(i, j int) bool { return treks[i].AltitudeInMeters < treks[j].AltitudeInMeters }
	case SortByAltitudeDesc:
		less = func(i, j int) bool { return treks[i].AltitudeInMeters > treks[j].AltitudeInMeters }
	case SortByName:
		less = func(i, j int) bool { return treks[i].Name < treks[j].Name }
	case SortByPopularity:
		less = func(i, j int) bool { return treks[i].Reviews > treks[j].Reviews }
	}
	sort.SliceStable(treks, less)
}

// Trending returns the limit highest-ranked treks, weighing the rating by
// review volume so a lightly reviewed 4.9 does not outrank a proven 4.8.
// A non-positive limit asks for the default of five.
func (c *Catalog) Trending(limit int) []types.Trek {
	if limit <= 0 {
		limit = 5
	}
	out := c.Treks()
	sort.SliceStable(out, func(i, j int) bool {
		return trendScore(out[i]) > trendScore(out[j])
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func trendScore(t types.Trek) float64 {
	return t.Rating * math.Log(float64(t.Reviews)+1)
}
