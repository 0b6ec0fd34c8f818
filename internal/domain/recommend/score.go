package recommend

import (
	"math"

	"github.com/trekmate/trekmate-core/internal/types"
)

// ScoreProfile carries the traveller constraints the preference score weighs.
// Zero-valued fields leave their component out of the score.
type ScoreProfile struct {
	Difficulty  types.Difficulty
	MaxDays     int
	MaxBudget   int // USD
	MaxAltitude int // meters
}

// Score rates how well a trek fits a traveller profile on a 0 to 100 scale.
// Rating contributes up to 30 points and review volume up to 20; the profile
// constraints add up to 15 points each for difficulty and duration fit and
// up to 10 each for budget and altitude headroom.
func Score(trek types.Trek, profile ScoreProfile) int {
	score := math.Min(trek.Rating/5*30, 30)
	score += math.Min(float64(trek.Reviews)/500*20, 20)

	if profile.Difficulty != "" {
		gap := math.Abs(float64(difficultyRank(trek.Difficulty) - difficultyRank(profile.Difficulty)))
		score += (1 - gap/3) * 15
	}
	if profile.MaxDays > 0 {
		score += (1 - math.Min(float64(trek.DurationInDays)/float64(profile.MaxDays), 1)) * 15
	}
	if profile.MaxBudget > 0 {
		score += (1 - math.Min(float64(trek.CostInUSD)/float64(profile.MaxBudget), 1)) * 10
	}
	if profile.MaxAltitude > 0 {
		score += (1 - math.Min(float64(trek.AltitudeInMeters)/float64(profile.MaxAltitude), 1)) * 10
	}
	return int(math.Round(math.Min(score, 100)))
}

// difficultyRank places Easy, Medium and Hard on a 1..3 scale. Anything else,
// Expert included, ranks as Medium so an unknown grade neither helps nor hurts
// the match.
func difficultyRank(d types.Difficulty) int {
	switch d {
	case types.DifficultyEasy:
		return 1
	case types.DifficultyMedium:
		return 2
	case types.DifficultyHard:
		return 3
	}
	return 2
}

// ScoreLabel buckets a score for display.
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	}
	return "Poor"
}
