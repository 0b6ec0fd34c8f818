package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trekmate/trekmate-core/internal/types"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		trek    types.Trek
		profile ScoreProfile
		want    int
	}{
		{
			name: "rating and reviews only",
			trek: types.Trek{Rating: 4.8, Reviews: 342},
			// 28.8 rating points plus 13.68 review points.
			want: 42,
		},
		{
			name: "review points cap at twenty",
			trek: types.Trek{Reviews: 2000},
			want: 20,
		},
		{
			name:    "exact difficulty match",
			trek:    types.Trek{Difficulty: types.DifficultyHard},
			profile: ScoreProfile{Difficulty: types.DifficultyHard},
			want:    15,
		},
		{
			name:    "two-step difficulty gap",
			trek:    types.Trek{Difficulty: types.DifficultyEasy},
			profile: ScoreProfile{Difficulty: types.DifficultyHard},
			want:    5,
		},
		{
			name:    "expert ranks as medium",
			trek:    types.Trek{Difficulty: types.DifficultyExpert},
			profile: ScoreProfile{Difficulty: types.DifficultyHard},
			want:    10,
		},
		{
			name:    "duration over the limit earns nothing",
			trek:    types.Trek{DurationInDays: 20},
			profile: ScoreProfile{MaxDays: 10},
			want:    0,
		},
		{
			name:    "headroom on every axis",
			trek:    types.Trek{Rating: 4.8, Reviews: 342, Difficulty: types.DifficultyHard, DurationInDays: 14, CostInUSD: 1500, AltitudeInMeters: 5364},
			profile: ScoreProfile{Difficulty: types.DifficultyHard, MaxDays: 28, MaxBudget: 3000, MaxAltitude: 10728},
			want:    75,
		},
		{
			name:    "perfect trek tops out at one hundred",
			trek:    types.Trek{Rating: 5, Reviews: 1000, Difficulty: types.DifficultyEasy},
			profile: ScoreProfile{Difficulty: types.DifficultyEasy, MaxDays: 10, MaxBudget: 1000, MaxAltitude: 3000},
			want:    100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.trek, tt.profile))
		})
	}
}

func TestScoreLabelBands(t *testing.T) {
	assert.Equal(t, "Excellent", ScoreLabel(100))
	assert.Equal(t, "Excellent", ScoreLabel(80))
	assert.Equal(t, "Good", ScoreLabel(79))
	assert.Equal(t, "Good", ScoreLabel(60))
	assert.Equal(t, "Fair", ScoreLabel(59))
	assert.Equal(t, "Fair", ScoreLabel(40))
	assert.Equal(t, "Poor", ScoreLabel(39))
	assert.Equal(t, "Poor", ScoreLabel(0))
}
