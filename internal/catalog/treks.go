package catalog

import "github.com/trekmate/trekmate-core/internal/types"

// sampleTreks is the built-in catalog. Coordinates point at each trek's
// customary trailhead.
var sampleTreks = []types.Trek{
	{
		ID:               1,
		Name:             "Everest Base Camp Trek",
		Region:           "Himalayas",
		Difficulty:       types.DifficultyHard,
		DurationInDays:   14,
		CostInUSD:        1500,
		AltitudeInMeters: 5364,
		BestSeason:       "September - November, March - May",
		Description:      "The most iconic trekking route in the world. Experience the breathtaking beauty of the Himalayas as you trek to the base camp of Mount Everest.",
		Rating:           4.8,
		Reviews:          342,
		Coordinates:      &types.GeoPoint{Lat: 27.8, Lng: 86.9},
	},
	{
		ID:               2,
		Name:             "Kilimanjaro Trek",
		Region:           "Africa",
		Difficulty:       types.DifficultyHard,
		DurationInDays:   7,
		CostInUSD:        1200,
		AltitudeInMeters: 5895,
		BestSeason:       "January - March, June - October",
		Description:      "Climb Africa's highest peak with stunning views across the Tanzanian landscape.",
		Rating:           4.7,
		Reviews:          298,
		Coordinates:      &types.GeoPoint{Lat: -3.0674, Lng: 37.3556},
	},
	{
		ID:               3,
		Name:             "Inca Trail Trek",
		Region:           "South America",
		Difficulty:       types.DifficultyMedium,
		DurationInDays:   4,
		CostInUSD:        800,
		AltitudeInMeters: 4215,
		BestSeason:       "May - September",
		Description:      "Walk the legendary Inca Trail to the mystical ruins of Machu Picchu in Peru.",
		Rating:           4.9,
		Reviews:          521,
		Coordinates:      &types.GeoPoint{Lat: -13.1631, Lng: -72.545},
	},
	{
		ID:               4,
		Name:             "Torres del Paine Trek",
		Region:           "South America",
		Difficulty:       types.DifficultyHard,
		DurationInDays:   8,
		CostInUSD:        1100,
		AltitudeInMeters: 1700,
		BestSeason:       "December - February",
		Description:      "Epic trek through Patagonia's most dramatic landscape with granite towers.",
		Rating:           4.8,
		Reviews:          187,
		Coordinates:      &types.GeoPoint{Lat: -50.9423, Lng: -72.9814},
	},
	{
		ID:               5,
		Name:             "GR20 Trek - Corsica",
		Region:           "Europe",
		Difficulty:       types.DifficultyHard,
		DurationInDays:   16,
		CostInUSD:        900,
		AltitudeInMeters: 2710,
		BestSeason:       "June - September",
		Description:      "One of Europe's most challenging long-distance treks across the island of Corsica.",
		Rating:           4.6,
		Reviews:          156,
		Coordinates:      &types.GeoPoint{Lat: 42.3069, Lng: 9.1509},
	},
	{
		ID:               6,
		Name:             "Annapurna Circuit Trek",
		Region:           "Himalayas",
		Difficulty:       types.DifficultyHard,
		DurationInDays:   16,
		CostInUSD:        1300,
		AltitudeInMeters: 5416,
		BestSeason:       "October - November, March - April",
		Description:      "A complete circuit around the Annapurna Massif with diverse landscapes and cultures.",
		Rating:           4.8,
		Reviews:          412,
		Coordinates:      &types.GeoPoint{Lat: 28.5971, Lng: 83.8203},
	},
	{
		ID:               7,
		Name:             "Mont Blanc Trek",
		Region:           "Europe",
		Difficulty:       types.DifficultyMedium,
		DurationInDays:   5,
		CostInUSD:        600,
		AltitudeInMeters: 4808,
		BestSeason:       "June - September",
		Description:      "Trek around Western Europe's highest peak with Alpine scenery.",
		Rating:           4.7,
		Reviews:          234,
		Coordinates:      &types.GeoPoint{Lat: 45.8326, Lng: 6.8652},
	},
	{
		ID:               8,
		Name:             "Milford Track Trek",
		Region:           "Oceania",
		Difficulty:       types.DifficultyMedium,
		DurationInDays:   4,
		CostInUSD:        700,
		AltitudeInMeters: 1073,
		BestSeason:       "November - April",
		Description:      "One of the world's most scenic walks through New Zealand's Fiordland.",
		Rating:           4.9,
		Reviews:          389,
		Coordinates:      &types.GeoPoint{Lat: -44.916, Lng: 167.7755},
	},
}
