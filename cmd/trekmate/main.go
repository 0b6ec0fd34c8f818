package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/trekmate/trekmate-core/internal/catalog"
	"github.com/trekmate/trekmate-core/internal/config"
	"github.com/trekmate/trekmate-core/internal/domain/recommend"
	"github.com/trekmate/trekmate-core/internal/geo"
	"github.com/trekmate/trekmate-core/internal/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine, the environment may be set by the host.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Env == config.EnvDev {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := InitDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init dependencies: %w", err)
	}
	defer deps.Cleanup()

	return demo(ctx, deps)
}

// demo exercises the services once from the command line. The library is
// meant to be embedded in an app shell; this keeps the binary useful for
// smoke-testing a deployment's configuration.
func demo(ctx context.Context, deps *Dependencies) error {
	session, welcome := deps.Advice.Initialize(ctx)
	deps.Logger.Info("chat session ready",
		slog.String("session_id", session.ID),
		slog.String("mode", string(session.Mode)))
	fmt.Println(welcome)

	reply := deps.Advice.SendMessage(ctx, session, "What should I pack for a high-altitude trek?")
	fmt.Println(reply.Text)

	// No real positioning backend in the CLI; a fixed fix behind the cached
	// locator exercises the same path the embedding host uses.
	locator := geo.NewCachedLocator(geo.StaticLocator{
		Point: types.GeoPoint{Lat: 27.7172, Lng: 85.3240, Name: "Kathmandu"},
	})
	location, err := locator.Current(ctx)
	if err != nil {
		return fmt.Errorf("resolve location: %w", err)
	}

	result := deps.Recommend.GetLocationBasedTreks(ctx, location, types.Preferences{})
	for _, trek := range result.LocalTreks {
		fmt.Printf("%-28s %7.1f km  %s\n", trek.Name, trek.DistanceKm, trek.Difficulty)
	}
	if result.Error != "" {
		deps.Logger.Warn("recommendations degraded", slog.String("error", result.Error))
	}

	profile := recommend.ScoreProfile{Difficulty: types.DifficultyHard, MaxDays: 14, MaxBudget: 2000}
	for _, trek := range deps.Catalog.Search(catalog.Filters{Season: "June", SortBy: catalog.SortByPopularity}) {
		score := recommend.Score(trek, profile)
		fmt.Printf("june departure %-28s fit %3d (%s)\n", trek.Name, score, recommend.ScoreLabel(score))
	}
	for _, trek := range deps.Catalog.Trending(3) {
		fmt.Printf("trending %-28s %.1f over %d reviews\n", trek.Name, trek.Rating, trek.Reviews)
	}

	ws := deps.Recommend.GetLocationWeatherAndSafety(ctx, location)
	for _, day := range ws.Weather.Forecast {
		fmt.Printf("weather %s: %s, %.0f°C (mock=%v)\n", day.Day, day.Condition, day.TempC, ws.Weather.IsMockData)
	}
	for _, warning := range ws.Safety.Warnings {
		fmt.Printf("warning [%s]: %s\n", warning.Severity, warning.Message)
	}

	deps.Advice.EndChat(ctx, session)
	return nil
}
