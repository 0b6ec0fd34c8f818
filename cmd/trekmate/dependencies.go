package main

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/trekmate/trekmate-core/internal/cache"
	"github.com/trekmate/trekmate-core/internal/catalog"
	"github.com/trekmate/trekmate-core/internal/client"
	"github.com/trekmate/trekmate-core/internal/config"
	"github.com/trekmate/trekmate-core/internal/domain/advice"
	"github.com/trekmate/trekmate-core/internal/domain/conditions"
	"github.com/trekmate/trekmate-core/internal/domain/recommend"
	"github.com/trekmate/trekmate-core/internal/llm"
	"github.com/trekmate/trekmate-core/internal/storage"
	"github.com/trekmate/trekmate-core/pkg/middleware"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Store  storage.Store
	Cache  *cache.Cache
	Remote *client.Client

	Catalog    *catalog.Catalog
	Advice     *advice.Service
	Conditions *conditions.Service
	Recommend  *recommend.Engine

	redisClient *redis.Client
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.initStorage()
	deps.initClient()
	if err := deps.initServices(ctx); err != nil {
		return nil, err
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initStorage picks the durable cache backend. Redis when configured, a JSON
// file when configured, process memory otherwise.
func (d *Dependencies) initStorage() {
	switch {
	case d.Config.RedisAddr != "":
		d.redisClient = redis.NewClient(&redis.Options{Addr: d.Config.RedisAddr})
		d.Store = storage.NewRedisStore(d.redisClient)
		d.Logger.Info("cache backend: redis", slog.String("addr", d.Config.RedisAddr))
	case d.Config.CacheFile != "":
		d.Store = storage.NewFileStore(d.Config.CacheFile)
		d.Logger.Info("cache backend: file", slog.String("path", d.Config.CacheFile))
	default:
		d.Store = storage.NewMemoryStore()
		d.Logger.Info("cache backend: memory")
	}
	d.Cache = cache.New(d.Store, d.Logger)
}

func (d *Dependencies) initClient() {
	d.Remote = client.New(client.Config{
		BaseURL:        d.Config.APIBaseURL,
		Timeout:        d.Config.RequestTimeout,
		RateLimitRPS:   d.Config.RateLimitRPS,
		RateLimitBurst: d.Config.RateLimitBurst,
	}, d.Store, d.Logger,
		client.WithHTTPClient(middleware.NewLoggingClient(d.Config.RequestTimeout, d.Logger)),
	)
}

func (d *Dependencies) initServices(ctx context.Context) error {
	var completer llm.ChatCompleter
	if d.Config.OpenAIAPIKey != "" {
		completer = llm.NewOpenAICompleter(d.Config.OpenAIAPIKey)
	}
	d.Advice = advice.NewService(advice.Config{
		ProxyURL: d.Config.ChatAPIURL,
		APIKey:   d.Config.OpenAIAPIKey,
	}, d.Remote, completer, d.Cache, d.Logger)

	var generator llm.ConditionsGenerator
	if d.Config.GeminiAPIKey != "" && d.Config.GeminiAPIURL == "" {
		g, err := llm.NewGeminiGenerator(ctx, d.Config.GeminiAPIKey)
		if err != nil {
			// Degrade to demo mode rather than refusing to start.
			d.Logger.Error("failed to initialize gemini client, conditions run in demo mode", slog.Any("error", err))
		} else {
			generator = g
		}
	}
	d.Conditions = conditions.NewService(conditions.Config{
		ProxyURL: d.Config.GeminiAPIURL,
		APIKey:   d.Config.GeminiAPIKey,
	}, d.Remote, generator, d.Cache, d.Logger)

	d.Catalog = catalog.Load()
	d.Recommend = recommend.NewEngine(d.Catalog, d.Conditions, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			d.Logger.Error("failed to close redis client", slog.Any("error", err))
		}
	}
	d.Logger.Info("cleanup completed")
}
