// Package advice wraps the conversational completion provider: session
// lifecycle, chat turns with optional trek/location enrichment, and the cached
// data-shaped helpers (recommendations, packing lists, altitude advice, tips).
package advice

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trekmate/trekmate-core/internal/cache"
	"github.com/trekmate/trekmate-core/internal/client"
	"github.com/trekmate/trekmate-core/internal/llm"
	"github.com/trekmate/trekmate-core/internal/types"
)

const (
	systemPrompt = "You are an expert travel guide specializing in trekking and adventure travel. Provide helpful, accurate, and safety-conscious advice."

	apologyReply    = "Sorry, I'm having trouble connecting right now. Please try again later."
	emptyChoiceText = "Sorry, I could not process your request."

	cacheKeyPrefix = "chatgpt_"
)

// Service is the advice-side AI wrapper. The session mode is decided once at
// construction from configuration and never re-decided per call.
type Service struct {
	mode      types.SessionMode
	proxyURL  string
	remote    *client.Client
	completer llm.ChatCompleter
	cache     *cache.Cache
	logger    *slog.Logger

	// demo-mode latency simulation, injectable for tests
	sleep     func(time.Duration)
	demoDelay func() time.Duration
}

// Config selects the session mode: no URL and no key means demo mode, a
// provider key means direct mode, otherwise the proxy is used.
type Config struct {
	ProxyURL string
	APIKey   string
}

func NewService(cfg Config, remote *client.Client, completer llm.ChatCompleter, c *cache.Cache, logger *slog.Logger) *Service {
	mode := types.ModeProxy
	switch {
	case cfg.ProxyURL == "" && cfg.APIKey == "":
		mode = types.ModeDemo
	case cfg.APIKey != "":
		mode = types.ModeDirect
	}
	logger.Info("advice service initialized", slog.String("mode", string(mode)))
	return &Service{
		mode:      mode,
		proxyURL:  cfg.ProxyURL,
		remote:    remote,
		completer: completer,
		cache:     c,
		logger:    logger,
		sleep:     time.Sleep,
		demoDelay: func() time.Duration {
			return 700*time.Millisecond + time.Duration(rand.Int64N(300))*time.Millisecond
		},
	}
}

// Mode reports the session mode decided at construction.
func (s *Service) Mode() types.SessionMode { return s.mode }

type initRequest struct {
	Context      string `json:"context"`
	SystemPrompt string `json:"systemPrompt"`
}

type initResponse struct {
	SessionID      string `json:"sessionId"`
	WelcomeMessage string `json:"welcomeMessage,omitempty"`
}

// Initialize obtains a session handle. It never fails: any network error
// degrades to a locally fabricated fallback id so the caller can proceed. The
// second return value is the backend's optional welcome message.
func (s *Service) Initialize(ctx context.Context) (types.ChatSession, string) {
	ctx, span := otel.Tracer("AdviceService").Start(ctx, "Initialize", trace.WithAttributes(
		attribute.String("session.mode", string(s.mode)),
	))
	defer span.End()

	now := time.Now()
	switch s.mode {
	case types.ModeDemo:
		span.SetStatus(codes.Ok, "demo session fabricated")
		return types.ChatSession{ID: fmt.Sprintf("mock-session-%d", now.UnixMilli()), Mode: s.mode, CreatedAt: now}, ""
	case types.ModeDirect:
		// The completion call itself needs no server-side session.
		span.SetStatus(codes.Ok, "direct session fabricated")
		return types.ChatSession{ID: fmt.Sprintf("direct-api-%d", now.UnixMilli()), Mode: s.mode, CreatedAt: now}, ""
	}

	var resp initResponse
	err := s.remote.Post(ctx, s.proxyURL+"/init", initRequest{Context: "trek-guide", SystemPrompt: systemPrompt}, &resp)
	if err != nil || resp.SessionID == "" {
		if err != nil {
			s.logger.WarnContext(ctx, "chat init failed, using fallback session", slog.Any("error", err))
			span.RecordError(err)
		}
		span.SetStatus(codes.Ok, "fallback session fabricated")
		return types.ChatSession{ID: fmt.Sprintf("fallback-session-%d", now.UnixMilli()), Mode: s.mode, CreatedAt: now}, ""
	}
	span.SetStatus(codes.Ok, "remote session created")
	return types.ChatSession{ID: resp.SessionID, Mode: s.mode, CreatedAt: now}, resp.WelcomeMessage
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// SendMessage produces the assistant's turn for text. It never returns an
// error: any failure in direct or proxy mode yields a static apology so the
// conversation is never left without an assistant turn.
func (s *Service) SendMessage(ctx context.Context, session types.ChatSession, text string) types.ChatReply {
	ctx, span := otel.Tracer("AdviceService").Start(ctx, "SendMessage", trace.WithAttributes(
		attribute.String("session.id", session.ID),
		attribute.String("session.mode", string(s.mode)),
		attribute.Int("message.length", len(text)),
	))
	defer span.End()

	switch s.mode {
	case types.ModeDemo:
		s.sleep(s.demoDelay())
		span.SetStatus(codes.Ok, "demo reply")
		return types.ChatReply{
			Text:      fmt.Sprintf("This is a mock response to: %q. To get real AI responses, configure a provider API key or a chat endpoint.", text),
			SessionID: session.ID,
		}
	case types.ModeDirect:
		reply, err := s.completer.Complete(ctx, systemPrompt, text)
		if err != nil {
			s.logger.ErrorContext(ctx, "chat completion failed", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "completion failed")
			return types.ChatReply{Text: apologyReply, SessionID: session.ID}
		}
		if reply == "" {
			reply = emptyChoiceText
		}
		span.SetStatus(codes.Ok, "completion returned")
		return types.ChatReply{Text: reply, SessionID: session.ID}
	}

	var resp types.ChatReply
	if err := s.remote.Post(ctx, s.proxyURL+"/chat", chatRequest{Message: text, SessionID: session.ID}, &resp); err != nil {
		s.logger.ErrorContext(ctx, "chat send failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "proxy send failed")
		return types.ChatReply{Text: apologyReply, SessionID: session.ID}
	}
	if resp.SessionID == "" {
		resp.SessionID = session.ID
	}
	span.SetStatus(codes.Ok, "proxy reply returned")
	return resp
}

// SendMessageWithContext enriches the user's text with the trek and location
// under discussion before sending it.
func (s *Service) SendMessageWithContext(ctx context.Context, session types.ChatSession, text string, trek *types.Trek, loc *types.GeoPoint) types.ChatReply {
	enriched := text
	if trek != nil {
		enriched = fmt.Sprintf("Regarding the %s (%s, %s, %d days, %dm max altitude): %s",
			trek.Name, trek.Region, trek.Difficulty, trek.DurationInDays, trek.AltitudeInMeters, text)
	}
	if loc != nil && !loc.IsZero() {
		enriched = fmt.Sprintf("%s (asking from %s)", enriched, loc.CacheID())
	}
	return s.SendMessage(ctx, session, enriched)
}

// EndChat tears the session down best-effort. Cleanup never surfaces an
// error, which is why there is nothing to return.
func (s *Service) EndChat(ctx context.Context, session types.ChatSession) {
	if s.mode != types.ModeProxy {
		return
	}
	payload := struct {
		SessionID string `json:"sessionId"`
	}{SessionID: session.ID}
	if err := s.remote.Post(ctx, s.proxyURL+"/end", payload, nil); err != nil {
		s.logger.WarnContext(ctx, "chat teardown failed", slog.String("session_id", session.ID), slog.Any("error", err))
	}
}

// GetTrekRecommendations asks for AI recommendations matching the given
// preferences. Fail-closed: callers handle the error explicitly.
func (s *Service) GetTrekRecommendations(ctx context.Context, prefs types.Preferences) (json.RawMessage, error) {
	key := cacheKeyPrefix + "recommendations_" + hashKey(prefs)
	return s.cachedPost(ctx, "GetTrekRecommendations", key, "/recommendations", struct {
		Preferences types.Preferences `json:"preferences"`
	}{prefs})
}

// GeneratePackingList builds a packing list tailored to one trek.
func (s *Service) GeneratePackingList(ctx context.Context, trek types.Trek) (json.RawMessage, error) {
	key := fmt.Sprintf("%spacking_%d", cacheKeyPrefix, trek.ID)
	return s.cachedPost(ctx, "GeneratePackingList", key, "/packing-list", struct {
		TrekInfo types.Trek `json:"trekInfo"`
	}{trek})
}

// GetAltitudeAdvice fetches acclimatization advice for a maximum altitude.
func (s *Service) GetAltitudeAdvice(ctx context.Context, altitudeMeters int, terrain string) (json.RawMessage, error) {
	if terrain == "" {
		terrain = "mountain"
	}
	key := fmt.Sprintf("%saltitude_%d", cacheKeyPrefix, altitudeMeters)
	return s.cachedPost(ctx, "GetAltitudeAdvice", key, "/altitude-advice", struct {
		Altitude int    `json:"altitude"`
		Terrain  string `json:"terrain"`
	}{altitudeMeters, terrain})
}

// GetSafetyTips fetches safety recommendations for one trek.
func (s *Service) GetSafetyTips(ctx context.Context, trek types.Trek) (json.RawMessage, error) {
	key := fmt.Sprintf("%ssafety_%d", cacheKeyPrefix, trek.ID)
	return s.cachedPost(ctx, "GetSafetyTips", key, "/safety-tips", struct {
		TrekInfo types.Trek `json:"trekInfo"`
	}{trek})
}

// GetTravelTips fetches tips for a free-form topic (nutrition, fitness, ...).
func (s *Service) GetTravelTips(ctx context.Context, topic string) (json.RawMessage, error) {
	key := cacheKeyPrefix + "tips_" + topic
	return s.cachedPost(ctx, "GetTravelTips", key, "/travel-tips", struct {
		Topic string `json:"topic"`
	}{topic})
}

// cachedPost is the shared cache-then-POST path of the data-shaped calls.
// Unlike SendMessage these propagate failures: their callers expect structured
// data and handle empty/error states themselves.
func (s *Service) cachedPost(ctx context.Context, op, key, path string, body any) (json.RawMessage, error) {
	ctx, span := otel.Tracer("AdviceService").Start(ctx, op, trace.WithAttributes(
		attribute.String("cache.key", key),
	))
	defer span.End()

	var cached json.RawMessage
	if s.cache.Get(key, &cached) {
		span.AddEvent("Cache hit")
		span.SetStatus(codes.Ok, "served from cache")
		return cached, nil
	}

	var resp json.RawMessage
	if err := s.remote.Post(ctx, s.proxyURL+path, body, &resp); err != nil {
		s.logger.ErrorContext(ctx, "advice fetch failed", slog.String("op", op), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "remote fetch failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(resp) > 0 {
		s.cache.Set(key, resp, cache.DefaultTTL)
	}
	span.SetStatus(codes.Ok, "fetched and cached")
	return resp, nil
}

func hashKey(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "unhashable"
	}
	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:])
}
