// Package client holds the single configured HTTP client every remote call in
// the system funnels through, so auth and error handling are applied uniformly
// exactly once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/trekmate/trekmate-core/internal/storage"
)

const (
	// DefaultTimeout bounds every request end to end.
	DefaultTimeout = 10 * time.Second

	authTokenKey = "auth_token"
	userDataKey  = "user_data"
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "trekmate_remote_request_duration_seconds",
	Help:    "Latency of remote POST requests.",
	Buckets: prometheus.DefBuckets,
}, []string{"path", "status"})

// Config carries the remote endpoint settings.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// Client is the shared remote HTTP client. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	store   storage.Store
	limiter *rate.Limiter
	logger  *slog.Logger

	// onUnauthenticated is the host application's hook for a 401; the client
	// only purges credentials and signals, it never navigates anywhere itself.
	onUnauthenticated func()
}

type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests and
// for stacking a logging transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithOnUnauthenticated registers the host hook invoked after a 401 purge.
func WithOnUnauthenticated(fn func()) Option {
	return func(c *Client) { c.onUnauthenticated = fn }
}

func New(cfg Config, store storage.Store, logger *slog.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		logger:  logger,
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken stores the bearer token attached to subsequent requests.
func (c *Client) SetAuthToken(token string) {
	if token == "" {
		return
	}
	if err := c.store.Set(authTokenKey, token); err != nil {
		c.logger.Warn("failed to persist auth token", slog.Any("error", err))
	}
}

// ClearAuthToken removes the stored credentials.
func (c *Client) ClearAuthToken() {
	c.purgeCredentials()
}

// Post sends body as JSON to path (relative to the base URL, or absolute) and
// unmarshals the response into out when out is non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	ctx, span := otel.Tracer("RemoteClient").Start(ctx, "RemoteClient.Post", trace.WithAttributes(
		attribute.String("http.method", http.MethodPost),
		attribute.String("http.path", path),
	))
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path), bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("building request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	span.SetAttributes(attribute.String("request.id", requestID))
	if token := c.validToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	pathLabel := metricPath(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// No response at all: transport-level failure, not a server error.
		requestDuration.WithLabelValues(pathLabel, "error").Observe(time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "no response from server")
		return fmt.Errorf("no response from server: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	requestDuration.WithLabelValues(pathLabel, strconv.Itoa(resp.StatusCode)).Observe(duration.Seconds())
	span.SetAttributes(
		attribute.Int("http.status_code", resp.StatusCode),
		attribute.Int64("duration_ms", duration.Milliseconds()),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		c.logAPIError(ctx, path, apiErr)
		if resp.StatusCode == http.StatusUnauthorized {
			c.purgeCredentials()
			if c.onUnauthenticated != nil {
				c.onUnauthenticated()
			}
		}
		span.SetStatus(codes.Error, "server returned error status")
		return apiErr
	}

	span.SetStatus(codes.Ok, "request completed")
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// metricPath strips the scheme and host from an absolute request target so
// proxy-mode callers do not blow up the label space with full URLs.
func metricPath(path string) string {
	if u, err := url.Parse(path); err == nil && u.Host != "" {
		return u.Path
	}
	return path
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// validToken returns the stored bearer token, discarding it up front when it
// is a JWT that has already expired. Opaque tokens are attached as-is.
func (c *Client) validToken() string {
	token, err := c.store.Get(authTokenKey)
	if err != nil || token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return token
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return token
	}
	if exp.Before(time.Now()) {
		c.logger.Info("stored token expired, purging credentials")
		c.purgeCredentials()
		return ""
	}
	return token
}

func (c *Client) purgeCredentials() {
	if err := c.store.Delete(authTokenKey); err != nil {
		c.logger.Warn("failed to remove auth token", slog.Any("error", err))
	}
	if err := c.store.Delete(userDataKey); err != nil {
		c.logger.Warn("failed to remove user data", slog.Any("error", err))
	}
}

func (c *Client) logAPIError(ctx context.Context, path string, apiErr *APIError) {
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized:
		c.logger.WarnContext(ctx, "unauthenticated, purging credentials", slog.String("path", path))
	case apiErr.StatusCode == http.StatusForbidden:
		c.logger.ErrorContext(ctx, "access forbidden", slog.String("path", path))
	case apiErr.StatusCode == http.StatusNotFound:
		c.logger.ErrorContext(ctx, "resource not found", slog.String("path", path))
	case apiErr.StatusCode == http.StatusTooManyRequests:
		c.logger.ErrorContext(ctx, "rate limited", slog.String("path", path))
	case apiErr.StatusCode >= 500:
		c.logger.ErrorContext(ctx, "server error", slog.String("path", path), slog.Int("status", apiErr.StatusCode))
	default:
		c.logger.ErrorContext(ctx, "request rejected", slog.String("path", path), slog.Int("status", apiErr.StatusCode))
	}
}
