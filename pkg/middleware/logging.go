package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport logs every outbound request with payload sizes and timing.
type LoggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport wraps base (http.DefaultTransport when nil) with
// request/response logging.
func NewLoggingTransport(logger *slog.Logger, base http.RoundTripper) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggingTransport{base: base, logger: logger}
}

// NewLoggingClient returns an http.Client whose transport logs every request.
func NewLoggingClient(timeout time.Duration, logger *slog.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewLoggingTransport(logger, nil),
	}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.logger.Info("request started",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int64("request_size_bytes", req.ContentLength),
	)

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Error("request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("duration", duration.String()),
			slog.Int64("duration_ms", duration.Milliseconds()),
			slog.Any("error", err),
		)
		return nil, err
	}

	t.logger.Info("request completed",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.String("duration", duration.String()),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Int64("response_size_bytes", resp.ContentLength),
	)

	return resp, nil
}
