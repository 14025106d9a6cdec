package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"legal-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base  Client
	delay time.Duration
}

// WithRetry retries a failed Generate call once when the failure looks
// transient: a provider 5xx or 429, or a network timeout.
func WithRetry(base Client) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base, delay: retryBaseDelay}
}

func (r retryingClient) Generate(ctx context.Context, prompt Prompt, cfg GenerationConfig) (string, error) {
	text, err := r.base.Generate(ctx, prompt, cfg)
	if err == nil || !Retryable(err) || ctx.Err() != nil {
		return text, err
	}

	telemetry.Warn("llm.retry", map[string]any{"attempt": 1, "model": prompt.Model, "error": err})
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return r.base.Generate(ctx, prompt, cfg)
}

// Retryable reports whether err is worth a second attempt.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrEmptyResponse) {
		return false
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode != 0 {
		return upstream.StatusCode == http.StatusTooManyRequests || upstream.StatusCode >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
