package transly

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Provider is the external translation capability: one text, one round trip.
type Provider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Named is implemented by providers that report a name for logs and metrics.
type Named interface {
	Name() string
}

// ProviderName returns p's name, or "provider" when p does not report one.
func ProviderName(p Provider) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return "provider"
}

// Outcome is the result of one gateway call. Text is always usable: on
// failure it holds the source text and Err is a *GatewayError.
type Outcome struct {
	Text string
	Err  error
}

// Fallback reports whether Text is the untranslated source text.
func (o Outcome) Fallback() bool {
	return o.Err != nil
}

// Gateway adapts a Provider into a call that never fails the caller: every
// transport, timeout or provider error degrades to the source text.
type Gateway struct {
	provider Provider
	name     string
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker
	logger   *logrus.Logger
	metrics  *Metrics

	breakerThreshold int
	breakerCooldown  time.Duration
}

// GatewayOption is a functional option for configuring the Gateway.
type GatewayOption func(*Gateway)

// WithProviderName overrides the name used in logs, metrics and errors.
func WithProviderName(name string) GatewayOption {
	return func(g *Gateway) {
		g.name = name
	}
}

// WithTimeout bounds each provider round trip. Zero or negative disables the bound.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithBreaker opens the circuit after threshold consecutive failures and keeps it
// open for cooldown. A threshold <= 0 disables the breaker.
func WithBreaker(threshold int, cooldown time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.breakerThreshold = threshold
		g.breakerCooldown = cooldown
	}
}

// WithGatewayLogger sets the logger failures are reported to.
func WithGatewayLogger(logger *logrus.Logger) GatewayOption {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithGatewayMetrics records request counts and latencies.
func WithGatewayMetrics(m *Metrics) GatewayOption {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// NewGateway creates a Gateway around provider.
func NewGateway(provider Provider, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		provider:         provider,
		name:             ProviderName(provider),
		timeout:          DefaultProviderTimeout,
		breakerThreshold: -1,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = logrus.New()
	}

	if g.breakerThreshold > 0 {
		threshold := uint32(g.breakerThreshold)
		g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        g.name,
			MaxRequests: 1,
			Timeout:     g.breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				g.logger.WithFields(logrus.Fields{
					"provider": name,
					"from":     from.String(),
					"to":       to.String(),
				}).Warn("Circuit breaker state changed")
			},
		})
	}

	return g
}

// Name returns the provider name the gateway reports.
func (g *Gateway) Name() string {
	return g.name
}

// Translate performs exactly one provider round trip. It does not touch any cache.
func (g *Gateway) Translate(ctx context.Context, text, sourceLang, targetLang string) Outcome {
	start := time.Now()

	translated, err := g.call(ctx, text, sourceLang, targetLang)
	if err == nil && strings.TrimSpace(translated) == "" {
		err = &ProviderError{Message: "empty translation"}
	}

	status := "success"
	if err != nil {
		status = failureStatus(err)
	}
	g.metrics.recordGatewayRequest(g.name, status, time.Since(start).Seconds())

	if err != nil {
		gerr := &GatewayError{
			Provider: g.name,
			Message:  failureMessage(status),
			Cause:    err,
		}
		g.logger.WithFields(logrus.Fields{
			"provider":    g.name,
			"source_lang": sourceLang,
			"target_lang": targetLang,
			"text_length": len(text),
			"status":      status,
		}).WithError(err).Warn("Translation failed, using source text")
		return Outcome{Text: text, Err: gerr}
	}

	g.logger.WithFields(logrus.Fields{
		"provider":    g.name,
		"target_lang": targetLang,
		"duration":    time.Since(start),
	}).Debug("Translated text")

	return Outcome{Text: translated}
}

func (g *Gateway) call(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if g.breaker == nil {
		return g.provider.Translate(ctx, text, sourceLang, targetLang)
	}

	// A cancelled run says nothing about the provider's health.
	if err := ctx.Err(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return "", err
	}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.provider.Translate(ctx, text, sourceLang, targetLang)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func failureStatus(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "error"
	}
}

func failureMessage(status string) string {
	switch status {
	case "circuit_open":
		return "circuit open, provider skipped"
	case "timeout":
		return "provider call timed out"
	case "cancelled":
		return "provider call cancelled"
	default:
		return "translation failed"
	}
}
