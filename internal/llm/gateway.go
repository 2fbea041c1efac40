// Package llm talks to an OpenAI-compatible chat completion endpoint and
// enforces the JSON-only output contract for event extraction.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/flynnai/extraction/internal/metrics"
	"github.com/flynnai/extraction/internal/retry"
)

type Gateway interface {
	Extract(ctx context.Context, systemPrompt, userPrompt string) (json.RawMessage, error)
}

type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	Temperature       float32
	MaxTokens         int
	MaxRetries        uint64
	BaseDelay         time.Duration
	BackoffMultiplier float64
	Timeout           time.Duration
}

const defaultModel = "gpt-4o-mini"

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 2000
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.BaseDelay == 0 {
		c.BaseDelay = 500 * time.Millisecond
	}
	if c.BackoffMultiplier == 0 {
		c.BackoffMultiplier = 2
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}

type OpenAIGateway struct {
	client  *openai.Client
	cfg     Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewOpenAIGateway(cfg Config, logger zerolog.Logger, m *metrics.Metrics) *OpenAIGateway {
	cfg = cfg.withDefaults()
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &OpenAIGateway{
		client:  openai.NewClientWithConfig(clientCfg),
		cfg:     cfg,
		logger:  logger.With().Str("component", "llm_gateway").Logger(),
		metrics: m,
	}
}

// Extract runs one chat completion with retry on 429/5xx. Each attempt gets
// its own Timeout budget; the caller's deadline bounds the whole loop. A 200
// response whose content is not a JSON object gets exactly one extra attempt.
// All retryable failures are absorbed here; the caller only ever sees the
// terminal error.
func (g *OpenAIGateway) Extract(ctx context.Context, systemPrompt, userPrompt string) (json.RawMessage, error) {
	var raw json.RawMessage
	parseRetried := false

	op := func(ctx context.Context) error {
		attemptCtx := ctx
		if g.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
			defer cancel()
		}
		resp, err := g.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model:       g.cfg.Model,
			Temperature: g.cfg.Temperature,
			MaxTokens:   g.cfg.MaxTokens,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return mapProviderError(err)
		}
		if len(resp.Choices) == 0 {
			return &ResponseParsingError{Detail: "response has no choices"}
		}
		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if !strings.HasPrefix(content, "{") || !json.Valid([]byte(content)) {
			return &ResponseParsingError{Detail: "content is not a JSON object"}
		}
		raw = json.RawMessage(content)
		return nil
	}

	retryable := func(err error) bool {
		var parseErr *ResponseParsingError
		if errors.As(err, &parseErr) {
			if parseRetried {
				return false
			}
			parseRetried = true
			g.countRetry(err)
			return true
		}
		if Transient(err) {
			g.countRetry(err)
			return true
		}
		return false
	}

	err := retry.Do(ctx, retry.Options{
		MaxRetries: g.cfg.MaxRetries,
		BaseDelay:  g.cfg.BaseDelay,
		Multiplier: g.cfg.BackoffMultiplier,
		Retryable:  retryable,
		DelayHint:  retryDelayHint,
	}, op)
	if err != nil {
		// A cancelled or expired caller context is the caller's own signal,
		// not an extraction failure.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &ExtractionError{Retryable: false, Err: err}
	}
	return raw, nil
}

// retryDelayHint surfaces the provider's requested wait so the backoff
// honors it instead of its own shorter interval.
func retryDelayHint(err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl.RetryAfter
	}
	return 0
}

func (g *OpenAIGateway) countRetry(err error) {
	g.logger.Warn().Err(err).Msg("llm call failed, retrying")
	if g.metrics != nil {
		g.metrics.LLMRetries.Inc()
	}
}

func mapProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	// The caller's context was already checked, so a deadline here means the
	// attempt budget ran out on a stalled provider. Worth another attempt.
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderServerError{Message: "attempt timed out: " + err.Error()}
	}
	// transport-level failure, worth retrying
	return &ProviderServerError{Message: err.Error()}
}

func classifyStatus(status int, message string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfterHint(message)}
	case status >= 500:
		return &ProviderServerError{StatusCode: status, Message: message}
	default:
		return &RequestError{StatusCode: status, Message: message}
	}
}

// retryAfterHint pulls the wait the provider asked for out of a rate limit
// message such as "Rate limit reached. Please try again in 1.2s."
func retryAfterHint(message string) time.Duration {
	const marker = "try again in "
	i := strings.Index(strings.ToLower(message), marker)
	if i < 0 {
		return 0
	}
	token := message[i+len(marker):]
	if end := strings.IndexAny(token, " ,"); end >= 0 {
		token = token[:end]
	}
	token = strings.TrimRight(token, ".")
	d, err := time.ParseDuration(token)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
