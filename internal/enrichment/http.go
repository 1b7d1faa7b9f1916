// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package enrichment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/sideline/internal/stream"
)

// ErrEmptyCompletion is returned when the endpoint answers without text.
var ErrEmptyCompletion = errors.New("completion has no text")

// HTTPConfig configures an HTTPGenerator.
type HTTPConfig struct {
	Endpoint    string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	RateLimit   float64
	RateBurst   int
	Breaker     stream.BreakerConfig
}

type penalty struct {
	Scale float64 `json:"scale"`
}

type completionRequest struct {
	Model            string   `json:"model,omitempty"`
	Prompt           string   `json:"prompt"`
	MaxTokens        int      `json:"maxTokens"`
	Temperature      float64  `json:"temperature"`
	TopP             float64  `json:"topP"`
	StopSequences    []string `json:"stopSequences"`
	CountPenalty     penalty  `json:"countPenalty"`
	PresencePenalty  penalty  `json:"presencePenalty"`
	FrequencyPenalty penalty  `json:"frequencyPenalty"`
}

type completionResponse struct {
	Completions []struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
	} `json:"completions"`
}

// HTTPGenerator calls a JSON completion endpoint.
type HTTPGenerator struct {
	cfg     HTTPConfig
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[interface{}]
}

// NewHTTPGenerator creates a generator for cfg.Endpoint.
func NewHTTPGenerator(cfg HTTPConfig) (*HTTPGenerator, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("generator endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 50
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = stream.DefaultBreakerConfig("commentary-generator")
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &HTTPGenerator{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		breaker: stream.NewCircuitBreaker(cfg.Breaker),
	}, nil
}

// Generate implements Generator.
func (g *HTTPGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		return g.complete(ctx, req.Prompt)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (g *HTTPGenerator) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:         g.cfg.Model,
		Prompt:        prompt,
		MaxTokens:     g.cfg.MaxTokens,
		Temperature:   g.cfg.Temperature,
		TopP:          1.0,
		StopSequences: []string{},
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed completionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Completions) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(parsed.Completions[0].Data.Text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
