package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/openrouter"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/prompt"
)

// LLM is a Decider backed by an OpenRouter-served model. One instance per
// team; the client is shared.
type LLM struct {
	client      *openrouter.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// LLMOption configures an LLM decider.
type LLMOption func(*LLM)

// WithMaxTokens caps the completion length requested per decision.
func WithMaxTokens(n int) LLMOption {
	return func(l *LLM) {
		l.maxTokens = n
	}
}

// WithTemperature sets the sampling temperature sent with every request.
func WithTemperature(t float64) LLMOption {
	return func(l *LLM) {
		l.temperature = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LLMOption {
	return func(l *LLM) {
		l.logger = logger
	}
}

// NewLLM returns a Decider that asks the given model for every decision.
func NewLLM(client *openrouter.Client, modelSlug string, opts ...LLMOption) *LLM {
	l := &LLM{
		client:      client,
		model:       modelSlug,
		maxTokens:   400,
		temperature: 0.8,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Decide implements Decider. The reply is the model's raw text; extraction
// of bids and nominees happens upstream.
func (l *LLM) Decide(ctx context.Context, snap model.Snapshot) (string, error) {
	req := openrouter.ChatRequest{
		Model: l.model,
		Messages: []openrouter.Message{
			{Role: openrouter.RoleSystem, Content: prompt.System(snap)},
			{Role: openrouter.RoleUser, Content: prompt.User(snap)},
		},
		MaxTokens:   l.maxTokens,
		Temperature: l.temperature,
	}

	start := time.Now()
	reply, err := l.client.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("decide via %s: %w", l.model, err)
	}

	l.logger.Debug("decision received",
		"team", snap.Team.Name,
		"model", l.model,
		"phase", string(snap.Phase),
		"latency", time.Since(start),
		"chars", len(reply),
	)
	return reply, nil
}
