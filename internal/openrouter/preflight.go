package openrouter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// VerifyResult is the outcome of one model's preflight check.
type VerifyResult struct {
	Model   string // Requested slug
	Served  string // Slug the provider reports actually serving
	Latency time.Duration
	Err     error
}

// Rerouted reports whether the provider served a different model than the
// one requested.
func (r VerifyResult) Rerouted() bool {
	return r.Err == nil && r.Served != "" && r.Served != r.Model
}

// VerifyModel sends a minimal completion to confirm the model answers with
// the configured credentials. The returned slug is the model the provider
// reports serving, which can differ from the requested one when traffic is
// silently rerouted.
func (c *Client) VerifyModel(ctx context.Context, model string) (string, error) {
	resp, err := c.ChatCompletion(ctx, ChatRequest{
		Model:     model,
		Messages:  []Message{{Role: RoleUser, Content: "Reply with the single word OK."}},
		MaxTokens: 8,
	})
	if err != nil {
		return "", fmt.Errorf("verify %s: %w", model, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return resp.Model, fmt.Errorf("verify %s: empty reply", model)
	}
	return resp.Model, nil
}

// VerifyModels preflights every model concurrently, at most concurrency
// requests in flight, and returns one result per input in the same order.
func (c *Client) VerifyModels(ctx context.Context, models []string, concurrency int) []VerifyResult {
	if concurrency <= 0 {
		concurrency = 4
	}

	start := time.Now()
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]VerifyResult, len(models))

	for i, m := range models {
		wg.Add(1)
		go func(i int, model string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = VerifyResult{Model: model, Err: ctx.Err()}
				return
			}

			began := time.Now()
			served, err := c.VerifyModel(ctx, model)
			results[i] = VerifyResult{Model: model, Served: served, Latency: time.Since(began), Err: err}
			switch {
			case err != nil:
				c.logger.Warn("model verification failed", "model", model, "err", err)
			case results[i].Rerouted():
				c.logger.Warn("model rerouted by provider", "requested", model, "served", served)
			}
		}(i, m)
	}

	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	c.logger.Info("model preflight complete",
		"models", len(models),
		"failed", failed,
		"duration", time.Since(start),
	)
	return results
}
