package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ChatCompletion sends a chat completion request and returns the decoded
// response.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.Model == "" {
		return nil, errors.New("openrouter: model is required")
	}
	if len(req.Messages) == 0 {
		return nil, errors.New("openrouter: at least one message is required")
	}

	var resp ChatResponse
	if err := c.post(ctx, "/chat/completions", req, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("chat completion",
		"model", req.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return &resp, nil
}

// Complete sends req and returns the first choice's text, trimmed. A reply
// with no choices is an error: the caller always wants words back.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter: model %s returned no choices", req.Model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
