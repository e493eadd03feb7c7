package openrouter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestVerifyModel tests the single-model preflight check.
func TestVerifyModel(t *testing.T) {
	t.Run("healthy model", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
				return
			}
			if req.Model != "openai/gpt-4o" {
				t.Errorf("Model = %q, want %q", req.Model, "openai/gpt-4o")
			}
			if req.MaxTokens != 8 {
				t.Errorf("MaxTokens = %d, want 8", req.MaxTokens)
			}
			if len(req.Messages) != 1 || req.Messages[0].Role != RoleUser {
				t.Errorf("Messages = %+v, want a single user message", req.Messages)
			}
			json.NewEncoder(w).Encode(ChatResponse{
				Model:   "openai/gpt-4o",
				Choices: []ChatChoice{{Message: Message{Role: RoleAssistant, Content: "OK"}}},
			})
		}))
		defer server.Close()

		c := NewClient("key", WithBaseURL(server.URL), WithLogger(quietLogger()))
		served, err := c.VerifyModel(context.Background(), "openai/gpt-4o")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if served != "openai/gpt-4o" {
			t.Errorf("served = %q, want %q", served, "openai/gpt-4o")
		}
	})

	t.Run("rerouted model is reported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ChatResponse{
				Model:   "openai/gpt-4o-mini",
				Choices: []ChatChoice{{Message: Message{Role: RoleAssistant, Content: "OK"}}},
			})
		}))
		defer server.Close()

		c := NewClient("key", WithBaseURL(server.URL), WithLogger(quietLogger()))
		served, err := c.VerifyModel(context.Background(), "openai/gpt-4o")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if served != "openai/gpt-4o-mini" {
			t.Errorf("served = %q, want %q", served, "openai/gpt-4o-mini")
		}
	})

	t.Run("empty reply is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ChatResponse{
				Model:   "m",
				Choices: []ChatChoice{{Message: Message{Role: RoleAssistant, Content: "   "}}},
			})
		}))
		defer server.Close()

		c := NewClient("key", WithBaseURL(server.URL), WithLogger(quietLogger()))
		_, err := c.VerifyModel(context.Background(), "m")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "empty reply") {
			t.Errorf("error should mention the empty reply, got %v", err)
		}
	})

	t.Run("failing model names itself in the error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"message": "model not found"}}`))
		}))
		defer server.Close()

		c := NewClient("key", WithBaseURL(server.URL), WithLogger(quietLogger()))
		_, err := c.VerifyModel(context.Background(), "typo/model")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "verify typo/model") {
			t.Errorf("error should name the model, got %v", err)
		}
		if !strings.Contains(err.Error(), "model not found") {
			t.Errorf("error should carry the API message, got %v", err)
		}
	})
}

// TestVerifyModels tests the concurrent preflight fan-out.
func TestVerifyModels(t *testing.T) {
	t.Run("results follow input order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
				return
			}
			if req.Model == "broken/model" {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": {"message": "provider down"}}`))
				return
			}
			json.NewEncoder(w).Encode(ChatResponse{
				Model:   req.Model,
				Choices: []ChatChoice{{Message: Message{Role: RoleAssistant, Content: "OK"}}},
			})
		}))
		defer server.Close()

		c := NewClient("key",
			WithBaseURL(server.URL),
			WithRetries(0, time.Millisecond),
			WithLogger(quietLogger()),
		)

		models := []string{"openai/gpt-4o", "broken/model", "anthropic/claude-sonnet-4"}
		results := c.VerifyModels(context.Background(), models, 2)

		if len(results) != len(models) {
			t.Fatalf("len(results) = %d, want %d", len(results), len(models))
		}
		for i, r := range results {
			if r.Model != models[i] {
				t.Errorf("results[%d].Model = %q, want %q", i, r.Model, models[i])
			}
		}
		if results[0].Err != nil {
			t.Errorf("results[0].Err = %v, want nil", results[0].Err)
		}
		if results[1].Err == nil {
			t.Error("results[1].Err = nil, want error")
		}
		if results[2].Err != nil {
			t.Errorf("results[2].Err = %v, want nil", results[2].Err)
		}
		if results[0].Served != "openai/gpt-4o" {
			t.Errorf("results[0].Served = %q, want %q", results[0].Served, "openai/gpt-4o")
		}
		if results[0].Rerouted() {
			t.Error("results[0].Rerouted() = true, want false")
		}
		if results[0].Latency <= 0 {
			t.Errorf("results[0].Latency = %v, want > 0", results[0].Latency)
		}
	})

	t.Run("concurrency cap respected", func(t *testing.T) {
		var inFlight atomic.Int32
		var maxInFlight atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)

			// Track max concurrent requests.
			for {
				old := maxInFlight.Load()
				if current <= old || maxInFlight.CompareAndSwap(old, current) {
					break
				}
			}

			time.Sleep(30 * time.Millisecond)
			json.NewEncoder(w).Encode(ChatResponse{
				Choices: []ChatChoice{{Message: Message{Role: RoleAssistant, Content: "OK"}}},
			})
		}))
		defer server.Close()

		c := NewClient("key", WithBaseURL(server.URL), WithLogger(quietLogger()))

		models := []string{"m/1", "m/2", "m/3", "m/4", "m/5", "m/6"}
		results := c.VerifyModels(context.Background(), models, 2)

		for i, r := range results {
			if r.Err != nil {
				t.Errorf("results[%d].Err = %v, want nil", i, r.Err)
			}
		}
		if got := maxInFlight.Load(); got > 2 {
			t.Errorf("maxInFlight = %d, want <= 2", got)
		}
	})

	t.Run("zero concurrency uses the default", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ChatResponse{
				Choices: []ChatChoice{{Message: Message{Role: RoleAssistant, Content: "OK"}}},
			})
		}))
		defer server.Close()

		c := NewClient("key", WithBaseURL(server.URL), WithLogger(quietLogger()))
		results := c.VerifyModels(context.Background(), []string{"m/1", "m/2"}, 0)
		for i, r := range results {
			if r.Err != nil {
				t.Errorf("results[%d].Err = %v, want nil", i, r.Err)
			}
		}
	})

	t.Run("cancelled context fails every model", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ChatResponse{
				Choices: []ChatChoice{{Message: Message{Role: RoleAssistant, Content: "OK"}}},
			})
		}))
		defer server.Close()

		c := NewClient("key", WithBaseURL(server.URL), WithLogger(quietLogger()))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := c.VerifyModels(ctx, []string{"m/1", "m/2", "m/3"}, 1)
		for i, r := range results {
			if r.Err == nil {
				t.Errorf("results[%d].Err = nil, want error", i)
			}
		}
	})

	t.Run("no models", func(t *testing.T) {
		c := NewClient("key", WithLogger(quietLogger()))
		results := c.VerifyModels(context.Background(), nil, 4)
		if len(results) != 0 {
			t.Errorf("len(results) = %d, want 0", len(results))
		}
	})
}
