package agent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/openrouter"
)

// TestScripted tests the canned-reply decider.
func TestScripted(t *testing.T) {
	t.Run("replays in order then goes silent", func(t *testing.T) {
		s := NewScripted("BID: 10", "PASS")

		for i, want := range []string{"BID: 10", "PASS", "", ""} {
			got, err := s.Decide(context.Background(), model.Snapshot{})
			if err != nil {
				t.Fatalf("call %d: unexpected error: %v", i, err)
			}
			if got != want {
				t.Errorf("call %d = %q, want %q", i, got, want)
			}
		}
	})

	t.Run("Calls counts served decisions", func(t *testing.T) {
		s := NewScripted("one")
		if s.Calls() != 0 {
			t.Errorf("Calls() = %d, want 0", s.Calls())
		}
		s.Decide(context.Background(), model.Snapshot{})
		s.Decide(context.Background(), model.Snapshot{})
		if s.Calls() != 1 {
			t.Errorf("Calls() = %d, want 1 (exhausted script stops counting)", s.Calls())
		}
	})
}

// TestFunc tests the function adapter.
func TestFunc(t *testing.T) {
	wantErr := errors.New("offline")
	f := Func(func(ctx context.Context, snap model.Snapshot) (string, error) {
		if snap.Phase == model.PhaseBid {
			return "PASS", nil
		}
		return "", wantErr
	})

	got, err := f.Decide(context.Background(), model.Snapshot{Phase: model.PhaseBid})
	if err != nil || got != "PASS" {
		t.Errorf("Decide(bid) = %q, %v, want %q, nil", got, err, "PASS")
	}
	if _, err := f.Decide(context.Background(), model.Snapshot{Phase: model.PhasePlan}); !errors.Is(err, wantErr) {
		t.Errorf("Decide(plan) error = %v, want %v", err, wantErr)
	}
}

// TestLLM tests the OpenRouter-backed decider.
func TestLLM(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	snap := model.Snapshot{
		Phase:      model.PhaseBid,
		League:     "Test League",
		Team:       model.Team{Name: "North", Model: "openai/gpt-4o", Budget: 100, InitialBudget: 100},
		MinBid:     10,
		Increment:  10,
		MaxSlots:   2,
		Item:       "Connor McDavid",
		HighBid:    20,
		HighBidder: "South",
		MaxAllowed: 90,
	}

	t.Run("builds a system and user message pair", func(t *testing.T) {
		var got openrouter.ChatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode request: %v", err)
				return
			}
			json.NewEncoder(w).Encode(openrouter.ChatResponse{
				Choices: []openrouter.ChatChoice{
					{Message: openrouter.Message{Role: openrouter.RoleAssistant, Content: "  BID: 30  "}},
				},
			})
		}))
		defer server.Close()

		client := openrouter.NewClient("key", openrouter.WithBaseURL(server.URL))
		l := NewLLM(client, "openai/gpt-4o",
			WithMaxTokens(200),
			WithTemperature(0.5),
			WithLogger(quiet),
		)

		reply, err := l.Decide(context.Background(), snap)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply != "BID: 30" {
			t.Errorf("reply = %q, want %q", reply, "BID: 30")
		}

		if got.Model != "openai/gpt-4o" {
			t.Errorf("Model = %q, want %q", got.Model, "openai/gpt-4o")
		}
		if got.MaxTokens != 200 {
			t.Errorf("MaxTokens = %d, want 200", got.MaxTokens)
		}
		if got.Temperature != 0.5 {
			t.Errorf("Temperature = %v, want 0.5", got.Temperature)
		}
		if len(got.Messages) != 2 {
			t.Fatalf("len(Messages) = %d, want 2", len(got.Messages))
		}
		if got.Messages[0].Role != openrouter.RoleSystem || !strings.Contains(got.Messages[0].Content, "North") {
			t.Errorf("system message should frame the team, got %+v", got.Messages[0])
		}
		if got.Messages[1].Role != openrouter.RoleUser || !strings.Contains(got.Messages[1].Content, "ROUND CONTEXT") {
			t.Errorf("user message should carry the round context, got %+v", got.Messages[1])
		}
		if !strings.Contains(got.Messages[1].Content, "Connor McDavid") {
			t.Errorf("user message should name the lot, got:\n%s", got.Messages[1].Content)
		}
	})

	t.Run("transport failure surfaces as an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": {"message": "invalid key"}}`))
		}))
		defer server.Close()

		client := openrouter.NewClient("bad-key", openrouter.WithBaseURL(server.URL))
		l := NewLLM(client, "openai/gpt-4o", WithLogger(quiet))

		_, err := l.Decide(context.Background(), snap)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "openai/gpt-4o") {
			t.Errorf("error should name the model, got %v", err)
		}
	})
}
