// modelcheck verifies that every model named in a draft config answers
// through OpenRouter with the configured credentials, without running a
// draft. Silent provider reroutes are reported too.
// Usage: go run ./cmd/modelcheck --config configs/draft.example.yaml
//
// Required environment variables (unless the config carries a key):
//
//	OPENROUTER_API_KEY - OpenRouter API key used for every model call
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/auth"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/config"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/openrouter"
)

func main() {
	configPath := flag.String("config", "configs/draft.example.yaml", "path to config file")
	concurrency := flag.Int("concurrency", 4, "verification requests in flight at once")
	verbose := flag.Bool("verbose", false, "log every request")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	creds, err := auth.LoadCredentials(cfg.LLM.APIKey, cfg.LLM.KeyFile)
	if err != nil {
		logger.Error("failed to resolve api key", "error", err)
		os.Exit(1)
	}

	client := openrouter.NewClient(creds.APIKey,
		openrouter.WithBaseURL(cfg.LLM.BaseURL),
		openrouter.WithTimeout(cfg.LLM.Timeout),
		openrouter.WithRetries(cfg.LLM.MaxRetries, cfg.LLM.RetryDelay),
		openrouter.WithAttribution(cfg.LLM.Referer, cfg.LLM.Title),
		openrouter.WithLogger(logger),
	)

	// Several teams can share one model; check each slug once.
	var models []string
	teamsByModel := make(map[string][]string)
	for _, t := range cfg.League.Teams {
		if _, seen := teamsByModel[t.Model]; !seen {
			models = append(models, t.Model)
		}
		teamsByModel[t.Model] = append(teamsByModel[t.Model], t.Name)
	}

	fmt.Printf("checking %d models (key from %s, %s)\n\n", len(models), creds.Source, creds.Redacted())

	results := client.VerifyModels(ctx, models, *concurrency)

	failed := 0
	for _, r := range results {
		teams := strings.Join(teamsByModel[r.Model], ", ")
		switch {
		case r.Err != nil:
			failed++
			fmt.Printf("  %-34s FAILED   %v (%s)\n", r.Model, r.Err, teams)
		case r.Rerouted():
			fmt.Printf("  %-34s REROUTED to %s in %s (%s)\n", r.Model, r.Served, r.Latency.Round(time.Millisecond), teams)
		default:
			fmt.Printf("  %-34s OK       %s (%s)\n", r.Model, r.Latency.Round(time.Millisecond), teams)
		}
	}

	fmt.Printf("\n%d models: %d ok, %d failed\n", len(results), len(results)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
