// draftd runs a complete auction draft night among configured LLM managers.
// Usage: go run ./cmd/draftd --config configs/draft.example.yaml
//
// Required environment variables (unless the config carries a key):
//
//	OPENROUTER_API_KEY - OpenRouter API key used for every model call
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/agent"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/auth"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/catalogue"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/config"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/database"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/draft"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/extract"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/feed"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/ledger"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/live"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/metrics"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/openrouter"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/version"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/draft.example.yaml", "path to config file")
	update := flag.Bool("update", false, "run the mid-season check-in instead of a draft")
	liveView := flag.Bool("live", false, "serve the live chat view even if the config leaves it off")
	flag.Parse()

	// Structured logs go to stderr; stdout carries the play-by-play.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting draftd",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"league", cfg.League.Name,
		"teams", len(cfg.League.Teams),
		"players_csv", cfg.Players.CSV,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Resolve the OpenRouter key and build the shared client
	creds, err := auth.LoadCredentials(cfg.LLM.APIKey, cfg.LLM.KeyFile)
	if err != nil {
		logger.Error("failed to resolve api key", "error", err)
		os.Exit(1)
	}
	logger.Info("api key resolved", "source", creds.Source, "key", creds.Redacted())

	client := openrouter.NewClient(creds.APIKey,
		openrouter.WithBaseURL(cfg.LLM.BaseURL),
		openrouter.WithTimeout(cfg.LLM.Timeout),
		openrouter.WithRetries(cfg.LLM.MaxRetries, cfg.LLM.RetryDelay),
		openrouter.WithRequestSpacing(cfg.LLM.RequestSpacing),
		openrouter.WithAttribution(cfg.LLM.Referer, cfg.LLM.Title),
		openrouter.WithLogger(logger),
	)

	// Preflight every distinct model. A model that fails here degrades to
	// silent passes mid-draft, so the failure is loud but not fatal.
	logger.Info("verifying models")
	models := distinctModels(cfg.League.Teams)
	failed := 0
	for _, r := range client.VerifyModels(ctx, models, 4) {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		logger.Warn("continuing with unverified models", "failed", failed, "models", len(models))
	}

	// Load the player pool
	cat, err := catalogue.LoadCSV(cfg.Players.CSV)
	if err != nil {
		logger.Error("failed to load player pool", "error", err)
		os.Exit(1)
	}
	logger.Info("player pool loaded", "players", cat.Size(), "source", cfg.Players.CSV)

	// Build the league ledger
	teams := make([]model.Team, 0, len(cfg.League.Teams))
	for _, t := range cfg.League.Teams {
		teams = append(teams, model.Team{
			Name:    t.Name,
			Model:   t.Model,
			Persona: t.Persona,
			Budget:  t.Budget,
		})
	}
	led, err := ledger.New(teams, cfg.Draft.MinBid, cfg.Draft.RosterSize)
	if err != nil {
		logger.Error("failed to build ledger", "error", err)
		os.Exit(1)
	}

	var ex extract.Extractor
	switch cfg.Draft.Extractor {
	case "exact":
		ex = extract.NewExact()
	default:
		ex = extract.NewPattern()
	}

	agents := make(map[string]agent.Decider, len(cfg.League.Teams))
	for _, t := range cfg.League.Teams {
		agents[t.Name] = agent.NewLLM(client, t.Model,
			agent.WithMaxTokens(cfg.LLM.MaxTokens),
			agent.WithTemperature(cfg.LLM.Temperature),
			agent.WithLogger(logger),
		)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		logger.Error("failed to create output dir", "dir", cfg.Output.Dir, "error", err)
		os.Exit(1)
	}

	counters := metrics.NewCounters()
	fd := feed.New(logger)

	// Subscribe every consumer before the feed starts so nobody misses the
	// opening announcement.
	consoleBuf := fd.Subscribe("console")
	transcriptBuf := fd.Subscribe("transcript")

	// Optional database archive
	var pool *pgxpool.Pool
	var eventWriter *writer.EventWriter
	var saleWriter *writer.SaleWriter
	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)
		pool, err = database.NewPool(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		logger.Info("database connected")

		wcfg := writer.DefaultWriterConfig()
		eventWriter = writer.NewEventWriter(wcfg, fd.Subscribe("db-events"), pool, logger)
		saleWriter = writer.NewSaleWriter(wcfg, fd.Subscribe("db-sales"), pool, logger)
		eventWriter.Start(ctx)
		saleWriter.Start(ctx)
	}

	// Optional live chat view
	var liveSrv *live.Server
	if cfg.Live.Enabled || *liveView {
		liveSrv = live.New(cfg.Live.Addr, fd.Subscribe("live"), logger)
		if err := liveSrv.Start(ctx); err != nil {
			logger.Error("failed to start live view", "error", err)
			os.Exit(1)
		}
	}

	// Transcript file
	transcriptPath := filepath.Join(cfg.Output.Dir, cfg.Output.Transcript)
	transcript, err := writer.NewTranscript(transcriptPath, transcriptBuf, logger)
	if err != nil {
		logger.Error("failed to open transcript", "error", err)
		os.Exit(1)
	}
	transcript.Start(ctx)

	// Echo the public record to stdout as it happens.
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		for {
			ev, ok := consoleBuf.Receive(context.Background())
			if !ok {
				return
			}
			if line, ok := writer.FormatLine(ev); ok {
				fmt.Println(line)
			}
		}
	}()

	fd.Start(ctx)

	// Health endpoint, when configured
	var healthServer *http.Server
	if cfg.Metrics.Port > 0 {
		healthServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: createHealthHandler(pool, fd, counters),
		}
		go func() {
			logger.Info("starting health server", "port", cfg.Metrics.Port)
			if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
				logger.Error("health server error", "error", err)
			}
		}()
	}

	// Build the scheduler
	opts := []draft.Option{
		draft.WithLogger(logger),
		draft.WithPublisher(fd),
		draft.WithCounters(counters),
	}
	if cfg.Draft.RandomSeed != 0 {
		opts = append(opts, draft.WithRand(rand.New(rand.NewSource(cfg.Draft.RandomSeed))))
	}
	sched, err := draft.New(draft.Config{
		Increment:          cfg.Draft.Increment,
		SeedItem:           cfg.Draft.SeedItem,
		NominationAttempts: cfg.Draft.NominationAttempts,
		PlanUpdateEvery:    cfg.Draft.PlanUpdateEvery,
		Planning:           cfg.Draft.Planning,
		Banter:             cfg.Draft.Banter,
		League:             cfg.League.Name,
	}, cat, led, agents, ex, opts...)
	if err != nil {
		logger.Error("failed to build scheduler", "error", err)
		os.Exit(1)
	}

	resultsPath := filepath.Join(cfg.Output.Dir, cfg.Output.ResultsCSV)

	var res *model.Result
	var runErr error
	if *update {
		runErr = runMidSeason(ctx, sched, cat, led, resultsPath, logger)
	} else {
		logger.Info("draft night", "draft_id", sched.DraftID(), "live_view", liveSrv != nil)
		res, runErr = sched.Run(ctx)
	}

	// Orderly teardown: the feed flushes into the consumer buffers first,
	// then each consumer drains what is left.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	fd.Stop(shutdownCtx)
	<-consoleDone
	transcript.Stop(shutdownCtx)
	if liveSrv != nil {
		liveSrv.Stop(shutdownCtx)
	}
	if saleWriter != nil {
		saleWriter.Stop(shutdownCtx)
	}
	if eventWriter != nil {
		eventWriter.Stop(shutdownCtx)
	}
	if pool != nil {
		pool.Close()
	}
	if healthServer != nil {
		healthServer.Shutdown(shutdownCtx)
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		os.Exit(1)
	}

	if res != nil {
		if err := writer.WriteResultsCSV(resultsPath, cat, res); err != nil {
			logger.Error("failed to write results", "error", err)
			os.Exit(1)
		}
		plansPath := filepath.Join(cfg.Output.Dir, "plan_documents.txt")
		if err := writer.WritePlanDocs(plansPath, led.Order(), sched.Plans()); err != nil {
			logger.Error("failed to write plan documents", "error", err)
			os.Exit(1)
		}
		logger.Info("draft artifacts written",
			"results", resultsPath,
			"transcript", transcriptPath,
			"transcript_lines", transcript.Lines(),
			"plans", plansPath,
		)
	}

	snap := counters.Snapshot()
	logger.Info("draftd stopped",
		"sales", snap["sales"],
		"agent_calls", snap["agent_calls"],
		"agent_errors", snap["agent_errors"],
	)
}

// runMidSeason restores rosters from an earlier draft's results file and
// runs the check-in round. Budgets are replayed along with the rosters, so
// each manager sees what they actually have left.
func runMidSeason(ctx context.Context, sched *draft.Scheduler, cat *catalogue.Catalogue, led *ledger.Ledger, resultsPath string, logger *slog.Logger) error {
	rosters, err := writer.ReadResultsCSV(resultsPath)
	if err != nil {
		return fmt.Errorf("load draft results (run the draft first?): %w", err)
	}

	restored := 0
	for team, entries := range rosters {
		if _, ok := led.Team(team); !ok {
			logger.Warn("results mention a team not in this league", "team", team)
			continue
		}
		for _, e := range entries {
			if err := led.ApplySale(team, e.Item, e.Position, e.Price); err != nil {
				logger.Warn("skipping roster entry", "team", team, "player", e.Item, "error", err)
				continue
			}
			// A player missing from this season's CSV still counts on the
			// roster; they just score zero in the check-in.
			cat.Take(e.Item, team, e.Price)
			restored++
		}
	}
	logger.Info("rosters restored", "source", resultsPath, "teams", len(rosters), "players", restored)

	return sched.RunMidSeason(ctx)
}

// distinctModels returns each configured model slug once, in team order.
func distinctModels(teams []config.TeamConfig) []string {
	seen := make(map[string]bool, len(teams))
	var models []string
	for _, t := range teams {
		if !seen[t.Model] {
			seen[t.Model] = true
			models = append(models, t.Model)
		}
	}
	return models
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(pool *pgxpool.Pool, fd *feed.Feed, counters *metrics.Counters) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string                 `json:"status"`
			Components map[string]interface{} `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]interface{}),
		}

		// Check database
		if pool == nil {
			health.Components["postgres"] = "disabled"
		} else if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}

		// Check event flow
		stats := fd.Stats()
		health.Components["feed"] = map[string]interface{}{
			"published": stats.Published,
			"dropped":   stats.Dropped,
		}
		health.Components["draft"] = counters.Snapshot()

		// Set response
		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
