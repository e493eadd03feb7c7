package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/feed"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// SaleWriter consumes draft events from a feed subscription, keeps only
// the sales, and writes them to the draft_sales table.
type SaleWriter struct {
	cfg    WriterConfig
	logger *slog.Logger

	// Input from the event feed
	input *feed.Buffer[model.DraftEvent]

	// Database
	db *pgxpool.Pool

	// Batching
	batch       []saleRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	metrics WriterMetrics
}

// NewSaleWriter creates a new SaleWriter.
func NewSaleWriter(
	cfg WriterConfig,
	input *feed.Buffer[model.DraftEvent],
	db *pgxpool.Pool,
	logger *slog.Logger,
) *SaleWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaleWriter{
		cfg:    cfg,
		input:  input,
		db:     db,
		logger: logger,
		batch:  make([]saleRow, 0, cfg.BatchSize),
	}
}

// Start begins consuming events and writing to the database.
func (w *SaleWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.consumeLoop()

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("sale writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the writer, draining whatever the feed still
// holds. The final flush runs on the caller's context.
func (w *SaleWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping sale writer")

	if w.cancel != nil {
		w.cancel()
	}
	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("sale writer stop timed out")
	}

	for _, ev := range w.input.Drain(0) {
		w.enqueue(ev)
	}
	w.flush(ctx)

	w.logger.Info("sale writer stopped")
	return nil
}

// Stats returns current metrics.
func (w *SaleWriter) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// consumeLoop reads from the input buffer and accumulates batches.
func (w *SaleWriter) consumeLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			ev, ok := w.input.TryReceive()
			if !ok {
				select {
				case <-w.ctx.Done():
					return
				case <-time.After(10 * time.Millisecond):
					continue
				}
			}

			w.enqueue(ev)
		}
	}
}

// flushLoop periodically flushes the batch.
func (w *SaleWriter) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush(w.ctx)
		}
	}
}

// enqueue filters for sales and adds the row to the batch.
func (w *SaleWriter) enqueue(ev model.DraftEvent) {
	if ev.Kind != model.EventSale {
		return
	}
	row := w.transform(ev)

	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush(w.ctx)
	}
}

// transform converts a sale event to a saleRow. Sale events carry the
// item's position tag in Detail.
func (w *SaleWriter) transform(ev model.DraftEvent) saleRow {
	return saleRow{
		DraftID:  ev.DraftID,
		Item:     ev.Item,
		Position: ev.Detail,
		Team:     ev.Team,
		Price:    ev.Amount,
		TS:       ev.TS,
	}
}

// flush writes the current batch to the database.
func (w *SaleWriter) flush(ctx context.Context) {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}

	batch := w.batch
	w.batch = make([]saleRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	conflicts, err := w.batchInsert(ctx, batch)
	if err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch) - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed sales",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
// A draft sells each item at most once, so (draft_id, item) is the key.
func (w *SaleWriter) batchInsert(ctx context.Context, rows []saleRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO draft_sales (draft_id, item, position, team, price, ts)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (draft_id, item) DO NOTHING
		`, r.DraftID, r.Item, r.Position, r.Team, r.Price, r.TS)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
