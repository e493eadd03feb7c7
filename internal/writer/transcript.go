package writer

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/feed"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// Transcript consumes a feed subscription and appends one line per public
// event to a plain-text file. Every line is flushed as it lands so the
// file tails cleanly during a live draft.
type Transcript struct {
	logger *slog.Logger
	input  *feed.Buffer[model.DraftEvent]

	f *os.File
	w *bufio.Writer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	lines int64
}

// NewTranscript creates the transcript file, truncating any previous run.
func NewTranscript(path string, input *feed.Buffer[model.DraftEvent], logger *slog.Logger) (*Transcript, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create transcript: %w", err)
	}
	return &Transcript{
		logger: logger,
		input:  input,
		f:      f,
		w:      bufio.NewWriter(f),
	}, nil
}

// Start begins consuming events.
func (t *Transcript) Start(ctx context.Context) error {
	t.ctx, t.cancel = context.WithCancel(ctx)

	t.wg.Add(1)
	go t.consumeLoop()

	t.logger.Info("transcript started", "path", t.f.Name())
	return nil
}

// Stop drains remaining events and closes the file.
func (t *Transcript) Stop(ctx context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.logger.Warn("transcript stop timed out")
	}

	for _, ev := range t.input.Drain(0) {
		t.writeEvent(ev)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.w.Flush(); err != nil {
		t.f.Close()
		return fmt.Errorf("flush transcript: %w", err)
	}
	return t.f.Close()
}

// Lines returns the number of lines written so far.
func (t *Transcript) Lines() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lines
}

func (t *Transcript) consumeLoop() {
	defer t.wg.Done()

	for {
		ev, ok := t.input.Receive(t.ctx)
		if !ok {
			return
		}
		t.writeEvent(ev)
	}
}

func (t *Transcript) writeEvent(ev model.DraftEvent) {
	line, ok := FormatLine(ev)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, line)
	if err := t.w.Flush(); err != nil {
		t.logger.Warn("transcript write failed", "error", err)
		return
	}
	t.lines++
}

// FormatLine renders one event as a transcript line. The second return is
// false for events that stay out of the public record: plan documents are
// for each manager's eyes only, and passes already read as passes in the
// agent's own chat message.
func FormatLine(ev model.DraftEvent) (string, bool) {
	switch ev.Kind {
	case model.EventMessage:
		return fmt.Sprintf("[%s] %s", ev.Speaker, ev.Detail), true
	case model.EventNomination:
		return fmt.Sprintf("[%s] On the block: %s. %s opens at $%d.", model.Auctioneer, ev.Item, ev.Team, ev.Amount), true
	case model.EventBidAccepted:
		return fmt.Sprintf("HIGH BID: $%d by %s on %s", ev.Amount, ev.Team, ev.Item), true
	case model.EventBidRejected:
		return fmt.Sprintf("[%s] Bid rejected from %s: %s", model.Auctioneer, ev.Team, ev.Detail), true
	case model.EventSale:
		return fmt.Sprintf("[%s] SOLD: %s to %s for $%d", model.Auctioneer, ev.Item, ev.Team, ev.Amount), true
	case model.EventNoSale:
		return fmt.Sprintf("[%s] No sale on %s.", model.Auctioneer, ev.Item), true
	default:
		return "", false
	}
}
