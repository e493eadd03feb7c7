package feed

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

const (
	// DefaultInputSize is the capacity of the publish channel.
	DefaultInputSize = 256

	// DefaultSubscriberCapacity is the initial capacity of each
	// subscriber buffer. Buffers grow on demand.
	DefaultSubscriberCapacity = 64
)

// Feed fans published draft events out to named subscribers. It satisfies
// the scheduler's Publisher interface.
type Feed struct {
	logger *slog.Logger
	input  chan model.DraftEvent

	mu   sync.RWMutex
	subs map[string]*subscriber

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	published atomic.Int64
	dropped   atomic.Int64
}

type subscriber struct {
	buf     *Buffer[model.DraftEvent]
	dropped atomic.Int64
}

// SubscriberStats describes one subscriber's consumption.
type SubscriberStats struct {
	Buffer  BufferStats
	Dropped int64
}

// FeedStats contains runtime statistics.
type FeedStats struct {
	Published   int64
	Dropped     int64 // Events lost at the input channel
	Subscribers map[string]SubscriberStats
}

// New creates a Feed. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		logger: logger,
		input:  make(chan model.DraftEvent, DefaultInputSize),
		subs:   make(map[string]*subscriber),
	}
}

// Subscribe registers a named consumer and returns its buffer. Calling
// Subscribe twice with the same name returns the same buffer. Events
// published before a subscription are not replayed.
func (f *Feed) Subscribe(name string) *Buffer[model.DraftEvent] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sub, ok := f.subs[name]; ok {
		return sub.buf
	}
	sub := &subscriber{buf: NewBuffer[model.DraftEvent](DefaultSubscriberCapacity)}
	f.subs[name] = sub
	return sub.buf
}

// Publish hands an event to the fan-out goroutine without blocking.
// Events are dropped, and counted, if the input channel is full.
func (f *Feed) Publish(ev model.DraftEvent) {
	select {
	case f.input <- ev:
		f.published.Add(1)
	default:
		f.dropped.Add(1)
		f.logger.Warn("feed input full, dropping event", "kind", ev.Kind, "seq", ev.Seq)
	}
}

// Start begins fanning out published events.
func (f *Feed) Start(ctx context.Context) error {
	f.ctx, f.cancel = context.WithCancel(ctx)

	f.wg.Add(1)
	go f.fanOut()

	f.mu.RLock()
	count := len(f.subs)
	f.mu.RUnlock()
	f.logger.Info("event feed started", "subscribers", count)
	return nil
}

// Stop drains any queued events, closes the subscriber buffers, and waits
// for the fan-out goroutine.
func (f *Feed) Stop(ctx context.Context) error {
	f.logger.Info("stopping event feed")

	if f.cancel != nil {
		f.cancel()
	}

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		f.logger.Info("event feed stopped")
	case <-ctx.Done():
		f.logger.Warn("event feed stop timed out")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, sub := range f.subs {
		sub.buf.Close()
	}
	return nil
}

// Stats returns current statistics.
func (f *Feed) Stats() FeedStats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	subs := make(map[string]SubscriberStats, len(f.subs))
	for name, sub := range f.subs {
		subs[name] = SubscriberStats{
			Buffer:  sub.buf.Stats(),
			Dropped: sub.dropped.Load(),
		}
	}
	return FeedStats{
		Published:   f.published.Load(),
		Dropped:     f.dropped.Load(),
		Subscribers: subs,
	}
}

// fanOut is the delivery goroutine. On shutdown it drains whatever is
// already queued so late events still reach the transcript.
func (f *Feed) fanOut() {
	defer f.wg.Done()

	for {
		select {
		case <-f.ctx.Done():
			for {
				select {
				case ev := <-f.input:
					f.deliver(ev)
				default:
					return
				}
			}
		case ev := <-f.input:
			f.deliver(ev)
		}
	}
}

// deliver hands one event to every subscriber.
func (f *Feed) deliver(ev model.DraftEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for name, sub := range f.subs {
		if !sub.buf.Send(ev) {
			sub.dropped.Add(1)
			f.logger.Warn("subscriber closed, dropping event", "subscriber", name, "seq", ev.Seq)
		}
	}
}
