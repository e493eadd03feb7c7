package writer

import (
	"time"

	"github.com/google/uuid"
)

// WriterConfig contains configuration for the batch database writers.
type WriterConfig struct {
	// BatchSize is the number of rows to accumulate before flushing.
	BatchSize int

	// FlushInterval is the maximum time between flushes.
	FlushInterval time.Duration
}

// DefaultWriterConfig returns defaults sized for draft volume, which is
// conversational rather than firehose.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:     50,
		FlushInterval: 2 * time.Second,
	}
}

// saleRow represents a row for the draft_sales table.
type saleRow struct {
	DraftID  uuid.UUID
	Item     string
	Position string
	Team     string
	Price    int
	TS       int64 // Microseconds
}

// WriterMetrics holds metrics for a writer.
type WriterMetrics struct {
	Inserts   int64
	Conflicts int64
	Errors    int64
	Flushes   int64
}
