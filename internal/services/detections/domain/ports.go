package domain

import (
	"context"
	"time"
)

// QueryPort is the read surface the aggregation engine depends on
// Implementations must assume any single call may be slow or fail;
// callers own fallbacks and never see partial rows
type QueryPort interface {
	RangePort

	// Count returns the exact number of detections matching f
	Count(ctx context.Context, f Filters) (int64, error)

	// Sample returns at most limit detections matching f in the given order
	Sample(ctx context.Context, f Filters, order SampleOrder, limit int) ([]Detection, error)
}

// RangePort is the windowed slice of the read surface
// A columnar mirror can serve it independently of the primary store
type RangePort interface {
	// RangeCount returns the exact number of detections matching f with
	// DetectedAt in [since, until)
	RangeCount(ctx context.Context, f Filters, since, until time.Time) (int64, error)

	// RangeSample returns at most limit detections matching f with
	// DetectedAt in [since, until), newest first
	RangeSample(ctx context.Context, f Filters, since, until time.Time, limit int) ([]Detection, error)
}
