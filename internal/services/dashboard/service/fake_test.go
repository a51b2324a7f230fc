package service

import (
	"context"
	"time"

	detdom "wildwatch/internal/services/detections/domain"
)

// fakeStore implements the detections query port with per-call hooks.
// Unset hooks return zero values so tests only wire what they assert on
type fakeStore struct {
	count       func(ctx context.Context, f detdom.Filters) (int64, error)
	rangeCount  func(ctx context.Context, f detdom.Filters, since, until time.Time) (int64, error)
	sample      func(ctx context.Context, f detdom.Filters, order detdom.SampleOrder, limit int) ([]detdom.Detection, error)
	rangeSample func(ctx context.Context, f detdom.Filters, since, until time.Time, limit int) ([]detdom.Detection, error)
}

var _ detdom.QueryPort = (*fakeStore)(nil)

func (s *fakeStore) Count(ctx context.Context, f detdom.Filters) (int64, error) {
	if s.count == nil {
		return 0, nil
	}
	return s.count(ctx, f)
}

func (s *fakeStore) RangeCount(ctx context.Context, f detdom.Filters, since, until time.Time) (int64, error) {
	if s.rangeCount == nil {
		return 0, nil
	}
	return s.rangeCount(ctx, f, since, until)
}

func (s *fakeStore) Sample(
	ctx context.Context, f detdom.Filters, order detdom.SampleOrder, limit int,
) ([]detdom.Detection, error) {
	if s.sample == nil {
		return nil, nil
	}
	return s.sample(ctx, f, order, limit)
}

func (s *fakeStore) RangeSample(
	ctx context.Context, f detdom.Filters, since, until time.Time, limit int,
) ([]detdom.Detection, error) {
	if s.rangeSample == nil {
		return nil, nil
	}
	return s.rangeSample(ctx, f, since, until, limit)
}

// score is sugar for optional threat scores in fixtures
func score(v float64) *float64 { return &v }

// dets builds n copies of a minimal detection at the given level
func dets(n int, level detdom.ThreatLevel) []detdom.Detection {
	out := make([]detdom.Detection, n)
	for i := range out {
		out[i] = detdom.Detection{ThreatLevel: level}
	}
	return out
}

// testConfig keeps engine knobs small and deterministic in tests
func testConfig(entities ...string) Config {
	return Config{
		Entities:           entities,
		SampleLimit:        100,
		ScoreSampleLimit:   50,
		RangeScanLimit:     500,
		EntityWorkers:      2,
		ReconcileTolerance: 100,
	}
}
