package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wildwatch/internal/platform/testkit"
	"wildwatch/internal/services/detections/domain"
)

// fakePort captures the last Sample call and plays back fixtures
type fakePort struct {
	filters domain.Filters
	order   domain.SampleOrder
	limit   int

	out []domain.Detection
	err error
}

var _ domain.QueryPort = (*fakePort)(nil)

func (f *fakePort) Count(context.Context, domain.Filters) (int64, error) { return 0, nil }

func (f *fakePort) RangeCount(context.Context, domain.Filters, time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakePort) Sample(
	_ context.Context, filters domain.Filters, order domain.SampleOrder, limit int,
) ([]domain.Detection, error) {
	f.filters, f.order, f.limit = filters, order, limit
	return f.out, f.err
}

func (f *fakePort) RangeSample(
	context.Context, domain.Filters, time.Time, time.Time, int,
) ([]domain.Detection, error) {
	return nil, nil
}

// TestRecent_MapsRowsToSamples shapes store rows for the UI table
func TestRecent_MapsRowsToSamples(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 14, 9, 15, 0, 0, time.UTC)
	sc := 87.5
	port := &fakePort{out: []domain.Detection{{
		ID:             "d-1",
		DetectedAt:     at,
		Platform:       "ebay",
		ThreatLevel:    domain.LevelHigh,
		ThreatScore:    &sc,
		Category:       "ivory",
		RequiresReview: true,
		SearchTerm:     "carved tusk",
	}}}
	svc := &Svc{Store: port}

	out, err := svc.Recent(context.Background(), domain.RecentInput{})
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d samples, want 1", len(out))
	}
	s := out[0]
	if s.ID != "d-1" || s.ThreatLevel != "high" || s.DetectedAt != "2026-03-14T09:15:00Z" {
		t.Fatalf("sample = %+v", s)
	}
	if s.ThreatScore == nil || *s.ThreatScore != 87.5 || !s.Review {
		t.Fatalf("sample = %+v", s)
	}

	if port.order != domain.OrderRecentFirst {
		t.Fatalf("order = %v, want recent first", port.order)
	}
	if port.limit != 50 {
		t.Fatalf("default limit = %d, want 50", port.limit)
	}
}

// TestRecent_FilterWiring translates input fields onto store filters
func TestRecent_FilterWiring(t *testing.T) {
	t.Parallel()

	review := true
	port := &fakePort{}
	svc := &Svc{Store: port}

	_, err := svc.Recent(context.Background(), domain.RecentInput{
		Platform: "mercari",
		Category: "pangolin scales",
		Level:    "critical",
		Review:   &review,
		Limit:    25,
	})
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}

	f := port.filters
	if f.Platform != "mercari" || f.Category != "pangolin scales" {
		t.Fatalf("filters = %+v", f)
	}
	if len(f.Levels) != 1 || f.Levels[0] != domain.LevelCritical {
		t.Fatalf("level filter = %+v", f.Levels)
	}
	if f.Review == nil || !*f.Review {
		t.Fatalf("review filter = %+v", f.Review)
	}
	if port.limit != 25 {
		t.Fatalf("limit = %d, want 25", port.limit)
	}
}

// TestRecent_ClampsLimit rejects zero and oversized limits
func TestRecent_ClampsLimit(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	svc := &Svc{Store: port}

	for _, bad := range []int{0, -1, 1000} {
		if _, err := svc.Recent(context.Background(), domain.RecentInput{Limit: bad}); err != nil {
			t.Fatalf("Recent(%d) returned error: %v", bad, err)
		}
		if port.limit != 50 {
			t.Fatalf("limit %d clamped to %d, want 50", bad, port.limit)
		}
	}
}

// TestRecent_BubblesStoreError leaves retry policy to the caller
func TestRecent_BubblesStoreError(t *testing.T) {
	t.Parallel()

	svc := &Svc{Store: &fakePort{err: errors.New("replica lag")}}

	if _, err := svc.Recent(context.Background(), domain.RecentInput{}); err == nil {
		t.Fatalf("expected store error to bubble")
	}
}

// TestNew_PanicsOnNil guards construction
func TestNew_PanicsOnNil(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { New(nil, nil) })
}
