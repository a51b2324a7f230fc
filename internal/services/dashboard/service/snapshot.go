package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"wildwatch/internal/core/labels"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/services/dashboard/domain"
	detdom "wildwatch/internal/services/detections/domain"
)

// Snapshot orchestrator
//
// One refresh launches every sub-query concurrently, waits for all of
// them to settle, and merges the partial results afterwards; no two
// in-flight operations share mutable state. The authoritative total is
// the one mandatory query: when it fails the whole snapshot fails and no
// partial data is presented as fresh. Everything else degrades in place.
// Retry policy belongs to the caller; the engine never retries.

// Snapshot produces exactly one snapshot for the requested window
// Snapshots carry a strictly increasing Generation so a caller can
// discard a stale cycle that settles after a newer one
func (s *Svc) Snapshot(ctx context.Context, in domain.SnapshotInput) (domain.Snapshot, error) {
	id := uuid.NewString()
	gen := atomic.AddUint64(&s.gen, 1)
	now := timeNow().UTC()
	log := logger.C(ctx).With().
		Str("component", "dashboard").
		Str("snapshot_id", id).
		Uint64("generation", gen).
		Logger()

	base := detdom.Filters{
		Platform: in.Platform,
		Category: labels.Canon(in.Category),
	}
	rangeStart := seriesStart(in.Range, now)

	// independent result slots, one writer each
	var (
		total, today, high          int64
		totalErr, todayErr, highErr error

		sample    []detdom.Detection
		sampleErr error

		raw    []detdom.Detection
		rawErr error

		stats []domain.EntityStat
	)

	wg := sync.WaitGroup{}
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { total, totalErr = s.Store.Count(ctx, base) })
	run(func() { today, todayErr = s.Store.RangeCount(ctx, base, dayStart(now), now) })
	run(func() { high, highErr = s.Store.Count(ctx, base.WithLevels(detdom.HighSeverityLevels...)) })
	run(func() { stats = s.collectEntityStats(ctx, base, now) })
	run(func() {
		// recent-first sample feeds both distributions; the bias toward
		// recent records is deliberate and documented on the DTO
		sample, sampleErr = s.Store.Sample(ctx, base, detdom.OrderRecentFirst, s.Cfg.SampleLimit)
	})
	run(func() { raw, rawErr = s.seriesBackend().RangeSample(ctx, base, rangeStart, now, s.Cfg.RangeScanLimit) })
	wg.Wait()

	if totalErr != nil {
		log.Error().Err(totalErr).Msg("authoritative total failed; snapshot failed")
		return domain.Snapshot{
			ID:          id,
			GeneratedAt: now,
			Generation:  gen,
			State:       domain.StateFailed,
			EntityStats: []domain.EntityStat{},
			TimeSeries:  []domain.TimeBucket{},
			Err:         "authoritative total count failed: " + totalErr.Error(),
		}, nil
	}

	snap := domain.Snapshot{
		ID:              id,
		GeneratedAt:     now,
		Generation:      gen,
		State:           domain.StateOK,
		TotalDetections: total,
		EntityStats:     stats,
	}

	if todayErr != nil {
		log.Warn().Err(todayErr).Msg("today count failed; using 0")
		snap.State = domain.StateDegraded
	} else {
		snap.TodayDetections = today
	}
	if highErr != nil {
		log.Warn().Err(highErr).Msg("high priority count failed; using 0")
		snap.State = domain.StateDegraded
	} else {
		snap.HighPriorityCount = high
	}

	if sampleErr != nil {
		log.Warn().Err(sampleErr).Msg("distribution sample failed; emitting empty distributions")
		snap.ThreatLevels = domain.Distribution{Entries: []domain.DistributionEntry{}, Population: total, Degraded: true}
		snap.Categories = domain.Distribution{Entries: []domain.DistributionEntry{}, Population: total, Degraded: true}
		snap.State = domain.StateDegraded
	} else {
		snap.ThreatLevels = levelDistribution(sample, total)
		snap.Categories = categoryDistribution(sample, total)
	}

	if rawErr != nil {
		log.Warn().Err(rawErr).Msg("range sample failed; emitting zero buckets")
		snap.TimeSeries = buildSeries(in.Range, now, nil)
		snap.State = domain.StateDegraded
	} else {
		snap.TimeSeries = buildSeries(in.Range, now, raw)
	}

	var summed int64
	for _, st := range stats {
		if st.Degraded {
			snap.State = domain.StateDegraded
		}
		summed += st.TotalCount
	}
	snap.Reconcile = reconcile(total, summed, s.Cfg.ReconcileTolerance)
	if !snap.Reconcile.WithinTolerance {
		log.Warn().
			Int64("expected", total).
			Int64("summed", summed).
			Int64("tolerance", s.Cfg.ReconcileTolerance).
			Msg("entity sums drifted from authoritative total")
	}

	return snap, nil
}

// reconcile compares partial sums against the authoritative total
// records with an unknown platform legitimately fall outside every
// entity scope, hence the tolerance
func reconcile(expected, summed, tolerance int64) domain.Reconciliation {
	diff := expected - summed
	if diff < 0 {
		diff = -diff
	}
	return domain.Reconciliation{
		ExpectedTotal:      expected,
		SummedFromEntities: summed,
		Tolerance:          tolerance,
		WithinTolerance:    diff <= tolerance,
	}
}

// dayStart truncates to midnight UTC
func dayStart(t time.Time) time.Time { return t.UTC().Truncate(24 * time.Hour) }
