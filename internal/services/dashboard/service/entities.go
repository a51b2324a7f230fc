package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"wildwatch/internal/platform/logger"
	"wildwatch/internal/services/dashboard/domain"
	detdom "wildwatch/internal/services/detections/domain"
)

// Per-entity stat collector
//
// Each entity gets one set of four store queries. A failed query falls
// back to its documented default (counts 0, average score the midpoint of
// the valid 0..100 range) and flips Degraded for that entity only;
// neither the other queries for the entity nor the other entities are
// affected.

const (
	// defaultAvgScore substitutes for a failed score sample, midpoint of 0..100
	defaultAvgScore = 50

	// recentWindow is the trailing activity window per entity
	recentWindow = 24 * time.Hour
)

// collectEntityStats fans out across the configured entities with
// bounded parallelism and returns stats sorted descending by TotalCount
func (s *Svc) collectEntityStats(ctx context.Context, base detdom.Filters, now time.Time) []domain.EntityStat {
	out := make([]domain.EntityStat, len(s.Cfg.Entities))

	sem := make(chan struct{}, s.Cfg.EntityWorkers)
	wg := sync.WaitGroup{}
	for i := range s.Cfg.Entities {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			entity := s.Cfg.Entities[i]
			out[i] = s.entityStat(ctx, base.WithPlatform(entity), entity, now)
		}(i)
	}
	wg.Wait()

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalCount > out[j].TotalCount })
	return out
}

// entityStat issues the four queries for one entity
func (s *Svc) entityStat(ctx context.Context, f detdom.Filters, entity string, now time.Time) domain.EntityStat {
	log := logger.C(ctx).With().Str("component", "dashboard").Str("entity", entity).Logger()
	st := domain.EntityStat{Entity: entity}

	if n, err := s.Store.Count(ctx, f); err != nil {
		log.Warn().Err(err).Msg("entity total count failed; using 0")
		st.Degraded = true
	} else {
		st.TotalCount = n
	}

	if n, err := s.Store.Count(ctx, f.WithLevels(detdom.HighSeverityLevels...)); err != nil {
		log.Warn().Err(err).Msg("entity high severity count failed; using 0")
		st.Degraded = true
	} else {
		st.HighSeverityCount = n
	}

	if n, err := s.Store.RangeCount(ctx, f, now.Add(-recentWindow), now); err != nil {
		log.Warn().Err(err).Msg("entity recent count failed; using 0")
		st.Degraded = true
	} else {
		st.RecentCount = n
	}

	// recent-first sample keeps the estimate biased toward current activity
	if sample, err := s.Store.Sample(ctx, f, detdom.OrderRecentFirst, s.Cfg.ScoreSampleLimit); err != nil {
		log.Warn().Err(err).Msg("entity score sample failed; using midpoint")
		st.AvgScore = defaultAvgScore
		st.Degraded = true
	} else {
		st.AvgScore = meanScore(sample)
	}

	return st
}

// meanScore averages the scored records of a sample; unscored records do
// not drag the average down, and a fully unscored sample averages to 0
func meanScore(sample []detdom.Detection) float64 {
	var sum float64
	var n int64
	for _, d := range sample {
		if d.ThreatScore != nil {
			sum += *d.ThreatScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
