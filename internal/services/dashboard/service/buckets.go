package service

import (
	"fmt"
	"sort"
	"time"

	"wildwatch/internal/services/dashboard/domain"
	detdom "wildwatch/internal/services/detections/domain"
)

// Time bucketer
//
// Every expected bucket for the window exists in the output even when no
// record falls in it. Averages are derived from running sums at emit
// time; a pre-divided average would compound float error across
// incremental updates. A record whose timestamp falls outside the
// expected bucket set (clock skew, range edge off-by-one) is dropped
// without failing the pass.

// bucketKey maps a timestamp onto its bucket label
// hourly windows key by zero-padded hour of day, daily windows by ISO date
func bucketKey(ts time.Time, hourly bool) string {
	ts = ts.UTC()
	if hourly {
		return fmt.Sprintf("%02d:00", ts.Hour())
	}
	return ts.Format("2006-01-02")
}

// seriesStart aligns the window start for a range ending at now
func seriesStart(rng domain.TimeRange, now time.Time) time.Time {
	now = now.UTC()
	if rng.Hourly() {
		hours := int(rng.Duration() / time.Hour)
		return now.Truncate(time.Hour).Add(-time.Duration(hours-1) * time.Hour)
	}
	days := int(rng.Duration() / (24 * time.Hour))
	day := now.Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -(days - 1))
}

// buildSeries folds records into the pre-populated bucket set for rng
func buildSeries(rng domain.TimeRange, now time.Time, records []detdom.Detection) []domain.TimeBucket {
	hourly := rng.Hourly()
	start := seriesStart(rng, now)

	// pre-populate every expected bucket with zero values
	buckets := make(map[string]*domain.TimeBucket)
	if hourly {
		n := int(rng.Duration() / time.Hour)
		for i := 0; i < n; i++ {
			k := bucketKey(start.Add(time.Duration(i)*time.Hour), true)
			buckets[k] = &domain.TimeBucket{Key: k}
		}
	} else {
		n := int(rng.Duration() / (24 * time.Hour))
		for i := 0; i < n; i++ {
			k := bucketKey(start.AddDate(0, 0, i), false)
			buckets[k] = &domain.TimeBucket{Key: k}
		}
	}

	for _, d := range records {
		b, ok := buckets[bucketKey(d.DetectedAt, hourly)]
		if !ok {
			continue // outside the expected bucket set
		}
		b.Count++
		if d.ThreatScore != nil {
			b.ScoreSum += *d.ThreatScore
			b.ScoreCount++
		}
	}

	out := make([]domain.TimeBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.ScoreCount > 0 {
			b.AvgScore = b.ScoreSum / float64(b.ScoreCount)
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
