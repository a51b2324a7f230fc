// Package domain holds DTOs for dashboard http and service contracts
package domain

import "time"

// TimeRange names one of the selectable dashboard windows
type TimeRange string

// Selectable ranges; anything at or under 24 hours buckets hourly,
// longer ranges bucket by calendar day
const (
	RangeHour     TimeRange = "1h"
	RangeSixHours TimeRange = "6h"
	RangeDay      TimeRange = "24h"
	RangeWeek     TimeRange = "7d"
	RangeMonth    TimeRange = "30d"
	RangeQuarter  TimeRange = "90d"
)

// Duration returns the window length, defaulting to 24h for unknown input
func (r TimeRange) Duration() time.Duration {
	switch r {
	case RangeHour:
		return time.Hour
	case RangeSixHours:
		return 6 * time.Hour
	case RangeDay:
		return 24 * time.Hour
	case RangeWeek:
		return 7 * 24 * time.Hour
	case RangeMonth:
		return 30 * 24 * time.Hour
	case RangeQuarter:
		return 90 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Hourly reports whether the range buckets by hour instead of by day
func (r TimeRange) Hourly() bool { return r.Duration() <= 24*time.Hour }

// SnapshotInput selects the window and optional filters for one refresh
// Filters restrict every sub-query of the snapshot identically
type SnapshotInput struct {
	Range    TimeRange `json:"range" validate:"required,oneof=1h 6h 24h 7d 30d 90d" example:"24h"`
	Platform string    `json:"platform,omitempty" validate:"omitempty,min=1,max=100" example:"jademarket"`
	Category string    `json:"category,omitempty" validate:"omitempty,min=1,max=100" example:"ivory"`
}

// DistributionEntry is one labeled bucket of a categorical distribution
// ScaledCount extrapolates the sample count to the full population and is
// approximate; Percent is computed from the sample, not the scaled counts
type DistributionEntry struct {
	Label       string  `json:"label" example:"high"`
	SampleCount int64   `json:"sample_count" example:"20"`
	ScaledCount int64   `json:"scaled_count" example:"200"`
	Percent     float64 `json:"percent" example:"20"`
	Color       string  `json:"color,omitempty" example:"#e5484d"`
}

// Distribution is a categorical breakdown estimated from a bounded sample
// Entries are sorted descending by ScaledCount; labels absent from the
// sample are omitted
type Distribution struct {
	Entries    []DistributionEntry `json:"entries"`
	SampleSize int                 `json:"sample_size" example:"100"`
	Population int64               `json:"population" example:"1000"`
	Degraded   bool                `json:"degraded,omitempty"`
}

// TimeBucket is one fixed-width interval of the dashboard time series
type TimeBucket struct {
	Key        string  `json:"key" example:"14:00"`
	Count      int64   `json:"count" example:"42"`
	ScoreSum   float64 `json:"-"`
	ScoreCount int64   `json:"-"`
	AvgScore   float64 `json:"avg_score" example:"61.5"`
}

// EntityStat summarizes one monitored platform
// Counts are exact; AvgScore is estimated from a bounded sample
// Degraded marks stats where a sub-query failed and a default was used
type EntityStat struct {
	Entity            string  `json:"entity" example:"jademarket"`
	TotalCount        int64   `json:"total_count" example:"4210"`
	HighSeverityCount int64   `json:"high_severity_count" example:"312"`
	RecentCount       int64   `json:"recent_count" example:"87"`
	AvgScore          float64 `json:"avg_score" example:"54.2"`
	Degraded          bool    `json:"degraded,omitempty"`
}

// Reconciliation records how the per-entity partial sums compare against
// the authoritative unscoped total; a mismatch is a warning, never an error
type Reconciliation struct {
	ExpectedTotal      int64 `json:"expected_total" example:"1000"`
	SummedFromEntities int64 `json:"summed_from_entities" example:"950"`
	Tolerance          int64 `json:"tolerance" example:"100"`
	WithinTolerance    bool  `json:"within_tolerance" example:"true"`
}

// Snapshot states
const (
	StateOK       = "ok"
	StateDegraded = "degraded"
	StateFailed   = "failed"
)

// Snapshot is the immutable artifact of one refresh cycle
// A failed snapshot carries only provenance, State, and Err; no partial
// numeric fields are populated as if they were valid
type Snapshot struct {
	ID          string    `json:"id" example:"0c1c3f62-9f3e-4a44-9b0a-6a2e5cafd3b1"`
	GeneratedAt time.Time `json:"generated_at"`
	Generation  uint64    `json:"generation" example:"17"`
	State       string    `json:"state" example:"ok"`

	TotalDetections   int64 `json:"total_detections" example:"12840"`
	TodayDetections   int64 `json:"today_detections" example:"211"`
	HighPriorityCount int64 `json:"high_priority_count" example:"96"`

	EntityStats  []EntityStat   `json:"entity_stats"`
	ThreatLevels Distribution   `json:"threat_levels"`
	Categories   Distribution   `json:"categories"`
	TimeSeries   []TimeBucket   `json:"time_series"`
	Reconcile    Reconciliation `json:"reconciliation"`

	Err string `json:"error,omitempty"`
}

// Failed reports whether the snapshot carries no usable data
func (s Snapshot) Failed() bool { return s.State == StateFailed }
