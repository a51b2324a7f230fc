// Package domain defines the types and query ports for the detections store
package domain

import "time"

// ThreatLevel classifies a detection by assessed trafficking risk
// Levels are ordered; the housekeeping levels test and scan sit outside
// the severity ladder and never count as high severity
type ThreatLevel string

// Threat levels in ascending severity order plus housekeeping levels
const (
	LevelUnrated  ThreatLevel = "unrated"
	LevelLow      ThreatLevel = "low"
	LevelMedium   ThreatLevel = "medium"
	LevelHigh     ThreatLevel = "high"
	LevelCritical ThreatLevel = "critical"

	// bookkeeping rows produced by detector self-tests and platform scans
	LevelTest ThreatLevel = "test"
	LevelScan ThreatLevel = "scan"
)

// Rank returns the ladder position of a level, or -1 for housekeeping levels
func (l ThreatLevel) Rank() int {
	switch l {
	case LevelUnrated:
		return 0
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	case LevelCritical:
		return 4
	default:
		return -1
	}
}

// AtLeast reports whether l sits at or above min on the severity ladder
// housekeeping levels are never at least anything
func (l ThreatLevel) AtLeast(min ThreatLevel) bool {
	r := l.Rank()
	return r >= 0 && r >= min.Rank()
}

// HighSeverityLevels are the levels the dashboard counts as high severity
var HighSeverityLevels = []ThreatLevel{LevelHigh, LevelCritical}

// LevelsAtLeast returns the ladder levels at or above min in ascending order
// housekeeping levels are excluded
func LevelsAtLeast(min ThreatLevel) []ThreatLevel {
	ladder := []ThreatLevel{LevelUnrated, LevelLow, LevelMedium, LevelHigh, LevelCritical}
	r := min.Rank()
	if r < 0 {
		return nil
	}
	return ladder[r:]
}

// Detection is one observed trafficking-risk event from a monitored platform
// Records are written once by ingestion and immutable afterwards except for
// the human review workflow fields
type Detection struct {
	ID             string
	DetectedAt     time.Time
	Platform       string
	ThreatLevel    ThreatLevel
	ThreatScore    *float64 // 0..100, nil when unscored
	ListingPrice   *float64
	Category       string // empty when unclassified
	RequiresReview bool
	SearchTerm     string
}

// Filters restrict detection queries; zero values mean no restriction
// A filter applied to a snapshot restricts every sub-query identically
type Filters struct {
	Platform   string
	Category   string
	MinLevel   ThreatLevel // inclusive lower bound on the severity ladder
	Levels     []ThreatLevel
	SearchTerm string
	Review     *bool
}

// WithPlatform returns a copy of f scoped to one platform
func (f Filters) WithPlatform(p string) Filters {
	f.Platform = p
	return f
}

// WithLevels returns a copy of f restricted to the given levels
// any MinLevel restriction is replaced
func (f Filters) WithLevels(levels ...ThreatLevel) Filters {
	f.Levels = levels
	f.MinLevel = ""
	return f
}

// LevelSet resolves the effective level restriction as text values
// explicit Levels win over MinLevel; empty means no restriction
func (f Filters) LevelSet() []string {
	levels := f.Levels
	if len(levels) == 0 && f.MinLevel != "" {
		levels = LevelsAtLeast(f.MinLevel)
	}
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, string(l))
	}
	return out
}

// Window is a half-open time interval [Since, Until)
type Window struct {
	Since time.Time
	Until time.Time
}

// SampleOrder documents the ordering of a bounded sample
// The ordering biases any estimate derived from the sample, so every
// call site states which one it relies on
type SampleOrder int

const (
	// OrderUnspecified lets the store pick the cheapest plan
	OrderUnspecified SampleOrder = iota
	// OrderRecentFirst returns the newest records first
	OrderRecentFirst
)
