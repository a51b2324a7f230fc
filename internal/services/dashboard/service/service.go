// Package service contains the dashboard aggregation engine
package service

import (
	"strings"
	"time"

	"wildwatch/internal/modkit/repokit"
	"wildwatch/internal/platform/config"
	"wildwatch/internal/services/dashboard/domain"
	detdom "wildwatch/internal/services/detections/domain"
)

// timeNow is a seam for tests
var timeNow = time.Now

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Config holds the engine knobs
// Entities is the fixed set of monitored platforms; every other knob
// bounds the cost of one refresh
type Config struct {
	Entities           []string
	SampleLimit        int   // distribution sample cap
	ScoreSampleLimit   int   // per-entity score sample cap
	RangeScanLimit     int   // time series raw scan cap
	EntityWorkers      int   // bounded fan-out across entities
	ReconcileTolerance int64 // allowed drift between partial sums and the authoritative total
}

// FromConfig reads engine knobs from the DASHBOARD_* namespace
func FromConfig(cfg config.Conf) Config {
	d := cfg.Prefix("DASHBOARD_")
	return Config{
		Entities:           splitCSV(d.MayString("ENTITIES", "ebay,craigslist,gumtree,mercari,taobao")),
		SampleLimit:        d.MayInt("SAMPLE_LIMIT", 2000),
		ScoreSampleLimit:   d.MayInt("SCORE_SAMPLE_LIMIT", 500),
		RangeScanLimit:     d.MayInt("RANGE_SCAN_LIMIT", 5000),
		EntityWorkers:      d.MayInt("ENTITY_WORKERS", 4),
		ReconcileTolerance: int64(d.MayInt("RECONCILE_TOLERANCE", 100)),
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalized returns cfg with invalid knobs replaced by sane bounds
func (c Config) normalized() Config {
	if c.SampleLimit <= 0 {
		c.SampleLimit = 2000
	}
	if c.ScoreSampleLimit <= 0 {
		c.ScoreSampleLimit = 500
	}
	if c.RangeScanLimit <= 0 {
		c.RangeScanLimit = 5000
	}
	if c.EntityWorkers <= 0 {
		c.EntityWorkers = 1
	}
	if c.ReconcileTolerance < 0 {
		c.ReconcileTolerance = 0
	}
	return c
}

// Svc implements the dashboard service
// The detections store is injected; the Svc holds no other state beyond
// the refresh generation counter
type Svc struct {
	Store detdom.QueryPort
	Cfg   Config

	// Series optionally serves the time series raw scans from a columnar
	// mirror; nil falls back to Store
	Series detdom.RangePort

	gen uint64 // monotonic refresh generation, atomic
}

// New constructs a dashboard service bound to the shared store
func New(db repokit.TxRunner, binder repokit.Binder[detdom.QueryPort], cfg Config) *Svc {
	if db == nil {
		panic("dashboard.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("dashboard.Service requires a non nil store binder")
	}
	return NewWithStore(binder.Bind(db), cfg)
}

// NewWithStore constructs a dashboard service over any query port
func NewWithStore(store detdom.QueryPort, cfg Config) *Svc {
	if store == nil {
		panic("dashboard.Service requires a non nil QueryPort")
	}
	return &Svc{Store: store, Cfg: cfg.normalized()}
}

// seriesBackend resolves the backend for windowed raw scans
func (s *Svc) seriesBackend() detdom.RangePort {
	if s.Series != nil {
		return s.Series
	}
	return s.Store
}
