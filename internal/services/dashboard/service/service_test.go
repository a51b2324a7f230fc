package service

import (
	"reflect"
	"testing"

	"wildwatch/internal/platform/config"
)

// TestFromConfig_Defaults reads the engine knobs with nothing set
func TestFromConfig_Defaults(t *testing.T) {
	cfg := FromConfig(config.New())

	if !reflect.DeepEqual(cfg.Entities, []string{"ebay", "craigslist", "gumtree", "mercari", "taobao"}) {
		t.Fatalf("default entities = %v", cfg.Entities)
	}
	if cfg.SampleLimit != 2000 || cfg.ScoreSampleLimit != 500 || cfg.RangeScanLimit != 5000 {
		t.Fatalf("default limits = %+v", cfg)
	}
	if cfg.EntityWorkers != 4 || cfg.ReconcileTolerance != 100 {
		t.Fatalf("default workers/tolerance = %+v", cfg)
	}
}

// TestFromConfig_EnvOverrides picks up DASHBOARD_* values
func TestFromConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_ENTITIES", " jademarket , , riverport ")
	t.Setenv("DASHBOARD_SAMPLE_LIMIT", "250")
	t.Setenv("DASHBOARD_ENTITY_WORKERS", "8")

	cfg := FromConfig(config.New())

	if !reflect.DeepEqual(cfg.Entities, []string{"jademarket", "riverport"}) {
		t.Fatalf("entities = %v, want trimmed CSV without empties", cfg.Entities)
	}
	if cfg.SampleLimit != 250 || cfg.EntityWorkers != 8 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

// TestConfig_Normalized clamps nonsense knobs back to working values
func TestConfig_Normalized(t *testing.T) {
	t.Parallel()

	c := Config{SampleLimit: -1, ScoreSampleLimit: 0, RangeScanLimit: 0, EntityWorkers: 0, ReconcileTolerance: -5}
	n := c.normalized()

	if n.SampleLimit != 2000 || n.ScoreSampleLimit != 500 || n.RangeScanLimit != 5000 {
		t.Fatalf("limits not normalized: %+v", n)
	}
	if n.EntityWorkers != 1 || n.ReconcileTolerance != 0 {
		t.Fatalf("workers/tolerance not normalized: %+v", n)
	}
}
