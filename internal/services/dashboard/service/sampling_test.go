package service

import (
	"math"
	"testing"

	detdom "wildwatch/internal/services/detections/domain"
)

// TestLevelDistribution_ScalesSampleToPopulation checks the linear
// extrapolation and the sample-derived percentages on a clean split
func TestLevelDistribution_ScalesSampleToPopulation(t *testing.T) {
	t.Parallel()

	sample := append(dets(20, detdom.LevelHigh), dets(50, detdom.LevelMedium)...)
	sample = append(sample, dets(30, detdom.LevelLow)...)

	d := levelDistribution(sample, 1000)

	if d.SampleSize != 100 || d.Population != 1000 {
		t.Fatalf("sample size/population = %d/%d, want 100/1000", d.SampleSize, d.Population)
	}
	want := []struct {
		label  string
		scaled int64
		pct    float64
	}{
		{"medium", 500, 50},
		{"low", 300, 30},
		{"high", 200, 20},
	}
	if len(d.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(d.Entries), len(want))
	}
	for i, w := range want {
		e := d.Entries[i]
		if e.Label != w.label || e.ScaledCount != w.scaled || e.Percent != w.pct {
			t.Fatalf("entry[%d] = %+v, want label=%s scaled=%d pct=%v", i, e, w.label, w.scaled, w.pct)
		}
	}

	// chart colors follow the level ladder, not the sort order
	if d.Entries[0].Color != levelColors["medium"] {
		t.Fatalf("medium color = %q, want %q", d.Entries[0].Color, levelColors["medium"])
	}
}

// TestDistribute_PercentagesSumWithinRounding holds on uneven splits too
func TestDistribute_PercentagesSumWithinRounding(t *testing.T) {
	t.Parallel()

	sample := append(dets(1, detdom.LevelHigh), dets(1, detdom.LevelMedium)...)
	sample = append(sample, dets(1, detdom.LevelLow)...)

	d := levelDistribution(sample, 300)

	var sum float64
	for _, e := range d.Entries {
		sum += e.Percent
	}
	// three thirds round to 33.3 each; drift stays under one rounding step
	if math.Abs(sum-100) > 0.3 {
		t.Fatalf("percentages sum to %v, want 100 within rounding", sum)
	}
}

// TestDistribute_EmptySample emits no entries instead of dividing by zero
func TestDistribute_EmptySample(t *testing.T) {
	t.Parallel()

	d := levelDistribution(nil, 1000)

	if d.Entries == nil || len(d.Entries) != 0 {
		t.Fatalf("entries = %#v, want empty non nil slice", d.Entries)
	}
	if d.SampleSize != 0 || d.Population != 1000 {
		t.Fatalf("sample size/population = %d/%d, want 0/1000", d.SampleSize, d.Population)
	}
}

// TestDistribute_TieBreaksByLabel orders equal scaled counts alphabetically
func TestDistribute_TieBreaksByLabel(t *testing.T) {
	t.Parallel()

	sample := append(dets(1, detdom.LevelMedium), dets(1, detdom.LevelHigh)...)

	d := levelDistribution(sample, 10)

	if d.Entries[0].Label != "high" || d.Entries[1].Label != "medium" {
		t.Fatalf("tied labels ordered %q, %q; want high, medium", d.Entries[0].Label, d.Entries[1].Label)
	}
}

// TestCategoryDistribution_FoldsLabels merges case and spacing variants of
// the same category and groups unclassified records under uncategorized
func TestCategoryDistribution_FoldsLabels(t *testing.T) {
	t.Parallel()

	sample := []detdom.Detection{
		{Category: "Ivory"},
		{Category: "ivory"},
		{Category: "  IVORY  "},
		{Category: ""},
	}

	d := categoryDistribution(sample, 4)

	if len(d.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(d.Entries), d.Entries)
	}
	if d.Entries[0].Label != "ivory" || d.Entries[0].SampleCount != 3 {
		t.Fatalf("entry[0] = %+v, want ivory with 3 samples", d.Entries[0])
	}
	if d.Entries[1].Label != uncategorized || d.Entries[1].SampleCount != 1 {
		t.Fatalf("entry[1] = %+v, want %s with 1 sample", d.Entries[1], uncategorized)
	}

	// palette assignment follows sort rank
	if d.Entries[0].Color != categoryPalette[0] || d.Entries[1].Color != categoryPalette[1] {
		t.Fatalf("palette colors = %q, %q", d.Entries[0].Color, d.Entries[1].Color)
	}
}
