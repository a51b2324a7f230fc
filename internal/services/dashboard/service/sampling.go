package service

import (
	"math"
	"sort"

	"wildwatch/internal/core/labels"
	"wildwatch/internal/services/dashboard/domain"
	detdom "wildwatch/internal/services/detections/domain"
)

// Sampling aggregator
//
// Scaled counts are a linear extrapolation of a bounded recent-first
// sample and carry the sample's recency bias; they are estimates, not
// exact counts. Percentages come from the raw sample so rounding of the
// scaled counts cannot compound into them.

// levelColors are the chart hints for the threat level ladder
var levelColors = map[string]string{
	string(detdom.LevelUnrated):  "#8b8d98",
	string(detdom.LevelLow):      "#46a758",
	string(detdom.LevelMedium):   "#ffb224",
	string(detdom.LevelHigh):     "#f76b15",
	string(detdom.LevelCritical): "#e5484d",
	string(detdom.LevelTest):     "#5a5e6b",
	string(detdom.LevelScan):     "#5a5e6b",
}

// categoryPalette cycles for category slices in ScaledCount order
var categoryPalette = []string{
	"#3e63dd", "#30a46c", "#ffb224", "#e5484d", "#8e4ec6", "#05a2c2", "#f76b15",
}

// uncategorized groups records whose category folds to empty
const uncategorized = "uncategorized"

// levelDistribution groups a sample by threat level and scales to population
func levelDistribution(sample []detdom.Detection, population int64) domain.Distribution {
	return distribute(sample, population,
		func(d detdom.Detection) string { return string(d.ThreatLevel) },
		func(label string, _ int) string { return levelColors[label] },
	)
}

// categoryDistribution groups a sample by canonical category and scales
// to population; labels never seen before still appear using their
// folded text
func categoryDistribution(sample []detdom.Detection, population int64) domain.Distribution {
	return distribute(sample, population,
		func(d detdom.Detection) string { return labels.CanonOr(d.Category, uncategorized) },
		func(_ string, i int) string { return categoryPalette[i%len(categoryPalette)] },
	)
}

// distribute implements the shared count-scale-sort pass
// every record contributes to exactly one label, so sample percentages
// always sum to 100 within rounding
func distribute(
	sample []detdom.Detection,
	population int64,
	label func(detdom.Detection) string,
	color func(label string, rank int) string,
) domain.Distribution {
	n := len(sample)
	if n == 0 {
		// scale factor is undefined on an empty sample
		return domain.Distribution{Entries: []domain.DistributionEntry{}, Population: population}
	}

	counts := make(map[string]int64, 8)
	for _, d := range sample {
		counts[label(d)]++
	}

	scale := float64(population) / float64(n)
	entries := make([]domain.DistributionEntry, 0, len(counts))
	for lbl, c := range counts {
		entries = append(entries, domain.DistributionEntry{
			Label:       lbl,
			SampleCount: c,
			ScaledCount: int64(math.Round(float64(c) * scale)),
			Percent:     roundPct(float64(c) / float64(n) * 100),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ScaledCount != entries[j].ScaledCount {
			return entries[i].ScaledCount > entries[j].ScaledCount
		}
		return entries[i].Label < entries[j].Label
	})
	for i := range entries {
		entries[i].Color = color(entries[i].Label, i)
	}

	return domain.Distribution{Entries: entries, SampleSize: n, Population: population}
}

// roundPct rounds to one decimal place
func roundPct(p float64) float64 { return math.Round(p*10) / 10 }
