// Package repo provides postgres access to the detections log
package repo

import (
	"context"
	"time"

	"wildwatch/internal/modkit/repokit"
	"wildwatch/internal/platform/store"
	"wildwatch/internal/services/detections/domain"
)

type (
	// PG is a binder that can bind the query port to a Queryer or TxRunner
	PG struct{}
	// queries implements domain.QueryPort
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the detections query port
func NewPG() repokit.Binder[domain.QueryPort] { return PG{} }

// Bind wires a Queryer to the query port
func (PG) Bind(q repokit.Queryer) domain.QueryPort { return &queries{q: q} }

const detectionCols = `
id::text, detected_at, platform, threat_level::text, threat_score,
listing_price, coalesce(category, ''), requires_review, search_term
`

// filterSQL is shared by every query; args order is fixed
// $1 platform $2 category $3 levels $4 search term $5 review flag
const filterSQL = `
($1 = '' or platform = $1)
and ($2 = '' or category = $2)
and (cardinality($3::text[]) = 0 or threat_level::text = any($3))
and ($4 = '' or search_term = $4)
and ($5::bool is null or requires_review = $5)
`

func filterArgs(f domain.Filters) []any {
	var review any
	if f.Review != nil {
		review = *f.Review
	}
	return []any{f.Platform, f.Category, f.LevelSet(), f.SearchTerm, review}
}

func (r *queries) Count(ctx context.Context, f domain.Filters) (int64, error) {
	const sql = `select count(*) from detections where ` + filterSQL
	return store.Scalar[int64](ctx, r.q, sql, filterArgs(f)...)
}

func (r *queries) RangeCount(ctx context.Context, f domain.Filters, since, until time.Time) (int64, error) {
	const sql = `select count(*) from detections where ` + filterSQL +
		` and detected_at >= $6 and detected_at < $7`
	args := append(filterArgs(f), since, until)
	return store.Scalar[int64](ctx, r.q, sql, args...)
}

func (r *queries) Sample(
	ctx context.Context,
	f domain.Filters,
	order domain.SampleOrder,
	limit int,
) ([]domain.Detection, error) {
	if limit <= 0 {
		limit = 1000
	}
	sql := `select ` + detectionCols + ` from detections where ` + filterSQL
	if order == domain.OrderRecentFirst {
		sql += ` order by detected_at desc`
	}
	sql += ` limit $6`

	args := append(filterArgs(f), limit)
	return r.scanMany(ctx, sql, args...)
}

func (r *queries) RangeSample(
	ctx context.Context,
	f domain.Filters,
	since, until time.Time,
	limit int,
) ([]domain.Detection, error) {
	if limit <= 0 {
		limit = 5000
	}
	sql := `select ` + detectionCols + ` from detections where ` + filterSQL +
		` and detected_at >= $6 and detected_at < $7
order by detected_at desc
limit $8`

	args := append(filterArgs(f), since, until, limit)
	return r.scanMany(ctx, sql, args...)
}

func (r *queries) scanMany(ctx context.Context, sql string, args ...any) ([]domain.Detection, error) {
	return store.Many(ctx, r.q, scanDetection, sql, args...)
}

// scanDetection maps one row in detectionCols order
func scanDetection(row store.Row) (domain.Detection, error) {
	var d domain.Detection
	var level string
	if err := row.Scan(
		&d.ID,
		&d.DetectedAt,
		&d.Platform,
		&level,
		&d.ThreatScore,
		&d.ListingPrice,
		&d.Category,
		&d.RequiresReview,
		&d.SearchTerm,
	); err != nil {
		return domain.Detection{}, err
	}
	d.ThreatLevel = domain.ThreatLevel(level)
	return d, nil
}
