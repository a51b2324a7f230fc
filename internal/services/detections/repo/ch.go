package repo

import (
	"context"
	"strings"
	"time"

	"wildwatch/internal/platform/store"
	"wildwatch/internal/services/detections/domain"
)

// chQueries serves the windowed read surface from the columnar detections
// mirror; the mirror trails the primary by ingestion lag, which the
// dashboard tolerates the same way it tolerates sampling error
type chQueries struct{ db store.Clickhouse }

// NewCH returns a range query backend over the columnar mirror
func NewCH(db store.Clickhouse) domain.RangePort {
	if db == nil {
		panic("detections: NewCH requires a non nil clickhouse seam")
	}
	return &chQueries{db: db}
}

// chFilter builds the WHERE tail for f; clickhouse-go binds positionally
func chFilter(f domain.Filters) (string, []any) {
	conds := []string{"detected_at >= ?", "detected_at < ?"}
	var args []any

	if f.Platform != "" {
		conds = append(conds, "platform = ?")
		args = append(args, f.Platform)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if levels := f.LevelSet(); len(levels) > 0 {
		ph := strings.TrimSuffix(strings.Repeat("?,", len(levels)), ",")
		conds = append(conds, "threat_level in ("+ph+")")
		for _, l := range levels {
			args = append(args, l)
		}
	}
	if f.SearchTerm != "" {
		conds = append(conds, "search_term = ?")
		args = append(args, f.SearchTerm)
	}
	if f.Review != nil {
		conds = append(conds, "requires_review = ?")
		args = append(args, *f.Review)
	}

	return strings.Join(conds, " and "), args
}

func (r *chQueries) RangeCount(ctx context.Context, f domain.Filters, since, until time.Time) (int64, error) {
	where, args := chFilter(f)
	sql := "select toInt64(count()) from detections where " + where
	args = append([]any{since, until}, args...)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}

func (r *chQueries) RangeSample(
	ctx context.Context,
	f domain.Filters,
	since, until time.Time,
	limit int,
) ([]domain.Detection, error) {
	if limit <= 0 {
		limit = 5000
	}
	where, args := chFilter(f)
	sql := `select id, detected_at, platform, threat_level, threat_score,
listing_price, category, requires_review, search_term
from detections where ` + where + `
order by detected_at desc
limit ?`
	args = append([]any{since, until}, args...)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Detection
	for rows.Next() {
		var d domain.Detection
		var level string
		if err := rows.Scan(
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
			return nil, err
		}
		d.ThreatLevel = domain.ThreatLevel(level)
		out = append(out, d)
	}
	return out, rows.Err()
}
