// Package service contains detections workflows
package service

import (
	"context"
	"time"

	"wildwatch/internal/modkit/repokit"
	"wildwatch/internal/services/detections/domain"
)

// Service defines the detections service contract
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Store  domain.QueryPort
	binder repokit.Binder[domain.QueryPort]
	db     repokit.TxRunner
}

// New creates a new detections service
func New(db repokit.TxRunner, binder repokit.Binder[domain.QueryPort]) *Svc {
	if db == nil {
		panic("detections.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("detections.Service requires a non nil store binder")
	}
	return &Svc{Store: binder.Bind(db), binder: binder, db: db}
}

// Recent retrieves the newest detections matching the input filters
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) ([]domain.Sample, error) {
	limit := in.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	f := domain.Filters{
		Platform: in.Platform,
		Category: in.Category,
		Review:   in.Review,
	}
	if in.Level != "" {
		f.Levels = []domain.ThreatLevel{domain.ThreatLevel(in.Level)}
	}

	rows, err := s.Store.Sample(ctx, f, domain.OrderRecentFirst, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sample, 0, len(rows))
	for _, d := range rows {
		out = append(out, domain.Sample{
			ID:           d.ID,
			DetectedAt:   d.DetectedAt.UTC().Format(time.RFC3339),
			Platform:     d.Platform,
			ThreatLevel:  string(d.ThreatLevel),
			ThreatScore:  d.ThreatScore,
			ListingPrice: d.ListingPrice,
			Category:     d.Category,
			Review:       d.RequiresReview,
			SearchTerm:   d.SearchTerm,
		})
	}
	return out, nil
}
