package module

import (
	"context"

	"wildwatch/internal/services/detections/domain"
	detsvc "wildwatch/internal/services/detections/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptDetectionsPort struct{ svc detsvc.Service }

// Recent returns the newest detections matching the input filters
func (a adaptDetectionsPort) Recent(ctx context.Context, in domain.RecentInput) ([]domain.Sample, error) {
	return a.svc.Recent(ctx, in)
}
