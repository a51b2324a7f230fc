package module

import (
	"context"

	"wildwatch/internal/services/dashboard/domain"
	dashsvc "wildwatch/internal/services/dashboard/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptDashboardPort struct{ svc dashsvc.Service }

// Snapshot produces one dashboard snapshot for the requested window
func (a adaptDashboardPort) Snapshot(ctx context.Context, in domain.SnapshotInput) (domain.Snapshot, error) {
	return a.svc.Snapshot(ctx, in)
}
