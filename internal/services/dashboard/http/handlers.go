// Package http provides http transport for the dashboard
package http

import (
	stdhttp "net/http"

	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/dashboard/domain"
	svc "wildwatch/internal/services/dashboard/service"
)

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// one snapshot per refresh request
	httpkit.PostJSON[domain.SnapshotInput](r, "/snapshot", h.snapshot)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /dashboard/snapshot Dashboard dashboardSnapshot
// @Summary Dashboard snapshot for a time range
// @Description Fans out the engine sub-queries and returns one snapshot; a degraded snapshot is still usable, a failed one carries only the error
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body domain.SnapshotInput true "Window and filters"
// @Success 200 {object} domain.Snapshot "ok"
// @Router /dashboard/snapshot [post]
func (h *handlers) snapshot(r *stdhttp.Request, in domain.SnapshotInput) (any, error) {
	return h.svc.Snapshot(r.Context(), in)
}
