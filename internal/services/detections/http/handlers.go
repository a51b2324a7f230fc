// Package http provides http transport for detections
package http

import (
	stdhttp "net/http"

	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/detections/domain"
	svc "wildwatch/internal/services/detections/service"
)

// Register mounts detection endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /detections/recent Detections detectionsRecent
// @Summary Recent detections for the dashboard table
// @Tags Detections
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Query"
// @Success 200 {array} domain.Sample "ok"
// @Router /detections/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	return h.svc.Recent(r.Context(), in)
}
