package http

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/response"
)

type DashboardHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
	Activities(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	activityService  activity.Service
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, activityService activity.Service) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService: dashboardService,
		activityService:  activityService,
	}
}

// Stats implements DashboardHandler.
func (h *DashboardHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	stats, err := h.dashboardService.Stats(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, stats)
}

// Activities returns the caller's recent feed; ?limit= defaults to 4 and is capped at 50.
func (h *DashboardHandlerImpl) Activities(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	feed, err := h.activityService.ListRecent(r.Context(), actor.ID, getIntQueryParam(r, "limit", activity.DefaultLimit))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.OK(w, feed)
}
