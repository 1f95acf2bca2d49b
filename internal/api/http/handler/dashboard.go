package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

type DashboardService interface {
	Summary(ctx context.Context, userID uuid.UUID) (model.DashboardSummary, error)
}

type Dashboard struct {
	dashboardService DashboardService
	contextManager   model.ContextManager
	logger           *logger.Logger
}

func NewDashboard(dashboardService DashboardService, contextManager model.ContextManager, logger *logger.Logger) *Dashboard {
	return &Dashboard{
		dashboardService: dashboardService,
		contextManager:   contextManager,
		logger:           logger,
	}
}

func (h *Dashboard) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	summary, err := h.dashboardService.Summary(r.Context(), userID)
	if err != nil {
		h.logger.Error("Dashboard handler: summary failed", "user_id", userID, "error", err)
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, toDashboardResponse(summary))
}
