package performancehandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrcomp/internal/domain/auth"
	"hrcomp/internal/domain/compensation"
	"hrcomp/internal/domain/performance"
	"hrcomp/internal/transport/http/api"
	"hrcomp/internal/transport/http/middleware"
	"hrcomp/internal/transport/http/shared"
)

type DashboardService interface {
	Dashboard(ctx context.Context, tenantID, employeeID string, year int) (performance.ObjectiveDashboard, error)
}

type Handler struct {
	Service DashboardService
	Perms   middleware.PermissionStore
	now     func() time.Time
}

func NewHandler(service DashboardService, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms, now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)).Get("/employees/{employeeID}/objectives", h.handleObjectiveDashboard)
	})
}

func (h *Handler) handleObjectiveDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	if user.EmployeeID != employeeID {
		allowed, err := h.Perms.HasPermission(r.Context(), user.RoleName, auth.PermCompensationReadAll)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", requestID)
			return
		}
		if !allowed {
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
			return
		}
	}

	v := shared.NewValidator()
	year := v.Year("year", r.URL.Query().Get("year"), h.now())
	if v.Reject(w, requestID) {
		return
	}

	dashboard, err := h.Service.Dashboard(r.Context(), user.TenantID, employeeID, year)
	if err != nil {
		if errors.Is(err, compensation.ErrInvalidYear) {
			api.Fail(w, http.StatusBadRequest, "invalid_year", err.Error(), requestID)
			return
		}
		slog.Error("objective dashboard failed", "err", err, "employeeId", employeeID)
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to load objectives", requestID)
		return
	}
	api.Success(w, dashboard, requestID)
}
