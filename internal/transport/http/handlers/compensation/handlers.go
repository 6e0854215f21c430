package compensationhandler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrcomp/internal/domain/audit"
	"hrcomp/internal/domain/auth"
	"hrcomp/internal/domain/compensation"
	"hrcomp/internal/domain/reports"
	"hrcomp/internal/transport/http/api"
	"hrcomp/internal/transport/http/middleware"
	"hrcomp/internal/transport/http/shared"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

type BonusService interface {
	EmployeeBonus(ctx context.Context, tenantID, employeeID string, year int) (compensation.BonusResult, error)
	WorkforceBonuses(ctx context.Context, tenantID string, year int) (compensation.WorkforceReport, error)
	StatementPDF(ctx context.Context, w io.Writer, tenantID, employeeID string, year int) (compensation.BonusResult, error)
	Engine() *compensation.Engine
}

type AuditRecorder interface {
	Record(ctx context.Context, tenantID, actorID, action, entityType, entityID, requestID, ip string, before, after any) error
}

type SummaryHistory interface {
	SummaryHistory(ctx context.Context, tenantID string, filter reports.SummaryRunFilter, limit, offset int) ([]reports.SummaryRun, int, error)
}

// SummaryRunner records a workforce summary as a job run and returns it.
type SummaryRunner interface {
	RunSummary(ctx context.Context, tenantID string, year int) (any, error)
}

type Handler struct {
	Service BonusService
	Perms   middleware.PermissionStore
	Audit   AuditRecorder
	History SummaryHistory
	Runner  SummaryRunner
	now     func() time.Time
}

func NewHandler(service BonusService, perms middleware.PermissionStore, auditSvc AuditRecorder) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc, now: time.Now}
}

// WithSummaries enables the summary history and run endpoints.
func (h *Handler) WithSummaries(history SummaryHistory, runner SummaryRunner) *Handler {
	h.History = history
	h.Runner = runner
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compensation", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCompensationReadAll, h.Perms)).Get("/bonuses", h.handleWorkforceBonuses)
		r.Get("/employees/{employeeID}/bonus", h.handleEmployeeBonus)
		r.Get("/employees/{employeeID}/bonus.pdf", h.handleStatementPDF)
		r.Get("/weights", h.handleWeights)
		if h.History != nil {
			r.With(middleware.RequirePermission(auth.PermCompensationReadAll, h.Perms)).Get("/summaries", h.handleListSummaries)
		}
		if h.Runner != nil {
			r.With(middleware.RequirePermission(auth.PermCompensationExport, h.Perms)).Post("/summaries", h.handleRunSummary)
		}
	})
}

type workforcePayload struct {
	Summary compensation.WorkforceSummary `json:"summary"`
	Results []compensation.BonusResult    `json:"results"`
	Total   int                           `json:"total"`
	Limit   int                           `json:"limit"`
	Offset  int                           `json:"offset"`
}

func (h *Handler) handleWorkforceBonuses(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	v := shared.NewValidator()
	year := v.Year("year", r.URL.Query().Get("year"), h.now())
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	v.Enum("status", status, bonusStatuses, "must be a known bonus status")
	if v.Reject(w, requestID) {
		return
	}

	report, err := h.Service.WorkforceBonuses(r.Context(), user.TenantID, year)
	if err != nil {
		h.failCalculation(w, err, requestID)
		return
	}

	results := report.Results
	if status != "" {
		results = filterByStatus(results, compensation.BonusStatus(status))
	}
	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)
	start, end := page.Page(len(results))
	rows := make([]compensation.BonusResult, 0, end-start)
	for _, result := range results[start:end] {
		rows = append(rows, result.Rounded())
	}

	api.Success(w, workforcePayload{
		Summary: report.Summary,
		Results: rows,
		Total:   len(results),
		Limit:   page.Limit,
		Offset:  page.Offset,
	}, requestID)
}

func (h *Handler) handleEmployeeBonus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, employeeID, ok := h.authorizeEmployee(w, r, auth.PermCompensationReadAll)
	if !ok {
		return
	}

	v := shared.NewValidator()
	year := v.Year("year", r.URL.Query().Get("year"), h.now())
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Service.EmployeeBonus(r.Context(), user.TenantID, employeeID, year)
	if err != nil {
		h.failCalculation(w, err, requestID)
		return
	}
	api.Success(w, result.Rounded(), requestID)
}

func (h *Handler) handleStatementPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, employeeID, ok := h.authorizeEmployee(w, r, auth.PermCompensationExport)
	if !ok {
		return
	}

	v := shared.NewValidator()
	year := v.Year("year", r.URL.Query().Get("year"), h.now())
	if v.Reject(w, requestID) {
		return
	}

	var buf bytes.Buffer
	result, err := h.Service.StatementPDF(r.Context(), &buf, user.TenantID, employeeID, year)
	if err != nil {
		h.failCalculation(w, err, requestID)
		return
	}

	if h.Audit != nil {
		after := map[string]any{"year": year, "status": result.Status, "final": result.Rounded().Final}
		if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, audit.ActionStatementExport, audit.EntityBonusStatement, employeeID, requestID, clientIP(r), nil, after); err != nil {
			slog.Warn("audit statement export failed", "err", err, "employeeId", employeeID)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="bonus-`+employeeID+`-`+strconv.Itoa(year)+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("write statement failed", "err", err)
	}
}

type weightsPayload struct {
	Bands              []compensation.WeightBand       `json:"bands"`
	DefaultCategory    int                             `json:"defaultCategory"`
	ProRataPolicy      string                          `json:"proRataPolicy"`
	CorporateWeighting compensation.CorporateWeighting `json:"corporateWeighting"`
}

func (h *Handler) handleWeights(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetUser(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	engine := h.Service.Engine()
	api.Success(w, weightsPayload{
		Bands:              engine.WeightPolicy().Bands(),
		DefaultCategory:    compensation.DefaultCategory,
		ProRataPolicy:      engine.ProRataPolicy().Name(),
		CorporateWeighting: engine.CorporateWeighting(),
	}, requestID)
}

func (h *Handler) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	filter := reports.SummaryRunFilter{Status: strings.TrimSpace(r.URL.Query().Get("status"))}
	if raw := r.URL.Query().Get("year"); raw != "" {
		v := shared.NewValidator()
		filter.Year = v.Year("year", raw, h.now())
		if v.Reject(w, requestID) {
			return
		}
	}
	page := shared.ParsePagination(r, 20, 100)
	runs, total, err := h.History.SummaryHistory(r.Context(), user.TenantID, filter, page.Limit, page.Offset)
	if err != nil {
		slog.Error("summary history failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "summary_history_failed", "failed to list summaries", requestID)
		return
	}
	api.Success(w, map[string]any{
		"items":  runs,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	}, requestID)
}

func (h *Handler) handleRunSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	v := shared.NewValidator()
	year := v.Year("year", r.URL.Query().Get("year"), h.now())
	if v.Reject(w, requestID) {
		return
	}
	summary, err := h.Runner.RunSummary(r.Context(), user.TenantID, year)
	if err != nil {
		h.failCalculation(w, err, requestID)
		return
	}
	api.Success(w, summary, requestID)
}

// authorizeEmployee lets employees read their own bonus and requires
// otherPerm for anyone else's.
func (h *Handler) authorizeEmployee(w http.ResponseWriter, r *http.Request, otherPerm string) (auth.UserContext, string, bool) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return auth.UserContext{}, "", false
	}
	employeeID := chi.URLParam(r, "employeeID")

	perm := otherPerm
	if user.EmployeeID != "" && user.EmployeeID == employeeID {
		perm = auth.PermCompensationReadSelf
	}
	allowed, err := h.Perms.HasPermission(r.Context(), user.RoleName, perm)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", requestID)
		return auth.UserContext{}, "", false
	}
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
		return auth.UserContext{}, "", false
	}
	return user, employeeID, true
}

func (h *Handler) failCalculation(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, compensation.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, compensation.ErrInvalidYear):
		api.Fail(w, http.StatusBadRequest, "invalid_year", err.Error(), requestID)
	default:
		slog.Error("bonus calculation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "calculation_failed", "failed to calculate bonus", requestID)
	}
}

var bonusStatuses = []string{
	string(compensation.BonusStatusCalculated),
	string(compensation.BonusStatusPendingEvaluation),
	string(compensation.BonusStatusNoObjectives),
	string(compensation.BonusStatusNotEmployed),
}

func filterByStatus(results []compensation.BonusResult, status compensation.BonusStatus) []compensation.BonusResult {
	out := make([]compensation.BonusResult, 0, len(results))
	for _, result := range results {
		if result.Status == status {
			out = append(out, result)
		}
	}
	return out
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
