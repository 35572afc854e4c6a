package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/diegoclair/monthly-report/internal/domain"
	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/pkg/models"
)

// ReadinessFunc reports whether the mail transport can deliver.
type ReadinessFunc func(ctx context.Context) error

type Handler struct {
	roster    contract.RosterService
	scheduler contract.SchedulerService
	dm        contract.DataManager
	mailReady ReadinessFunc
	logger    *slog.Logger
}

func New(roster contract.RosterService, scheduler contract.SchedulerService, dm contract.DataManager, mailReady ReadinessFunc, logger *slog.Logger) *Handler {
	if mailReady == nil {
		mailReady = func(context.Context) error { return nil }
	}
	return &Handler{
		roster:    roster,
		scheduler: scheduler,
		dm:        dm,
		mailReady: mailReady,
		logger:    logger,
	}
}

// Routes builds the HTTP router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/staff", h.HandleListStaff)
		r.Post("/staff/sync", h.HandleSyncStaff)
		r.Get("/report/{month}", h.HandleGetReport)
		r.Get("/jobs", h.HandleListJobs)
		r.Post("/jobs/{id}/run", h.HandleRunJob)
	})

	return r
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:   "ok",
		Database: "ok",
		Mail:     "ok",
		Time:     time.Now().Format(time.RFC3339),
	}

	status := http.StatusOK
	if err := h.dm.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Database ping failed", slog.String("error", err.Error()))
		resp.Status = "unavailable"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}

	// A broken mail transport degrades the service but the API stays usable.
	if err := h.mailReady(r.Context()); err != nil {
		resp.Mail = err.Error()
		if status == http.StatusOK {
			resp.Status = "degraded"
		}
	}

	h.respondJSON(w, status, resp)
}

func (h *Handler) HandleListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.roster.ListStaff(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list staff", slog.String("error", err.Error()))
		h.respondWithError(w, http.StatusInternalServerError, "failed to list staff")
		return
	}

	h.respondJSON(w, http.StatusOK, toStaffList(staff))
}

func (h *Handler) HandleSyncStaff(w http.ResponseWriter, r *http.Request) {
	total, err := h.roster.SyncStaff(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sync staff", slog.String("error", err.Error()))
		h.respondWithError(w, http.StatusInternalServerError, "failed to sync staff: "+err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, models.SyncResponse{
		Success: true,
		Message: fmt.Sprintf("成功同步 %d 筆同事資料", total),
		Count:   total,
	})
}

func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	report, err := h.roster.GetReport(r.Context(), month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			h.respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to get report", slog.String("month", month), slog.String("error", err.Error()))
		h.respondWithError(w, http.StatusInternalServerError, "failed to get report")
		return
	}

	if report == nil {
		h.respondWithError(w, http.StatusNotFound, "report not found for "+month)
		return
	}

	h.respondJSON(w, http.StatusOK, toReport(report))
}

func (h *Handler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, toJobList(h.scheduler.Jobs()))
}

func (h *Handler) HandleRunJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	report, err := h.scheduler.RunJob(r.Context(), jobID)
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		h.respondWithError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrJobRunning):
		h.respondWithError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Failed to run job", slog.String("job_id", jobID), slog.String("error", err.Error()))
		h.respondWithError(w, http.StatusInternalServerError, "failed to run job")
		return
	}

	h.respondJSON(w, http.StatusOK, toRunReport(report))
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *Handler) respondWithError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, models.ErrorResponse{Error: message})
}
