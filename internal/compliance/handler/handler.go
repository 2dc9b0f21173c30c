package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rentcheck/internal/compliance/models"
	propertymodels "rentcheck/internal/property/models"
	dErrors "rentcheck/pkg/domain-errors"
	"rentcheck/pkg/platform/httputil"
	"rentcheck/pkg/requestcontext"
)

// Service defines the compliance operations the HTTP layer needs.
type Service interface {
	ChecklistFor(ctx context.Context, property propertymodels.Property) ([]models.Task, error)
	ToggleTask(ctx context.Context, taskID uuid.UUID) (bool, error)
}

// PropertyGetter resolves the property a checklist belongs to.
type PropertyGetter interface {
	GetProperty(ctx context.Context, id uuid.UUID) (*propertymodels.Property, error)
}

// Handler wires compliance endpoints to the materializer.
type Handler struct {
	service    Service
	properties PropertyGetter
	logger     *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(service Service, properties PropertyGetter, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		properties: properties,
		logger:     logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/properties/{id}/checklist", h.HandleChecklist)
	r.Post("/compliance/toggle", h.HandleToggle)
}

// HandleChecklist handles GET /properties/{id}/checklist. A cache miss
// triggers materialization; an unavailable oracle degrades to an empty list,
// never an error.
func (h *Handler) HandleChecklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "property id must be a valid UUID"))
		return
	}

	property, err := h.properties.GetProperty(ctx, propertyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	tasks, err := h.service.ChecklistFor(ctx, *property)
	if err != nil {
		h.logger.ErrorContext(ctx, "checklist lookup failed",
			"request_id", requestID,
			"property_id", propertyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "checklist served",
		"request_id", requestID,
		"property_id", propertyID,
		"tasks", len(tasks),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, tasks)
}

// HandleToggle handles POST /compliance/toggle.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ToggleRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	completed, err := h.service.ToggleTask(ctx, req.ParsedTaskID())
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "task toggle failed",
				"request_id", requestID,
				"task_id", req.TaskID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"task_id":      req.ParsedTaskID(),
		"is_completed": completed,
	})
}
