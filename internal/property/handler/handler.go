package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rentcheck/internal/property/models"
	"rentcheck/internal/property/service"
	dErrors "rentcheck/pkg/domain-errors"
	"rentcheck/pkg/platform/httputil"
	"rentcheck/pkg/requestcontext"
)

// Service defines the property operations the HTTP layer needs.
type Service interface {
	CreateProperty(ctx context.Context, address, propertyType string, monthlyRent int64, status models.Status) (*models.Property, error)
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListProperties(ctx context.Context) ([]*models.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, address, propertyType string, monthlyRent int64, status models.Status) (*models.Property, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error
	Dashboard(ctx context.Context) ([]service.DashboardEntry, error)
}

// Handler wires property CRUD and the dashboard aggregate.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a property handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts read endpoints; RegisterAdmin mounts mutating endpoints so
// the router can guard them separately.
func (h *Handler) Register(r chi.Router) {
	r.Get("/properties", h.HandleList)
	r.Get("/properties/{id}", h.HandleGet)
	r.Get("/dashboard", h.HandleDashboard)
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/properties", h.HandleCreate)
	r.Put("/properties/{id}", h.HandleUpdate)
	r.Delete("/properties/{id}", h.HandleDelete)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PropertyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	property, err := h.service.CreateProperty(ctx, req.Address, req.Type, req.MonthlyRent, req.ParsedStatus())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "property created",
		"request_id", requestID,
		"property_id", property.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, property)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.ListProperties(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, properties)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	property, err := h.service.GetProperty(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, property)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PropertyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	property, err := h.service.UpdateProperty(ctx, id, req.Address, req.Type, req.MonthlyRent, req.ParsedStatus())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "property updated",
		"request_id", requestID,
		"property_id", property.ID,
	)
	httputil.WriteJSON(w, http.StatusOK, property)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteProperty(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "property deleted",
		"request_id", requestID,
		"property_id", id,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleDashboard handles GET /dashboard: every property joined with its
// checklist, materializing on demand.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dashboard failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "property id must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}
