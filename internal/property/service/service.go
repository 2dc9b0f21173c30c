// Package service implements property lifecycle management and the dashboard
// aggregate that joins every property with its compliance checklist.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"rentcheck/internal/audit"
	compliancemodels "rentcheck/internal/compliance/models"
	"rentcheck/internal/property/models"
	"rentcheck/internal/property/store"
	dErrors "rentcheck/pkg/domain-errors"
	"rentcheck/pkg/platform/sentinel"
	"rentcheck/pkg/requestcontext"
)

// ComplianceCascade removes a property's checklist when the property goes
// away. Implemented by the compliance service.
type ComplianceCascade interface {
	RemoveForProperty(ctx context.Context, propertyID uuid.UUID) error
}

// Checklists materializes and returns a property's checklist. Implemented by
// the compliance service; used by the dashboard aggregate.
type Checklists interface {
	ChecklistFor(ctx context.Context, property models.Property) ([]compliancemodels.Task, error)
}

// Service orchestrates property CRUD and delegates checklist concerns.
type Service struct {
	properties store.Store
	cascade    ComplianceCascade
	checklists Checklists
	logger     *slog.Logger
	audit      audit.Publisher
}

type serviceConfig struct {
	logger *slog.Logger
	audit  audit.Publisher
}

// Option configures optional service dependencies.
type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

func WithAudit(publisher audit.Publisher) Option {
	return func(cfg *serviceConfig) { cfg.audit = publisher }
}

// New constructs the property service.
func New(properties store.Store, cascade ComplianceCascade, checklists Checklists, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		properties: properties,
		cascade:    cascade,
		checklists: checklists,
		logger:     cfg.logger,
		audit:      cfg.audit,
	}
}

// CreateProperty validates input and persists a new property.
func (s *Service) CreateProperty(ctx context.Context, address, propertyType string, monthlyRent int64, status models.Status) (*models.Property, error) {
	property, err := models.New(uuid.New(), address, propertyType, monthlyRent, status, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create property")
	}
	s.emit(ctx, audit.Event{Action: audit.ActionPropertyCreated, PropertyID: property.ID})
	return property, nil
}

// GetProperty returns a property by ID.
func (s *Service) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property, err := s.properties.Get(ctx, id)
	if err != nil {
		return nil, wrapPropertyErr(err)
	}
	return property, nil
}

// ListProperties returns all properties, newest first.
func (s *Service) ListProperties(ctx context.Context) ([]*models.Property, error) {
	properties, err := s.properties.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list properties")
	}
	return properties, nil
}

// UpdateProperty replaces the mutable fields of an existing property. The
// checklist is not re-generated when the address changes.
func (s *Service) UpdateProperty(ctx context.Context, id uuid.UUID, address, propertyType string, monthlyRent int64, status models.Status) (*models.Property, error) {
	current, err := s.properties.Get(ctx, id)
	if err != nil {
		return nil, wrapPropertyErr(err)
	}
	updated, err := models.New(id, address, propertyType, monthlyRent, status, current.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := s.properties.Update(ctx, updated); err != nil {
		return nil, wrapPropertyErr(err)
	}
	s.emit(ctx, audit.Event{Action: audit.ActionPropertyUpdated, PropertyID: id})
	return updated, nil
}

// DeleteProperty removes a property and cascades into its checklist. Tasks go
// first so they never outlive their owner.
func (s *Service) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if _, err := s.properties.Get(ctx, id); err != nil {
		return wrapPropertyErr(err)
	}
	if err := s.cascade.RemoveForProperty(ctx, id); err != nil {
		return err
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return wrapPropertyErr(err)
	}
	s.emit(ctx, audit.Event{Action: audit.ActionPropertyDeleted, PropertyID: id})
	return nil
}

// DashboardEntry pairs a property with its (materialized-on-demand)
// checklist.
type DashboardEntry struct {
	Property  *models.Property        `json:"property"`
	Checklist []compliancemodels.Task `json:"compliance"`
}

// Dashboard returns every property with its checklist, materializing missing
// checklists along the way. Properties whose oracle round produced nothing
// appear with an empty checklist rather than failing the whole page.
func (s *Service) Dashboard(ctx context.Context) ([]DashboardEntry, error) {
	properties, err := s.properties.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list properties")
	}
	entries := make([]DashboardEntry, 0, len(properties))
	for _, property := range properties {
		checklist, err := s.checklists.ChecklistFor(ctx, *property)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DashboardEntry{Property: property, Checklist: checklist})
	}
	return entries, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	s.audit.Emit(ctx, event)
}

func wrapPropertyErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "property store failure")
}
