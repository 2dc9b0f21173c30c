// Package service holds the materialization orchestrator: the logic that
// guarantees a property's compliance checklist exists in durable storage
// exactly once, generating it on first access and serving it thereafter.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"rentcheck/internal/audit"
	compliancemetrics "rentcheck/internal/compliance/metrics"
	"rentcheck/internal/compliance/models"
	"rentcheck/internal/compliance/oracle"
	"rentcheck/internal/compliance/store"
	propertymodels "rentcheck/internal/property/models"
	dErrors "rentcheck/pkg/domain-errors"
	"rentcheck/pkg/platform/sentinel"
	"rentcheck/pkg/requestcontext"
)

// Service orchestrates checklist materialization and completion toggles. The
// durable store is the single source of truth for "has this property been
// materialized"; there is no in-process cache of materialization state.
type Service struct {
	store   store.Store
	oracle  oracle.Client
	lease   Lease
	metrics *compliancemetrics.Metrics
	logger  *slog.Logger
	audit   audit.Publisher
	flight  singleflight.Group
}

type serviceConfig struct {
	lease   Lease
	metrics *compliancemetrics.Metrics
	logger  *slog.Logger
	audit   audit.Publisher
}

// Option configures optional service dependencies.
type Option func(*serviceConfig)

func WithLease(lease Lease) Option {
	return func(cfg *serviceConfig) { cfg.lease = lease }
}

func WithMetrics(m *compliancemetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

func WithAudit(publisher audit.Publisher) Option {
	return func(cfg *serviceConfig) { cfg.audit = publisher }
}

// New constructs the materializer.
func New(st store.Store, oc oracle.Client, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.lease == nil {
		cfg.lease = NoopLease{}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:   st,
		oracle:  oc,
		lease:   cfg.lease,
		metrics: cfg.metrics,
		logger:  cfg.logger,
		audit:   cfg.audit,
	}
}

// ChecklistFor returns the property's checklist, materializing it on first
// access. A cache hit returns the stored rows as-is; a miss runs the
// generate-validate-persist sequence. When the oracle yields nothing usable
// the property stays un-materialized and the next access retries; there is
// no negative caching.
func (s *Service) ChecklistFor(ctx context.Context, property propertymodels.Property) ([]models.Task, error) {
	existing, err := s.store.ListTasks(ctx, property.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read checklist")
	}
	if len(existing) > 0 {
		s.countHit()
		return existing, nil
	}
	s.countMiss()

	// Collapse concurrent in-process callers into one materialization per
	// property. Correctness does not depend on this; the store's batch guard
	// rejects duplicate batches. It keeps N concurrent first accesses from
	// paying for N oracle calls.
	v, err, _ := s.flight.Do(property.ID.String(), func() (any, error) {
		return s.materialize(ctx, property)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Task), nil
}

func (s *Service) materialize(ctx context.Context, property propertymodels.Property) ([]models.Task, error) {
	start := time.Now()
	defer s.observeMaterialize(start)

	// A caller that queued behind an in-flight materialization may find the
	// rows already written.
	existing, err := s.store.ListTasks(ctx, property.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read checklist")
	}
	if len(existing) > 0 {
		return existing, nil
	}

	acquired, err := s.lease.Acquire(ctx, property.ID)
	if err != nil {
		// Lease backend down: proceed without it, the store guard still holds.
		s.logger.WarnContext(ctx, "materialization lease unavailable", "property_id", property.ID, "error", err)
		acquired = true
	}
	if !acquired {
		// Another replica is generating. Serve the current (empty) state; the
		// next access finds the winner's rows or retries.
		return []models.Task{}, nil
	}
	defer s.lease.Release(ctx, property.ID)

	s.countOracleCall()
	rules, err := s.oracle.Generate(ctx, property.Address)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "oracle call aborted")
	}
	if len(rules) == 0 {
		s.countOracleEmpty()
		s.logger.InfoContext(ctx, "oracle produced no usable rules, leaving property un-materialized",
			"property_id", property.ID)
		return []models.Task{}, nil
	}

	created, err := s.store.InsertBatch(ctx, property.ID, rules)
	if errors.Is(err, sentinel.ErrConflict) {
		// Lost the race to a concurrent materializer: discard our batch and
		// serve the winner's rows.
		winner, listErr := s.store.ListTasks(ctx, property.ID)
		if listErr != nil {
			return nil, dErrors.Wrap(listErr, dErrors.CodeInternal, "failed to read checklist")
		}
		return winner, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist checklist")
	}

	s.countMaterialized()
	s.emit(ctx, audit.Event{
		Action:     audit.ActionChecklistMaterialized,
		PropertyID: property.ID,
	})
	s.logger.InfoContext(ctx, "checklist materialized",
		"property_id", property.ID,
		"tasks", len(created),
	)
	return created, nil
}

// ToggleTask flips a task's completion flag and returns the new value.
func (s *Service) ToggleTask(ctx context.Context, taskID uuid.UUID) (bool, error) {
	completed, err := s.store.Toggle(ctx, taskID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, dErrors.New(dErrors.CodeNotFound, "task not found")
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to toggle task")
	}
	s.countToggle()
	s.emit(ctx, audit.Event{
		Action: audit.ActionTaskToggled,
		TaskID: taskID,
	})
	return completed, nil
}

// RemoveForProperty cascades a property deletion into its checklist.
func (s *Service) RemoveForProperty(ctx context.Context, propertyID uuid.UUID) error {
	if err := s.store.DeleteForProperty(ctx, propertyID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete checklist")
	}
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	s.audit.Emit(ctx, event)
}

func (s *Service) countHit() {
	if s.metrics != nil {
		s.metrics.CacheHits.Inc()
	}
}

func (s *Service) countMiss() {
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}
}

func (s *Service) countOracleCall() {
	if s.metrics != nil {
		s.metrics.OracleCalls.Inc()
	}
}

func (s *Service) countOracleEmpty() {
	if s.metrics != nil {
		s.metrics.OracleEmptyResults.Inc()
	}
}

func (s *Service) countMaterialized() {
	if s.metrics != nil {
		s.metrics.MaterializedChecklists.Inc()
	}
}

func (s *Service) countToggle() {
	if s.metrics != nil {
		s.metrics.TasksToggled.Inc()
	}
}

func (s *Service) observeMaterialize(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveMaterialize(start)
	}
}
