package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rentcheck/internal/compliance/models"
	"rentcheck/pkg/platform/sentinel"
	"rentcheck/pkg/requestcontext"
)

// Postgres persists checklists in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed compliance store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) ListTasks(ctx context.Context, propertyID uuid.UUID) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, property_id, category, rule, is_completed, position, created_at
		FROM compliance_tasks
		WHERE property_id = $1
		ORDER BY position
	`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.PropertyID, &t.Category, &t.Rule, &t.Completed, &t.Position, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// InsertBatch writes the batch in one transaction. An advisory transaction
// lock keyed on the property serializes concurrent materializers; the
// existence re-check inside the lock turns the loser's write into
// sentinel.ErrConflict with nothing committed.
func (s *Postgres) InsertBatch(ctx context.Context, propertyID uuid.UUID, rules []models.CandidateRule) ([]models.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert batch: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, propertyID); err != nil {
		return nil, fmt.Errorf("lock property for materialization: %w", err)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM compliance_tasks WHERE property_id = $1)`, propertyID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check existing tasks: %w", err)
	}
	if exists {
		return nil, sentinel.ErrConflict
	}

	now := requestcontext.Now(ctx)
	ids := make([]uuid.UUID, len(rules))
	categories := make([]string, len(rules))
	texts := make([]string, len(rules))
	positions := make([]int64, len(rules))
	for i, rule := range rules {
		ids[i] = uuid.New()
		categories[i] = rule.Category
		texts[i] = rule.Rule
		positions[i] = int64(i)
	}

	// Batch insert using unnest for O(1) round trips instead of O(n).
	_, err = tx.ExecContext(ctx, `
		INSERT INTO compliance_tasks (id, property_id, category, rule, is_completed, position, created_at)
		SELECT unnest($1::uuid[]), $2, unnest($3::text[]), unnest($4::text[]), FALSE, unnest($5::bigint[]), $6
	`, pq.Array(ids), propertyID, pq.Array(categories), pq.Array(texts), pq.Array(positions), now)
	if err != nil {
		return nil, fmt.Errorf("insert task batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit task batch: %w", err)
	}

	tasks := make([]models.Task, len(rules))
	for i, rule := range rules {
		tasks[i] = models.Task{
			ID:         ids[i],
			PropertyID: propertyID,
			Category:   rule.Category,
			Rule:       rule.Rule,
			Position:   i,
			CreatedAt:  now,
		}
	}
	return tasks, nil
}

func (s *Postgres) Toggle(ctx context.Context, taskID uuid.UUID) (bool, error) {
	var completed bool
	err := s.db.QueryRowContext(ctx, `
		UPDATE compliance_tasks
		SET is_completed = NOT is_completed
		WHERE id = $1
		RETURNING is_completed
	`, taskID).Scan(&completed)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, sentinel.ErrNotFound
		}
		return false, fmt.Errorf("toggle task: %w", err)
	}
	return completed, nil
}

func (s *Postgres) DeleteForProperty(ctx context.Context, propertyID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM compliance_tasks WHERE property_id = $1`, propertyID); err != nil {
		return fmt.Errorf("delete tasks for property: %w", err)
	}
	return nil
}

var _ Store = (*Postgres)(nil)
