package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"rentcheck/internal/property/models"
	"rentcheck/pkg/platform/sentinel"
)

// Postgres persists properties in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed property store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, property *models.Property) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO properties (id, address, type, monthly_rent, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, property.ID, property.Address, property.Type, property.MonthlyRent, property.Status, property.CreatedAt)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var p models.Property
	err := s.db.QueryRowContext(ctx, `
		SELECT id, address, type, monthly_rent, status, created_at
		FROM properties
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Address, &p.Type, &p.MonthlyRent, &p.Status, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Property, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, address, type, monthly_rent, status, created_at
		FROM properties
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	properties := []*models.Property{}
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.ID, &p.Address, &p.Type, &p.MonthlyRent, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

func (s *Postgres) Update(ctx context.Context, property *models.Property) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE properties
		SET address = $2, type = $3, monthly_rent = $4, status = $5
		WHERE id = $1
	`, property.ID, property.Address, property.Type, property.MonthlyRent, property.Status)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

var _ Store = (*Postgres)(nil)
