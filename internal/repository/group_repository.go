package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edutime/timetable-api/internal/models"
)

// GroupRepository manages persistence for student groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// FindByName fetches a group by exact name.
func (r *GroupRepository) FindByName(ctx context.Context, name string) (*models.Group, error) {
	const query = `SELECT id, name, created_at FROM groups WHERE name = $1`
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, name); err != nil {
		return nil, err
	}
	return &group, nil
}

// GetOrCreate resolves a group name to an ID, inserting when absent.
func (r *GroupRepository) GetOrCreate(ctx context.Context, name string) (string, error) {
	const query = `INSERT INTO groups (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`
	var id string
	if err := r.db.GetContext(ctx, &id, query, uuid.NewString(), name); err != nil {
		return "", fmt.Errorf("get or create group: %w", err)
	}
	return id, nil
}

// Exists reports whether a group row exists.
func (r *GroupRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM groups WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check group exists: %w", err)
	}
	return true, nil
}
