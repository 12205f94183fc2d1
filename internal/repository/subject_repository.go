package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edutime/timetable-api/internal/models"
)

// SubjectRepository manages persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// FindByNameAndType fetches a subject by its natural key.
func (r *SubjectRepository) FindByNameAndType(ctx context.Context, name, subjectType string) (*models.Subject, error) {
	const query = `SELECT id, name, type, created_at FROM subjects WHERE name = $1 AND type = $2`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, name, subjectType); err != nil {
		return nil, err
	}
	return &subject, nil
}

// GetOrCreate resolves (name, type) to a subject ID, inserting when absent.
// The same subject name may recur with a different type as a distinct row.
func (r *SubjectRepository) GetOrCreate(ctx context.Context, name, subjectType string) (string, error) {
	const query = `INSERT INTO subjects (id, name, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, type) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`
	var id string
	if err := r.db.GetContext(ctx, &id, query, uuid.NewString(), name, subjectType); err != nil {
		return "", fmt.Errorf("get or create subject: %w", err)
	}
	return id, nil
}

// Exists reports whether a subject row exists.
func (r *SubjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM subjects WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check subject exists: %w", err)
	}
	return true, nil
}
