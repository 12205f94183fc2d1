package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edutime/timetable-api/internal/models"
)

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	const query = `SELECT id, full_name, created_at FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByName fetches a teacher by exact full name.
func (r *TeacherRepository) FindByName(ctx context.Context, fullName string) (*models.Teacher, error) {
	const query = `SELECT id, full_name, created_at FROM teachers WHERE full_name = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, fullName); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// GetOrCreate resolves a full name to a teacher ID, inserting the row when it
// does not exist yet. The upsert runs as a single statement so concurrent
// identical requests resolve to the same row instead of racing.
// The boolean result reports whether a new row was inserted.
func (r *TeacherRepository) GetOrCreate(ctx context.Context, fullName string) (string, bool, error) {
	const query = `INSERT INTO teachers (id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (full_name) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id, (xmax = 0) AS inserted`
	var result struct {
		ID       string `db:"id"`
		Inserted bool   `db:"inserted"`
	}
	if err := r.db.GetContext(ctx, &result, query, uuid.NewString(), fullName); err != nil {
		if err == sql.ErrNoRows {
			return "", false, err
		}
		return "", false, fmt.Errorf("get or create teacher: %w", err)
	}
	return result.ID, result.Inserted, nil
}

// Exists reports whether a teacher row exists.
func (r *TeacherRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM teachers WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher exists: %w", err)
	}
	return true, nil
}
