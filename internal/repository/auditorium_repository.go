package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edutime/timetable-api/internal/models"
)

// AuditoriumRepository manages persistence for auditoriums.
type AuditoriumRepository struct {
	db *sqlx.DB
}

// NewAuditoriumRepository constructs an AuditoriumRepository.
func NewAuditoriumRepository(db *sqlx.DB) *AuditoriumRepository {
	return &AuditoriumRepository{db: db}
}

// ListByBuilding returns a building's auditoriums matching filters with total count.
func (r *AuditoriumRepository) ListByBuilding(ctx context.Context, buildingID string, filter models.AuditoriumFilter) ([]models.Auditorium, int, error) {
	base := "FROM auditoriums WHERE building_id = $1"
	args := []interface{}{buildingID}
	var conditions []string

	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Department+"%")
	}
	if filter.MinCapacity > 0 {
		conditions = append(conditions, fmt.Sprintf("capacity >= $%d", len(args)+1))
		args = append(args, filter.MinCapacity)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, name, building_id, capacity, department, has_projector, has_electronic_screen, description, created_at, updated_at %s ORDER BY name ASC LIMIT %d OFFSET %d", base, size, offset)
	var auditoriums []models.Auditorium
	if err := r.db.SelectContext(ctx, &auditoriums, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list auditoriums: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count auditoriums: %w", err)
	}

	return auditoriums, total, nil
}

// ListAllByBuilding returns every auditorium of a building in name order.
// The week view needs the full roster, including rooms with zero lessons.
func (r *AuditoriumRepository) ListAllByBuilding(ctx context.Context, buildingID string) ([]models.Auditorium, error) {
	const query = `SELECT id, name, building_id, capacity, department, has_projector, has_electronic_screen, description, created_at, updated_at FROM auditoriums WHERE building_id = $1 ORDER BY name ASC`
	var auditoriums []models.Auditorium
	if err := r.db.SelectContext(ctx, &auditoriums, query, buildingID); err != nil {
		return nil, fmt.Errorf("list all auditoriums: %w", err)
	}
	return auditoriums, nil
}

// FindByID fetches an auditorium by ID.
func (r *AuditoriumRepository) FindByID(ctx context.Context, id string) (*models.Auditorium, error) {
	const query = `SELECT id, name, building_id, capacity, department, has_projector, has_electronic_screen, description, created_at, updated_at FROM auditoriums WHERE id = $1`
	var auditorium models.Auditorium
	if err := r.db.GetContext(ctx, &auditorium, query, id); err != nil {
		return nil, err
	}
	return &auditorium, nil
}

// Exists reports whether an auditorium row exists.
func (r *AuditoriumRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM auditoriums WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check auditorium exists: %w", err)
	}
	return true, nil
}

// Create inserts a new auditorium record.
func (r *AuditoriumRepository) Create(ctx context.Context, auditorium *models.Auditorium) error {
	if auditorium.ID == "" {
		auditorium.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if auditorium.CreatedAt.IsZero() {
		auditorium.CreatedAt = now
	}
	auditorium.UpdatedAt = now

	const query = `INSERT INTO auditoriums (id, name, building_id, capacity, department, has_projector, has_electronic_screen, description, created_at, updated_at)
		VALUES (:id, :name, :building_id, :capacity, :department, :has_projector, :has_electronic_screen, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, auditorium); err != nil {
		return fmt.Errorf("create auditorium: %w", err)
	}
	return nil
}

// Update modifies an existing auditorium record.
func (r *AuditoriumRepository) Update(ctx context.Context, auditorium *models.Auditorium) error {
	auditorium.UpdatedAt = time.Now().UTC()
	const query = `UPDATE auditoriums SET name = :name, building_id = :building_id, capacity = :capacity, department = :department, has_projector = :has_projector, has_electronic_screen = :has_electronic_screen, description = :description, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, auditorium)
	if err != nil {
		return fmt.Errorf("update auditorium: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an auditorium by id.
func (r *AuditoriumRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auditoriums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete auditorium: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
