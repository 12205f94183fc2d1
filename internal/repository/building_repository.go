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

// BuildingRepository manages persistence for campus buildings.
type BuildingRepository struct {
	db *sqlx.DB
}

// NewBuildingRepository constructs a BuildingRepository.
func NewBuildingRepository(db *sqlx.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

// List returns buildings matching filters along with total count.
func (r *BuildingRepository) List(ctx context.Context, filter models.BuildingFilter) ([]models.Building, int, error) {
	base := "FROM buildings WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Address != "" {
		conditions = append(conditions, fmt.Sprintf("address ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Address+"%")
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

	query := fmt.Sprintf("SELECT id, name, address, created_at, updated_at %s ORDER BY name ASC LIMIT %d OFFSET %d", base, size, offset)
	var buildings []models.Building
	if err := r.db.SelectContext(ctx, &buildings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list buildings: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count buildings: %w", err)
	}

	return buildings, total, nil
}

// FindByID fetches a building by ID.
func (r *BuildingRepository) FindByID(ctx context.Context, id string) (*models.Building, error) {
	const query = `SELECT id, name, address, created_at, updated_at FROM buildings WHERE id = $1`
	var building models.Building
	if err := r.db.GetContext(ctx, &building, query, id); err != nil {
		return nil, err
	}
	return &building, nil
}

// Exists reports whether a building row exists.
func (r *BuildingRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM buildings WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check building exists: %w", err)
	}
	return true, nil
}

// Create inserts a new building record.
func (r *BuildingRepository) Create(ctx context.Context, building *models.Building) error {
	if building.ID == "" {
		building.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if building.CreatedAt.IsZero() {
		building.CreatedAt = now
	}
	building.UpdatedAt = now

	const query = `INSERT INTO buildings (id, name, address, created_at, updated_at)
		VALUES (:id, :name, :address, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, building); err != nil {
		return fmt.Errorf("create building: %w", err)
	}
	return nil
}

// Update modifies an existing building record.
func (r *BuildingRepository) Update(ctx context.Context, building *models.Building) error {
	building.UpdatedAt = time.Now().UTC()
	const query = `UPDATE buildings SET name = :name, address = :address, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, building)
	if err != nil {
		return fmt.Errorf("update building: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a building by id.
func (r *BuildingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete building: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
