package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edutime/timetable-api/internal/models"
)

// ReferenceRepository reads the immutable day and time-slot catalogs.
// The catalogs are seeded by migration and have no mutation path.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository constructs a ReferenceRepository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListDays returns the day catalog in ID order.
func (r *ReferenceRepository) ListDays(ctx context.Context) ([]models.Day, error) {
	var days []models.Day
	if err := r.db.SelectContext(ctx, &days, `SELECT id, name FROM days ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	return days, nil
}

// ListTimeSlots returns the time-slot catalog for a shift in lesson order.
func (r *ReferenceRepository) ListTimeSlots(ctx context.Context, shift int) ([]models.TimeSlot, error) {
	const query = `SELECT id, shift, lesson_number, start_time, end_time FROM time_slots WHERE shift = $1 ORDER BY lesson_number`
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, shift); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

// FindTimeSlot loads a slot by ID.
func (r *ReferenceRepository) FindTimeSlot(ctx context.Context, id int) (*models.TimeSlot, error) {
	const query = `SELECT id, shift, lesson_number, start_time, end_time FROM time_slots WHERE id = $1`
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// DayExists reports whether a day ID is part of the catalog.
func (r *ReferenceRepository) DayExists(ctx context.Context, id int) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM days WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check day exists: %w", err)
	}
	return true, nil
}
