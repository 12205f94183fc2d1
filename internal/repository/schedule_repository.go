package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edutime/timetable-api/internal/models"
)

// ScheduleRepository provides persistence for schedule assignments.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// WithTx runs fn inside a transaction, rolling back on error or panic.
func (r *ScheduleRepository) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule tx: %w", err)
	}
	return nil
}

// LockSlot takes a transaction-scoped advisory lock on the weekly slot so
// concurrent writers targeting the same (day, time slot, shift) serialize
// their conflict-check-then-insert sequence. Released at commit/rollback.
func (r *ScheduleRepository) LockSlot(ctx context.Context, tx *sqlx.Tx, dayID, timeSlotID, shift int) error {
	key := int64(dayID)*1_000_000 + int64(timeSlotID)*100 + int64(shift)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
		return fmt.Errorf("lock slot: %w", err)
	}
	return nil
}

// FindOverlapping returns committed schedules occupying the same weekly slot
// key whose active date ranges overlap the candidate window.
func (r *ScheduleRepository) FindOverlapping(ctx context.Context, tx *sqlx.Tx, dayID, timeSlotID, shift int, weekType models.WeekType, startDate, endDate time.Time) ([]models.Schedule, error) {
	const query = `SELECT id, group_id, subject_id, teacher_id, auditorium_id, day_id, time_slot_id, shift, week_type, start_date, end_date, description, created_at
		FROM schedules
		WHERE day_id = $1 AND time_slot_id = $2 AND shift = $3 AND week_type = $4
		  AND start_date <= $6 AND end_date >= $5`
	var schedules []models.Schedule
	if err := tx.SelectContext(ctx, &schedules, query, dayID, timeSlotID, shift, weekType, startDate, endDate); err != nil {
		return nil, fmt.Errorf("find overlapping schedules: %w", err)
	}
	return schedules, nil
}

// CreateTx inserts a schedule row within the caller's transaction.
func (r *ScheduleRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO schedules (id, group_id, subject_id, teacher_id, auditorium_id, day_id, time_slot_id, shift, week_type, start_date, end_date, description, created_at)
		VALUES (:id, :group_id, :subject_id, :teacher_id, :auditorium_id, :day_id, :time_slot_id, :shift, :week_type, :start_date, :end_date, :description, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// FindByID loads a schedule by id.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	const query = `SELECT id, group_id, subject_id, teacher_id, auditorium_id, day_id, time_slot_id, shift, week_type, start_date, end_date, description, created_at FROM schedules WHERE id = $1`
	var sched models.Schedule
	if err := r.db.GetContext(ctx, &sched, query, id); err != nil {
		return nil, err
	}
	return &sched, nil
}

// ListForBuilding returns the joined lesson rows for a building's grid:
// all schedules of the shift and parity whose range overlaps the window.
func (r *ScheduleRepository) ListForBuilding(ctx context.Context, buildingID string, shift int, weekType models.WeekType, startDate, endDate time.Time) ([]models.BuildingLessonRow, error) {
	const query = `SELECT s.day_id, ts.lesson_number, sub.name AS subject, sub.type AS subject_type,
			t.full_name AS teacher, g.name AS group_name, a.name AS auditorium,
			s.start_date, s.end_date, s.description
		FROM schedules s
		JOIN auditoriums a ON s.auditorium_id = a.id
		JOIN subjects sub ON s.subject_id = sub.id
		JOIN teachers t ON s.teacher_id = t.id
		JOIN groups g ON s.group_id = g.id
		JOIN time_slots ts ON s.time_slot_id = ts.id
		WHERE a.building_id = $1 AND s.shift = $2 AND s.week_type = $3
		  AND s.start_date <= $5 AND s.end_date >= $4
		ORDER BY s.day_id, ts.lesson_number`
	var rows []models.BuildingLessonRow
	if err := r.db.SelectContext(ctx, &rows, query, buildingID, shift, weekType, startDate, endDate); err != nil {
		return nil, fmt.Errorf("list building lessons: %w", err)
	}
	return rows, nil
}

// ListForWeek returns the joined lesson rows for the auditorium week view:
// schedules of the building and shift overlapping the Monday-Sunday window
// whose parity matches the week.
func (r *ScheduleRepository) ListForWeek(ctx context.Context, buildingID string, shift int, weekType models.WeekType, monday, sunday time.Time) ([]models.WeekLessonRow, error) {
	const query = `SELECT s.id AS schedule_id, s.day_id, ts.lesson_number, sub.name AS subject,
			t.full_name AS teacher, s.teacher_id, a.name AS auditorium
		FROM schedules s
		JOIN auditoriums a ON s.auditorium_id = a.id
		JOIN subjects sub ON s.subject_id = sub.id
		JOIN teachers t ON s.teacher_id = t.id
		JOIN time_slots ts ON s.time_slot_id = ts.id
		WHERE a.building_id = $1 AND s.shift = $2 AND s.week_type = $3
		  AND s.start_date <= $5 AND s.end_date >= $4
		ORDER BY a.name, s.day_id, ts.lesson_number`
	var rows []models.WeekLessonRow
	if err := r.db.SelectContext(ctx, &rows, query, buildingID, shift, weekType, monday, sunday); err != nil {
		return nil, fmt.Errorf("list week lessons: %w", err)
	}
	return rows, nil
}
