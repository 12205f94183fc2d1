package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutime/timetable-api/internal/models"
)

func TestScheduleRepositoryFindOverlapping(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "group_id", "subject_id", "teacher_id", "auditorium_id", "day_id", "time_slot_id", "shift", "week_type", "start_date", "end_date", "description", "created_at"}).
		AddRow("s1", "g1", "sub1", "t1", "a1", 1, 3, 1, "odd", start, end, nil, time.Now())
	mock.ExpectQuery("SELECT id, group_id, subject_id, teacher_id, auditorium_id").
		WithArgs(1, 3, 1, models.WeekTypeOdd, start, end).
		WillReturnRows(rows)
	mock.ExpectCommit()

	err := repo.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		found, err := repo.FindOverlapping(context.Background(), tx, 1, 3, 1, models.WeekTypeOdd, start, end)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "s1", found[0].ID)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryWithTxRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		return assert.AnError
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryLockSlotAndCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(int64(2)*1_000_000 + int64(4)*100 + int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schedules").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		if err := repo.LockSlot(context.Background(), tx, 2, 4, 1); err != nil {
			return err
		}
		return repo.CreateTx(context.Background(), tx, &models.Schedule{
			GroupID:      "g1",
			SubjectID:    "sub1",
			TeacherID:    "t1",
			AuditoriumID: "a1",
			DayID:        2,
			TimeSlotID:   4,
			Shift:        1,
			WeekType:     models.WeekTypeEven,
			StartDate:    start,
			EndDate:      end,
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListForBuilding(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"day_id", "lesson_number", "subject", "subject_type", "teacher", "group_name", "auditorium", "start_date", "end_date", "description"}).
		AddRow(1, 1, "Calculus", "lecture", "John Smith", "SE-21", "101", start, end, nil)
	mock.ExpectQuery("SELECT s.day_id, ts.lesson_number, sub.name AS subject").
		WithArgs("b1", 1, models.WeekTypeOdd, start, end).
		WillReturnRows(rows)

	lessons, err := repo.ListForBuilding(context.Background(), "b1", 1, models.WeekTypeOdd, start, end)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Calculus", lessons[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}
