package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutime/timetable-api/internal/models"
)

func TestAuditoriumRepositoryListByBuilding(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditoriumRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "building_id", "capacity", "department", "has_projector", "has_electronic_screen", "description", "created_at", "updated_at"}).
		AddRow("a1", "101", "b1", 30, nil, true, false, nil, time.Now(), time.Now())
	mock.ExpectQuery("FROM auditoriums WHERE building_id = ").
		WithArgs("b1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.ListByBuilding(context.Background(), "b1", models.AuditoriumFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditoriumRepositoryListByBuildingWithCapacityFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditoriumRepository(db)

	mock.ExpectQuery("capacity >= ").
		WithArgs("b1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "building_id", "capacity", "department", "has_projector", "has_electronic_screen", "description", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("b1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	list, total, err := repo.ListByBuilding(context.Background(), "b1", models.AuditoriumFilter{MinCapacity: 50})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditoriumRepositoryListAllByBuilding(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditoriumRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "building_id", "capacity", "department", "has_projector", "has_electronic_screen", "description", "created_at", "updated_at"}).
		AddRow("a1", "101", "b1", 30, nil, false, false, nil, time.Now(), time.Now()).
		AddRow("a2", "102", "b1", 60, nil, true, true, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM auditoriums WHERE building_id = $1 ORDER BY name ASC")).
		WithArgs("b1").
		WillReturnRows(rows)

	list, err := repo.ListAllByBuilding(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "101", list[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditoriumRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditoriumRepository(db)

	mock.ExpectExec("INSERT INTO auditoriums").
		WithArgs(sqlmock.AnyArg(), "101", "b1", 30, sqlmock.AnyArg(), false, false, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.Auditorium{Name: "101", BuildingID: "b1", Capacity: 30})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
