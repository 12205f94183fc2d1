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
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTeacherRepositoryFindByName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows([]string{"id", "full_name", "created_at"}).
		AddRow("t1", "John Smith", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, created_at FROM teachers WHERE full_name = $1")).
		WithArgs("John Smith").
		WillReturnRows(rows)

	teacher, err := repo.FindByName(context.Background(), "John Smith")
	require.NoError(t, err)
	assert.Equal(t, "t1", teacher.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryGetOrCreateInserts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("INSERT INTO teachers").
		WithArgs(sqlmock.AnyArg(), "John Smith").
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}).AddRow("t-new", true))

	id, inserted, err := repo.GetOrCreate(context.Background(), "John Smith")
	require.NoError(t, err)
	assert.Equal(t, "t-new", id)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryGetOrCreateReusesExisting(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("INSERT INTO teachers").
		WithArgs(sqlmock.AnyArg(), "John Smith").
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}).AddRow("t-old", false))

	id, inserted, err := repo.GetOrCreate(context.Background(), "John Smith")
	require.NoError(t, err)
	assert.Equal(t, "t-old", id)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teachers WHERE id = $1 LIMIT 1")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
