package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulpanel/rehberlik-api/internal/models"
)

func TestRosterRepositoryListTeachers(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "normalized_name", "allowed_class_key", "imported_at"}).
		AddRow("t1", "Ayşe Yılmaz", "ayse yilmaz", "4-A", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, normalized_name, allowed_class_key, imported_at FROM roster_teachers ORDER BY name ASC")).
		WillReturnRows(rows)

	teachers, err := repo.ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "ayse yilmaz", teachers[0].NormalizedName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryClassMap(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	rows := sqlmock.NewRows([]string{"display", "key"}).
		AddRow("4. Sınıf / A Şubesi", "4-A")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT display, "key" FROM class_mappings ORDER BY "key" ASC`)).
		WillReturnRows(rows)

	mappings, err := repo.ClassMap(context.Background())
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "4-A", mappings[0].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM roster_teachers")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_mappings")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO roster_teachers").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO class_mappings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	teachers := []models.RosterTeacher{
		{Name: "Ayşe Yılmaz", NormalizedName: "ayse yilmaz", AllowedClassKey: "4-A"},
	}
	mappings := []models.ClassMapping{
		{Display: "4. Sınıf / A Şubesi", Key: "4-A"},
	}
	err := repo.ReplaceAll(context.Background(), teachers, mappings)
	require.NoError(t, err)

	assert.NotEmpty(t, teachers[0].ID)
	assert.False(t, teachers[0].ImportedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryReplaceAllEmptyRoster(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM roster_teachers")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_mappings")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAll(context.Background(), nil, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
