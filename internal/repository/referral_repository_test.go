package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulpanel/rehberlik-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestReferralRepositoryBulkInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReferralRepository(db)

	mock.ExpectExec("INSERT INTO referrals").
		WillReturnResult(sqlmock.NewResult(0, 2))

	referrals := []models.Referral{
		{TeacherName: "Ayşe Yılmaz", ClassKey: "4-A", ClassDisplay: "4. Sınıf / A Şubesi", StudentName: "Ali Can", Reason: "Devamsızlık"},
		{TeacherName: "Ayşe Yılmaz", ClassKey: "4-A", ClassDisplay: "4. Sınıf / A Şubesi", StudentName: "Ece Su", Reason: "Davranış"},
	}
	err := repo.BulkInsert(context.Background(), referrals)
	require.NoError(t, err)

	// Defaults are filled in before the exec.
	assert.NotEmpty(t, referrals[0].ID)
	assert.Equal(t, models.ReferralSourceWeb, referrals[0].Source)
	assert.False(t, referrals[0].CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepositoryBulkInsertEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReferralRepository(db)

	require.NoError(t, repo.BulkInsert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReferralRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_name", "class_key", "class_display", "student_name", "reason", "note", "source", "created_at"}).
		AddRow("r1", "Ayşe Yılmaz", "4-A", "4. Sınıf / A Şubesi", "Ali Can", "Devamsızlık", nil, "web", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 50 OFFSET 0")).
		WithArgs("%Ali%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM referrals WHERE 1=1 AND student_name ILIKE $1")).
		WithArgs("%Ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.ReferralFilter{Student: "Ali"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReferralRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM referrals WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferralRepositoryStats(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReferralRepository(db)

	first := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	last := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), MIN(created_at), MAX(created_at) FROM referrals")).
		WillReturnRows(sqlmock.NewRows([]string{"count", "min", "max"}).AddRow(5, first, last))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT reason, COUNT(*) AS count FROM referrals GROUP BY reason")).
		WillReturnRows(sqlmock.NewRows([]string{"reason", "count"}).AddRow("Devamsızlık", 3).AddRow("Davranış", 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT class_display, COUNT(*) AS count FROM referrals GROUP BY class_display")).
		WillReturnRows(sqlmock.NewRows([]string{"class_display", "count"}).AddRow("4. Sınıf / A Şubesi", 5))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	require.NotNil(t, stats.FirstSeen)
	assert.Equal(t, first, *stats.FirstSeen)
	assert.Len(t, stats.ByReason, 2)
	assert.Len(t, stats.ByClass, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
