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

func TestTaskRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "detail", "status", "due_date", "created_at", "updated_at"}).
		AddRow("tk1", "Veli toplantısı hazırlığı", nil, "open", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 50 OFFSET 0")).
		WithArgs("open").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM counselor_tasks WHERE 1=1 AND status = $1")).
		WithArgs("open").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	tasks, total, err := repo.List(context.Background(), models.TaskFilter{Status: "open"})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("INSERT INTO counselor_tasks").
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &models.CounselorTask{Title: "Veli toplantısı hazırlığı", Status: models.TaskOpen}
	err := repo.Create(context.Background(), task)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())
	assert.False(t, task.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("UPDATE counselor_tasks SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &models.CounselorTask{ID: "tk1", Title: "Güncellendi", Status: models.TaskDone}
	require.NoError(t, repo.Update(context.Background(), task))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM counselor_tasks WHERE id = $1")).
		WithArgs("tk1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "tk1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
