package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

func TestNotificationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(sqlmock.AnyArg(), "Holiday", "Closed Friday", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	item := &models.Notification{Title: "Holiday", Description: "Closed Friday"}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.NotEmpty(t, item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExaminationRepositoryListOrdersByDate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewExaminationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "exam_date", "created_at"}).
		AddRow("x1", "Tally final", "", time.Now().Add(24*time.Hour), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM examinations ORDER BY exam_date ASC")).WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
