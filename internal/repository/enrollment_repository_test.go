package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

func TestEnrollmentRepositoryCreateDefaults(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("INSERT INTO course_enrollments").
		WithArgs(sqlmock.AnyArg(), "s1", "c1", sqlmock.AnyArg(), false, false, false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	enrollment := &models.Enrollment{StudentID: "s1", CourseID: "c1"}
	require.NoError(t, repo.Create(context.Background(), enrollment))
	assert.NotEmpty(t, enrollment.ID)
	assert.False(t, enrollment.JoinedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListPending(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "course_id", "joined_at", "paid", "approved", "completed", "student_number", "student_name", "course_title"}).
		AddRow("e1", "s1", "c1", time.Now(), false, false, false, "S10", "Asha", "Tally")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.approved = false ORDER BY e.joined_at ASC")).
		WillReturnRows(rows)

	pending, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Tally", pending[0].CourseTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryApproveOnlyTouchesApproved(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE course_enrollments SET approved = true WHERE student_id = $1 AND course_id = $2")).
		WithArgs("s1", "c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Approve(context.Background(), "s1", "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM course_enrollments WHERE student_id = $1 AND course_id = $2")).
		WithArgs("s1", "c9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "s1", "c9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
