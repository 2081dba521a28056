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

var studentRowColumns = []string{"id", "student_id", "name", "phone", "username", "password_hash", "address", "qualification", "created_at", "updated_at"}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentRowColumns).
		AddRow("1", "S10", "Asha", "555", "asha", "hash", "Street", "BSc", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + studentColumns + " FROM students WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, "S10", students[0].StudentID)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryNextStudentNumber(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT nextval('student_number_seq')")).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT nextval('student_number_seq')")).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(11))

	first, err := repo.NextStudentNumber(context.Background())
	require.NoError(t, err)
	second, err := repo.NextStudentNumber(context.Background())
	require.NoError(t, err)
	assert.Greater(t, second, first)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), "S10", "Asha", "555", "asha", "hash", "Street", "BSc", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{StudentID: "S10", Name: "Asha", Phone: "555", Username: "asha", PasswordHash: "hash", Address: "Street", Qualification: "BSc"}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
