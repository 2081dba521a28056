package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

func TestJobRepositoryApplyIsIdempotent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewJobRepository(db)

	insert := regexp.QuoteMeta("INSERT INTO job_applications (job_id, student_id, applied_at) VALUES ($1, $2, $3)\n        ON CONFLICT (job_id, student_id) DO NOTHING")
	mock.ExpectExec(insert).WithArgs("j1", "s1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WithArgs("j1", "s1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.Apply(context.Background(), &models.JobApplication{JobID: "j1", StudentID: "s1"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Apply(context.Background(), &models.JobApplication{JobID: "j1", StudentID: "s1"})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewJobRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "qualification_required", "certificates_required", "status", "created_at", "updated_at", "applicant_count"}).
		AddRow("j1", "Accountant", "", "B.Com", "{c1,c2}", "active", time.Now(), time.Now(), 2)
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs j WHERE j.status = $1 ORDER BY j.created_at DESC")).
		WithArgs(models.JobStatusActive).
		WillReturnRows(rows)

	jobs, err := repo.List(context.Background(), models.JobStatusActive)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, pq.StringArray{"c1", "c2"}, jobs[0].CertificatesRequired)
	assert.Equal(t, 2, jobs[0].ApplicantCount)
	require.NotNil(t, jobs[0].QualificationRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryListForStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewJobRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "description", "qualification_required", "certificates_required", "status", "created_at", "updated_at", "applicant_count", "applied"}).
		AddRow("j1", "Accountant", "", nil, "{}", "active", time.Now(), time.Now(), 1, true)
	mock.ExpectQuery(regexp.QuoteMeta("AS applied\n        FROM jobs j WHERE j.status = $2")).
		WithArgs("s1", models.JobStatusActive).
		WillReturnRows(rows)

	jobs, err := repo.ListForStudent(context.Background(), "s1", models.JobStatusActive)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].Applied)
	assert.Nil(t, jobs[0].QualificationRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
