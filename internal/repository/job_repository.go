package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

const jobSelect = `SELECT j.id, j.title, j.description, j.qualification_required, j.certificates_required, j.status, j.created_at, j.updated_at,
        (SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id) AS applicant_count
        FROM jobs j`

// JobRepository manages job postings and their applications.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs a JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// List returns jobs newest first, optionally filtered by status.
func (r *JobRepository) List(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	query := jobSelect
	args := []interface{}{}
	if status != "" {
		query += " WHERE j.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY j.created_at DESC"
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// ListForStudent returns jobs with a flag telling whether the student has applied.
func (r *JobRepository) ListForStudent(ctx context.Context, studentID string, status models.JobStatus) ([]models.StudentJob, error) {
	query := `SELECT j.id, j.title, j.description, j.qualification_required, j.certificates_required, j.status, j.created_at, j.updated_at,
        (SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id) AS applicant_count,
        EXISTS (SELECT 1 FROM job_applications a WHERE a.job_id = j.id AND a.student_id = $1) AS applied
        FROM jobs j`
	args := []interface{}{studentID}
	if status != "" {
		query += " WHERE j.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY j.created_at DESC"
	var jobs []models.StudentJob
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("list student jobs: %w", err)
	}
	return jobs, nil
}

// FindByID fetches a job by ID.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.db.GetContext(ctx, &job, jobSelect+" WHERE j.id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

// Create inserts a job posting.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	const query = `INSERT INTO jobs (id, title, description, qualification_required, certificates_required, status, created_at, updated_at)
        VALUES (:id, :title, :description, :qualification_required, :certificates_required, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// Update rewrites the descriptive fields of a job. Status changes go through UpdateStatus.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	const query = `UPDATE jobs SET title = :title, description = :description, qualification_required = :qualification_required,
        certificates_required = :certificates_required, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, job)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return expectAffected(res, "update job")
}

// UpdateStatus moves a job to a new lifecycle state.
func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status models.JobStatus) error {
	const query = `UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return expectAffected(res, "update job status")
}

// Delete removes a job and its applications.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return expectAffected(res, "delete job")
}

// Apply records an application. It reports false when the student had already applied.
func (r *JobRepository) Apply(ctx context.Context, application *models.JobApplication) (bool, error) {
	if application.AppliedAt.IsZero() {
		application.AppliedAt = time.Now().UTC()
	}
	const query = `INSERT INTO job_applications (job_id, student_id, applied_at) VALUES ($1, $2, $3)
        ON CONFLICT (job_id, student_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, application.JobID, application.StudentID, application.AppliedAt)
	if err != nil {
		return false, fmt.Errorf("apply for job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("apply for job rows: %w", err)
	}
	return affected > 0, nil
}

// Applicants returns the profiles of students who applied, in application order.
func (r *JobRepository) Applicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	const query = `SELECT s.id, s.student_id AS student_number, s.name, s.phone, s.qualification, a.applied_at
        FROM job_applications a
        JOIN students s ON s.id = a.student_id
        WHERE a.job_id = $1
        ORDER BY a.applied_at ASC`
	var applicants []models.Applicant
	if err := r.db.SelectContext(ctx, &applicants, query, jobID); err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return applicants, nil
}
