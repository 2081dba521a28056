package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

const enrollmentDetailSelect = `SELECT e.id, e.student_id, e.course_id, e.joined_at, e.paid, e.approved, e.completed,
        s.student_id AS student_number, s.name AS student_name, c.title AS course_title
        FROM course_enrollments e
        JOIN students s ON s.id = e.student_id
        JOIN courses c ON c.id = e.course_id`

// EnrollmentRepository manages the student to course link.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment. A duplicate (student, course) pair fails on the unique constraint.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.JoinedAt.IsZero() {
		enrollment.JoinedAt = time.Now().UTC()
	}
	const query = `INSERT INTO course_enrollments (id, student_id, course_id, joined_at, paid, approved, completed)
        VALUES (:id, :student_id, :course_id, :joined_at, :paid, :approved, :completed)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// ListPending returns every unapproved enrollment, oldest first.
func (r *EnrollmentRepository) ListPending(ctx context.Context) ([]models.EnrollmentDetail, error) {
	query := enrollmentDetailSelect + " WHERE e.approved = false ORDER BY e.joined_at ASC"
	var details []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("list pending enrollments: %w", err)
	}
	return details, nil
}

// ListByStudent returns a student's enrollments in the order they joined.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	query := enrollmentDetailSelect + " WHERE e.student_id = $1 ORDER BY e.joined_at ASC"
	var details []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &details, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return details, nil
}

// ListByTeacher returns enrollments in courses owned by the teacher.
func (r *EnrollmentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.EnrollmentDetail, error) {
	query := enrollmentDetailSelect + " WHERE c.teacher_id = $1 ORDER BY c.title ASC, e.joined_at ASC"
	var details []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &details, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher enrollments: %w", err)
	}
	return details, nil
}

// Approve flips the approved flag of one enrollment and leaves every other field untouched.
func (r *EnrollmentRepository) Approve(ctx context.Context, studentID, courseID string) error {
	const query = `UPDATE course_enrollments SET approved = true WHERE student_id = $1 AND course_id = $2`
	res, err := r.db.ExecContext(ctx, query, studentID, courseID)
	if err != nil {
		return fmt.Errorf("approve enrollment: %w", err)
	}
	return expectAffected(res, "approve enrollment")
}

// Delete removes exactly one enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID string) error {
	const query = `DELETE FROM course_enrollments WHERE student_id = $1 AND course_id = $2`
	res, err := r.db.ExecContext(ctx, query, studentID, courseID)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return expectAffected(res, "delete enrollment")
}
