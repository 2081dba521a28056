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

const certificateDetailSelect = `SELECT ct.id, ct.certificate_id, ct.student_id, ct.course_id, ct.course_duration, ct.completion_date, ct.created_at,
        s.student_id AS student_number, s.name AS student_name, c.title AS course_title
        FROM certificates ct
        JOIN students s ON s.id = ct.student_id
        JOIN courses c ON c.id = ct.course_id`

// CertificateRepository persists issued certificates.
type CertificateRepository struct {
	db *sqlx.DB
}

// NewCertificateRepository constructs a CertificateRepository.
func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create inserts a certificate. A duplicate certificate_id fails on the unique constraint.
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	cert.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO certificates (id, certificate_id, student_id, course_id, course_duration, completion_date, created_at)
        VALUES (:id, :certificate_id, :student_id, :course_id, :course_duration, :completion_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cert); err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	return nil
}

// FindByCertificateID looks up a certificate by its exact public identifier.
func (r *CertificateRepository) FindByCertificateID(ctx context.Context, certificateID string) (*models.CertificateDetail, error) {
	query := certificateDetailSelect + " WHERE ct.certificate_id = $1"
	var detail models.CertificateDetail
	if err := r.db.GetContext(ctx, &detail, query, certificateID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find certificate: %w", err)
	}
	return &detail, nil
}

// FindByID fetches a certificate by row ID.
func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*models.CertificateDetail, error) {
	query := certificateDetailSelect + " WHERE ct.id = $1"
	var detail models.CertificateDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find certificate by id: %w", err)
	}
	return &detail, nil
}

// List returns every certificate, most recently issued first.
func (r *CertificateRepository) List(ctx context.Context) ([]models.CertificateDetail, error) {
	var details []models.CertificateDetail
	if err := r.db.SelectContext(ctx, &details, certificateDetailSelect+" ORDER BY ct.created_at DESC"); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return details, nil
}

// ListByStudent returns the certificates held by one student.
func (r *CertificateRepository) ListByStudent(ctx context.Context, studentID string) ([]models.CertificateDetail, error) {
	var details []models.CertificateDetail
	if err := r.db.SelectContext(ctx, &details, certificateDetailSelect+" WHERE ct.student_id = $1 ORDER BY ct.completion_date ASC", studentID); err != nil {
		return nil, fmt.Errorf("list student certificates: %w", err)
	}
	return details, nil
}

// Delete removes a certificate by row ID.
func (r *CertificateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete certificate: %w", err)
	}
	return expectAffected(res, "delete certificate")
}
