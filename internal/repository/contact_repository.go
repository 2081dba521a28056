package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

// ContactRepository stores contact form submissions.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository constructs a ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a submission.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	contact.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO contacts (id, fullname, email, phone, message, created_at) VALUES (:id, :fullname, :email, :phone, :message, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// List returns submissions newest first.
func (r *ContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.SelectContext(ctx, &contacts, `SELECT id, fullname, email, phone, message, created_at FROM contacts ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Delete removes a submission.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return expectAffected(res, "delete contact")
}
