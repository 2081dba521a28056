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

const franchiseColumns = `id, name, phone, email, qualification, address, username, password_hash, status, created_at, updated_at`

// FranchiseRepository manages franchise partner accounts.
type FranchiseRepository struct {
	db *sqlx.DB
}

// NewFranchiseRepository constructs a FranchiseRepository.
func NewFranchiseRepository(db *sqlx.DB) *FranchiseRepository {
	return &FranchiseRepository{db: db}
}

// List returns franchises, optionally restricted to one status, newest first.
func (r *FranchiseRepository) List(ctx context.Context, status models.FranchiseStatus) ([]models.Franchise, error) {
	query := fmt.Sprintf("SELECT %s FROM franchises", franchiseColumns)
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	var franchises []models.Franchise
	if err := r.db.SelectContext(ctx, &franchises, query, args...); err != nil {
		return nil, fmt.Errorf("list franchises: %w", err)
	}
	return franchises, nil
}

// FindByID fetches a franchise by ID.
func (r *FranchiseRepository) FindByID(ctx context.Context, id string) (*models.Franchise, error) {
	query := fmt.Sprintf("SELECT %s FROM franchises WHERE id = $1", franchiseColumns)
	var franchise models.Franchise
	if err := r.db.GetContext(ctx, &franchise, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find franchise: %w", err)
	}
	return &franchise, nil
}

// ExistsByUsername checks whether a franchise already uses the username.
func (r *FranchiseRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return existsByColumn(ctx, r.db, "franchises", "username", username, "")
}

// ExistsByEmail checks whether a franchise already registered the email.
func (r *FranchiseRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return existsByColumn(ctx, r.db, "franchises", "email", email, "")
}

// Create inserts a franchise application.
func (r *FranchiseRepository) Create(ctx context.Context, franchise *models.Franchise) error {
	if franchise.ID == "" {
		franchise.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	franchise.CreatedAt = now
	franchise.UpdatedAt = now
	const query = `INSERT INTO franchises (id, name, phone, email, qualification, address, username, password_hash, status, created_at, updated_at)
        VALUES (:id, :name, :phone, :email, :qualification, :address, :username, :password_hash, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, franchise); err != nil {
		return fmt.Errorf("create franchise: %w", err)
	}
	return nil
}

// UpdateStatus records the review decision for a franchise.
func (r *FranchiseRepository) UpdateStatus(ctx context.Context, id string, status models.FranchiseStatus) error {
	const query = `UPDATE franchises SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update franchise status: %w", err)
	}
	return expectAffected(res, "update franchise status")
}
