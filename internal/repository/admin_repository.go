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

// AdminRepository manages admin accounts.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// List returns every admin ordered by username.
func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	const query = `SELECT id, username, password_hash, created_at, updated_at FROM admins ORDER BY username ASC`
	var admins []models.Admin
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// FindByID fetches an admin by ID.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	const query = `SELECT id, username, password_hash, created_at, updated_at FROM admins WHERE id = $1`
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

// ExistsByUsername checks whether another admin uses the username.
func (r *AdminRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	return existsByColumn(ctx, r.db, "admins", "username", username, excludeID)
}

// Create inserts a new admin.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	const query = `INSERT INTO admins (id, username, password_hash, created_at, updated_at)
        VALUES (:id, :username, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// Update changes the admin's username and password hash.
func (r *AdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	admin.UpdatedAt = time.Now().UTC()
	const query = `UPDATE admins SET username = :username, password_hash = :password_hash, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, admin)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return expectAffected(res, "update admin")
}

// UpdatePassword stores a new password hash.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE admins SET password_hash = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	return expectAffected(res, "update admin password")
}

// Delete removes an admin.
func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return expectAffected(res, "delete admin")
}

func existsByColumn(ctx context.Context, db *sqlx.DB, table, column, value, excludeID string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = $1", table, column)
	args := []interface{}{value}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check %s %s: %w", table, column, err)
	}
	return true, nil
}

func expectAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
