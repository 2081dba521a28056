package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

// credentialQueries selects the login projection from each account partition.
var credentialQueries = map[models.Role]string{
	models.RoleAdmin: `SELECT id, username, password_hash, username AS name, '' AS student_number, '' AS status
        FROM admins WHERE username = $1 LIMIT 1`,
	models.RoleTeacher: `SELECT id, username, password_hash, full_name AS name, '' AS student_number, '' AS status
        FROM teachers WHERE username = $1 LIMIT 1`,
	models.RoleStudent: `SELECT id, username, password_hash, name, student_id AS student_number, '' AS status
        FROM students WHERE username = $1 LIMIT 1`,
	models.RoleFranchise: `SELECT id, username, password_hash, name, '' AS student_number, status
        FROM franchises WHERE username = $1 LIMIT 1`,
}

// UserRepository resolves login credentials across the four account partitions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindCredential returns the account with the given username in the role's partition.
func (r *UserRepository) FindCredential(ctx context.Context, role models.Role, username string) (*models.Credential, error) {
	query, ok := credentialQueries[role]
	if !ok {
		return nil, sql.ErrNoRows
	}
	var cred models.Credential
	if err := r.db.GetContext(ctx, &cred, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find %s credential: %w", role, err)
	}
	return &cred, nil
}
