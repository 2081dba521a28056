package models

import "time"

// Role identifies one of the four account partitions.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTeacher   Role = "teacher"
	RoleStudent   Role = "student"
	RoleFranchise Role = "franchise"
)

// Valid reports whether the role names a known partition.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleFranchise:
		return true
	}
	return false
}

// Admin is a back-office operator account.
type Admin struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Credential is the minimal account projection needed to authenticate any role.
type Credential struct {
	ID            string `db:"id"`
	Username      string `db:"username"`
	PasswordHash  string `db:"password_hash"`
	Name          string `db:"name"`
	StudentNumber string `db:"student_number"`
	Status        string `db:"status"`
}

// ListFilter captures shared paging and search options for list endpoints.
type ListFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
