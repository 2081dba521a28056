package models

import "time"

// FranchiseStatus is the review state of a franchise application.
type FranchiseStatus string

const (
	FranchiseStatusPending  FranchiseStatus = "pending"
	FranchiseStatusApproved FranchiseStatus = "approved"
	FranchiseStatusRejected FranchiseStatus = "rejected"
)

// Valid reports whether s is a known franchise status.
func (s FranchiseStatus) Valid() bool {
	switch s {
	case FranchiseStatusPending, FranchiseStatusApproved, FranchiseStatusRejected:
		return true
	}
	return false
}

// Franchise is a partner organisation account.
type Franchise struct {
	ID            string          `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	Phone         string          `db:"phone" json:"phone"`
	Email         string          `db:"email" json:"email"`
	Qualification string          `db:"qualification" json:"qualification"`
	Address       string          `db:"address" json:"address"`
	Username      string          `db:"username" json:"username"`
	PasswordHash  string          `db:"password_hash" json:"-"`
	Status        FranchiseStatus `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}
