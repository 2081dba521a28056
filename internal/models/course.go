package models

import "time"

// Course is an offering students can enroll in.
type Course struct {
	ID                 string    `db:"id" json:"id"`
	Title              string    `db:"title" json:"title"`
	Description        string    `db:"description" json:"description"`
	Duration           string    `db:"duration" json:"duration"`
	Fee                float64   `db:"fee" json:"fee"`
	Paid               bool      `db:"paid" json:"paid"`
	CertificationGiven bool      `db:"certification_given" json:"certification_given"`
	TeacherID          *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
