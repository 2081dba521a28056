package models

import "time"

// StudentIDPrefix precedes the numeric part of every student number.
const StudentIDPrefix = "S"

// Student represents a registered learner.
type Student struct {
	ID            string    `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"student_id"`
	Name          string    `db:"name" json:"name"`
	Phone         string    `db:"phone" json:"phone"`
	Username      string    `db:"username" json:"username"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Address       string    `db:"address" json:"address"`
	Qualification string    `db:"qualification" json:"qualification"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// StudentProfile is a student together with enrollments and certificates.
type StudentProfile struct {
	Student
	Enrollments  []EnrollmentDetail  `json:"enrolled_courses"`
	Certificates []CertificateDetail `json:"certificates"`
}
