package models

import "time"

// Certificate records a course completion credential.
type Certificate struct {
	ID             string    `db:"id" json:"id"`
	CertificateID  string    `db:"certificate_id" json:"certificate_id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	CourseID       string    `db:"course_id" json:"course_id"`
	CourseDuration string    `db:"course_duration" json:"course_duration"`
	CompletionDate time.Time `db:"completion_date" json:"completion_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// CertificateDetail is what verification and listings return.
type CertificateDetail struct {
	Certificate
	StudentNumber string `db:"student_number" json:"student_number"`
	StudentName   string `db:"student_name" json:"student_name"`
	CourseTitle   string `db:"course_title" json:"course_title"`
}
