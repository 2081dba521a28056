package models

import "time"

// Enrollment links a student to a course. New rows start unapproved, unpaid and incomplete.
type Enrollment struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	JoinedAt  time.Time `db:"joined_at" json:"joined_at"`
	Paid      bool      `db:"paid" json:"paid"`
	Approved  bool      `db:"approved" json:"approved"`
	Completed bool      `db:"completed" json:"completed"`
}

// EnrollmentDetail decorates an enrollment with display names.
type EnrollmentDetail struct {
	Enrollment
	StudentNumber string `db:"student_number" json:"student_number"`
	StudentName   string `db:"student_name" json:"student_name"`
	CourseTitle   string `db:"course_title" json:"course_title"`
}
