package models

import "time"

// Notification is a broadcast message shown on every dashboard.
type Notification struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Examination announces an upcoming exam.
type Examination struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	ExamDate    time.Time `db:"exam_date" json:"exam_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
