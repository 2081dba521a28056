package models

import "time"

// Teacher is an instructor account that may own courses.
type Teacher struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Phone        string    `db:"phone" json:"phone"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherDashboard lists a teacher's courses and the students enrolled in them.
type TeacherDashboard struct {
	Teacher  Teacher            `json:"teacher"`
	Courses  []Course           `json:"courses"`
	Students []EnrollmentDetail `json:"students"`
}
