package models

import "time"

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"fullname" json:"fullname"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
