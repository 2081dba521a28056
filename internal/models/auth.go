package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating against one partition.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=admin teacher student franchise"`
}

// LoginResponse returns the issued token and the session it encodes.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	Session     Session   `json:"session"`
	IssuedAt    time.Time `json:"issued_at"`
}

// ChangePasswordRequest payload for updating the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Session describes who is signed in. Role decides which of the optional
// fields are meaningful; use the As* helpers instead of reading them directly.
type Session struct {
	UserID        string          `json:"id"`
	Username      string          `json:"username"`
	Role          Role            `json:"role"`
	Name          string          `json:"name,omitempty"`
	StudentNumber string          `json:"student_id,omitempty"`
	Status        FranchiseStatus `json:"status,omitempty"`
}

// AdminSession is the admin view of a session.
type AdminSession struct {
	ID       string
	Username string
}

// TeacherSession is the teacher view of a session.
type TeacherSession struct {
	ID       string
	Username string
	FullName string
}

// StudentSession is the student view of a session.
type StudentSession struct {
	ID            string
	StudentNumber string
	Username      string
	Name          string
}

// FranchiseSession is the franchise view of a session.
type FranchiseSession struct {
	ID       string
	Username string
	Name     string
	Status   FranchiseStatus
}

// AsAdmin returns the admin view when the session belongs to an admin.
func (s Session) AsAdmin() (AdminSession, bool) {
	if s.Role != RoleAdmin || s.UserID == "" {
		return AdminSession{}, false
	}
	return AdminSession{ID: s.UserID, Username: s.Username}, true
}

// AsTeacher returns the teacher view when the session belongs to a teacher.
func (s Session) AsTeacher() (TeacherSession, bool) {
	if s.Role != RoleTeacher || s.UserID == "" {
		return TeacherSession{}, false
	}
	return TeacherSession{ID: s.UserID, Username: s.Username, FullName: s.Name}, true
}

// AsStudent returns the student view when the session belongs to a student.
func (s Session) AsStudent() (StudentSession, bool) {
	if s.Role != RoleStudent || s.UserID == "" {
		return StudentSession{}, false
	}
	return StudentSession{ID: s.UserID, StudentNumber: s.StudentNumber, Username: s.Username, Name: s.Name}, true
}

// AsFranchise returns the franchise view when the session belongs to a franchise.
func (s Session) AsFranchise() (FranchiseSession, bool) {
	if s.Role != RoleFranchise || s.UserID == "" {
		return FranchiseSession{}, false
	}
	return FranchiseSession{ID: s.UserID, Username: s.Username, Name: s.Name, Status: s.Status}, true
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	Session
	jwt.RegisteredClaims
}
