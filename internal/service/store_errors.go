package service

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/rite-edu-api/internal/repository"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

const (
	msgUsernameTaken   = "Username already exists. Please choose a different username."
	msgEmailTaken      = "Email already registered. Please use a different email."
	msgCourseTitle     = "A course with this title already exists."
	msgAlreadyEnrolled = "You are already enrolled in this course."
	msgAlreadyApplied  = "You have already applied for this job."
	msgCertificateID   = "Certificate ID already exists."
)

// uniqueMessages maps schema unique constraints to the message a user sees.
var uniqueMessages = map[string]string{
	repository.ConstraintAdminUsername:       msgUsernameTaken,
	repository.ConstraintTeacherUsername:     msgUsernameTaken,
	repository.ConstraintStudentUsername:     msgUsernameTaken,
	repository.ConstraintFranchiseUsername:   msgUsernameTaken,
	repository.ConstraintFranchiseEmail:      msgEmailTaken,
	repository.ConstraintCourseTitle:         msgCourseTitle,
	repository.ConstraintEnrollmentUnique:    msgAlreadyEnrolled,
	repository.ConstraintCertificateIDUnique: msgCertificateID,
}

// storeError converts a repository failure into a typed error. Constraint
// violations become conflicts; anything else is an internal error carrying message.
func storeError(err error, message string) error {
	if err == nil {
		return nil
	}
	if constraint, ok := repository.UniqueViolation(err); ok {
		if msg, known := uniqueMessages[constraint]; known {
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, msg)
		}
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "record already exists")
	}
	if _, ok := repository.ForeignKeyViolation(err); ok {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "referenced record does not exist or is still in use")
	}
	if repository.MalformedInput(err) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid identifier")
	}
	return appErrors.Internal(err, message)
}

// lookupError maps sql.ErrNoRows to a not-found error and everything else to internal.
// An id the database cannot parse cannot match a row, so it is not found as well.
func lookupError(err error, notFound, message string) error {
	if errors.Is(err, sql.ErrNoRows) || repository.MalformedInput(err) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Internal(err, message)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.Internal(err, "failed to hash password")
	}
	return string(hash), nil
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
