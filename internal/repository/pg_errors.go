package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

// Constraint names declared by the schema migrations.
const (
	ConstraintAdminUsername       = "admins_username_key"
	ConstraintTeacherUsername     = "teachers_username_key"
	ConstraintStudentUsername     = "students_username_key"
	ConstraintStudentNumber       = "students_student_id_key"
	ConstraintFranchiseUsername   = "franchises_username_key"
	ConstraintFranchiseEmail      = "franchises_email_key"
	ConstraintCourseTitle         = "courses_title_key"
	ConstraintEnrollmentUnique    = "course_enrollments_student_course_key"
	ConstraintCertificateIDUnique = "certificates_certificate_id_key"
)

// UniqueViolation reports whether err is a PostgreSQL unique violation and names the constraint.
func UniqueViolation(err error) (string, bool) {
	return pgViolation(err, pgUniqueViolation)
}

// ForeignKeyViolation reports whether err is a PostgreSQL foreign key violation and names the constraint.
func ForeignKeyViolation(err error) (string, bool) {
	return pgViolation(err, pgForeignKeyViolation)
}

// MalformedInput reports whether PostgreSQL rejected a parameter it could not
// parse for its column type, such as a non-UUID string compared to a UUID id.
func MalformedInput(err error) bool {
	_, ok := pgViolation(err, pgInvalidText)
	return ok
}

func pgViolation(err error, code pq.ErrorCode) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	if pqErr.Code != code {
		return "", false
	}
	return pqErr.Constraint, true
}

func pageBounds(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size, (page - 1) * size
}
