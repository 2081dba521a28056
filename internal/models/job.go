package models

import (
	"time"

	"github.com/lib/pq"
)

// JobStatus is the lifecycle state of a posting.
type JobStatus string

const (
	JobStatusActive    JobStatus = "active"
	JobStatusCompleted JobStatus = "completed"
	JobStatusClosed    JobStatus = "closed"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusCompleted, JobStatusClosed:
		return true
	}
	return false
}

// Job is a posting students can apply for. CertificatesRequired holds certificate
// names, spelled like the catalog course title when one matches.
type Job struct {
	ID                    string         `db:"id" json:"id"`
	Title                 string         `db:"title" json:"title"`
	Description           string         `db:"description" json:"description"`
	QualificationRequired *string        `db:"qualification_required" json:"qualification_required,omitempty"`
	CertificatesRequired  pq.StringArray `db:"certificates_required" json:"certificates_required"`
	Status                JobStatus      `db:"status" json:"status"`
	ApplicantCount        int            `db:"applicant_count" json:"applicant_count"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`
}

// JobApplication is a single student's application to a job.
type JobApplication struct {
	JobID     string    `db:"job_id" json:"job_id"`
	StudentID string    `db:"student_id" json:"student_id"`
	AppliedAt time.Time `db:"applied_at" json:"applied_at"`
}

// Applicant is the profile of a student who applied for a job.
type Applicant struct {
	StudentID     string    `db:"id" json:"id"`
	StudentNumber string    `db:"student_number" json:"student_id"`
	Name          string    `db:"name" json:"name"`
	Phone         string    `db:"phone" json:"phone"`
	Qualification string    `db:"qualification" json:"qualification"`
	AppliedAt     time.Time `db:"applied_at" json:"applied_at"`
}

// JobDetail is a job with its applicants.
type JobDetail struct {
	Job
	Applicants []Applicant `json:"applicants"`
}

// StudentJob is a job as seen by a student.
type StudentJob struct {
	Job
	Applied bool `db:"applied" json:"applied"`
}

// EligibilityReport is advisory and never blocks an application.
type EligibilityReport struct {
	JobID                 string   `json:"job_id"`
	Eligible              bool     `json:"eligible"`
	MissingCertificates   []string `json:"missing_certificates"`
	QualificationRequired string   `json:"qualification_required,omitempty"`
	StudentQualification  string   `json:"student_qualification,omitempty"`
}
