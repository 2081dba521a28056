package dto

import (
	"time"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

// AdminStats captures the headline counters on the admin dashboard.
type AdminStats struct {
	TotalStudents      int       `json:"totalStudents" db:"total_students"`
	TotalCourses       int       `json:"totalCourses" db:"total_courses"`
	TotalCertificates  int       `json:"totalCertificates" db:"total_certificates"`
	TotalFranchises    int       `json:"totalFranchises" db:"total_franchises"`
	PendingFranchises  int       `json:"pendingFranchises" db:"pending_franchises"`
	TotalJobs          int       `json:"totalJobs" db:"total_jobs"`
	ActiveJobs         int       `json:"activeJobs" db:"active_jobs"`
	TotalAdmins        int       `json:"totalAdmins" db:"total_admins"`
	TotalTeachers      int       `json:"totalTeachers" db:"total_teachers"`
	TotalContacts      int       `json:"totalContacts" db:"total_contacts"`
	PendingEnrollments int       `json:"pendingEnrollments" db:"pending_enrollments"`
	Revenue            float64   `json:"revenue" db:"revenue"`
	GeneratedAt        time.Time `json:"generatedAt" db:"-"`
}

// StudentDashboardResponse is everything a signed-in student sees on login.
type StudentDashboardResponse struct {
	Profile       models.Student             `json:"profile"`
	Enrollments   []models.EnrollmentDetail  `json:"enrollments"`
	Certificates  []models.CertificateDetail `json:"certificates"`
	Notifications []models.Notification      `json:"notifications"`
	Examinations  []models.Examination       `json:"examinations"`
	Jobs          []models.StudentJob        `json:"jobs"`
}
