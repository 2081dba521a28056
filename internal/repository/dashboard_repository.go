package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/rite-edu-api/internal/dto"
)

const adminStatsQuery = `SELECT
        (SELECT COUNT(*) FROM students) AS total_students,
        (SELECT COUNT(*) FROM courses) AS total_courses,
        (SELECT COUNT(*) FROM certificates) AS total_certificates,
        (SELECT COUNT(*) FROM franchises) AS total_franchises,
        (SELECT COUNT(*) FROM franchises WHERE status = 'pending') AS pending_franchises,
        (SELECT COUNT(*) FROM jobs) AS total_jobs,
        (SELECT COUNT(*) FROM jobs WHERE status = 'active') AS active_jobs,
        (SELECT COUNT(*) FROM admins) AS total_admins,
        (SELECT COUNT(*) FROM teachers) AS total_teachers,
        (SELECT COUNT(*) FROM contacts) AS total_contacts,
        (SELECT COUNT(*) FROM course_enrollments WHERE approved = false) AS pending_enrollments,
        (SELECT COALESCE(SUM(fee), 0) FROM courses WHERE paid = true) AS revenue`

// DashboardRepository runs the aggregate queries behind the dashboards.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// AdminStats returns headline counters and revenue in a single round trip.
func (r *DashboardRepository) AdminStats(ctx context.Context) (*dto.AdminStats, error) {
	var stats dto.AdminStats
	if err := r.db.GetContext(ctx, &stats, adminStatsQuery); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return &stats, nil
}
