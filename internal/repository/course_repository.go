package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

const courseColumns = `id, title, description, duration, fee, paid, certification_given, teacher_id, created_at, updated_at`

// CourseRepository manages the course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course ordered by title.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses ORDER BY title ASC", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByTeacher returns the courses owned by a teacher.
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE teacher_id = $1 ORDER BY title ASC", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	return courses, nil
}

// ListByTitles returns the courses whose titles match any of the given names,
// ignoring case and surrounding spaces. Unknown names are skipped.
func (r *CourseRepository) ListByTitles(ctx context.Context, titles []string) ([]models.Course, error) {
	keys := make([]string, 0, len(titles))
	for _, title := range titles {
		if key := strings.ToLower(strings.TrimSpace(title)); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return []models.Course{}, nil
	}
	query := fmt.Sprintf("SELECT %s FROM courses WHERE LOWER(title) = ANY($1) ORDER BY title ASC", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, pq.Array(keys)); err != nil {
		return nil, fmt.Errorf("list courses by titles: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

// ExistsByTitle checks whether another course uses the title, case-insensitively.
func (r *CourseRepository) ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error) {
	query := "SELECT 1 FROM courses WHERE LOWER(title) = $1"
	args := []interface{}{strings.ToLower(title)}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course title: %w", err)
	}
	return true, nil
}

// Create inserts a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, title, description, duration, fee, paid, certification_given, teacher_id, created_at, updated_at)
        VALUES (:id, :title, :description, :duration, :fee, :paid, :certification_given, :teacher_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET title = :title, description = :description, duration = :duration, fee = :fee, paid = :paid,
        certification_given = :certification_given, teacher_id = :teacher_id, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return expectAffected(res, "update course")
}

// Delete removes a course and its enrollments. Courses referenced by certificates cannot be removed.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return expectAffected(res, "delete course")
}
