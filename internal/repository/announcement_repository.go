package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

// NotificationRepository stores broadcast notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// List returns notifications newest first.
func (r *NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	var items []models.Notification
	if err := r.db.SelectContext(ctx, &items, `SELECT id, title, description, created_at FROM notifications ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// FindByID fetches a notification.
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	var item models.Notification
	if err := r.db.GetContext(ctx, &item, `SELECT id, title, description, created_at FROM notifications WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return &item, nil
}

// Create inserts a notification.
func (r *NotificationRepository) Create(ctx context.Context, item *models.Notification) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO notifications (id, title, description, created_at) VALUES (:id, :title, :description, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// Update modifies a notification.
func (r *NotificationRepository) Update(ctx context.Context, item *models.Notification) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE notifications SET title = :title, description = :description WHERE id = :id`, item)
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return expectAffected(res, "update notification")
}

// Delete removes a notification.
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return expectAffected(res, "delete notification")
}

// ExaminationRepository stores exam announcements.
type ExaminationRepository struct {
	db *sqlx.DB
}

// NewExaminationRepository constructs an ExaminationRepository.
func NewExaminationRepository(db *sqlx.DB) *ExaminationRepository {
	return &ExaminationRepository{db: db}
}

// List returns examinations soonest first.
func (r *ExaminationRepository) List(ctx context.Context) ([]models.Examination, error) {
	var items []models.Examination
	if err := r.db.SelectContext(ctx, &items, `SELECT id, title, description, exam_date, created_at FROM examinations ORDER BY exam_date ASC`); err != nil {
		return nil, fmt.Errorf("list examinations: %w", err)
	}
	return items, nil
}

// FindByID fetches an examination.
func (r *ExaminationRepository) FindByID(ctx context.Context, id string) (*models.Examination, error) {
	var item models.Examination
	if err := r.db.GetContext(ctx, &item, `SELECT id, title, description, exam_date, created_at FROM examinations WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find examination: %w", err)
	}
	return &item, nil
}

// Create inserts an examination.
func (r *ExaminationRepository) Create(ctx context.Context, item *models.Examination) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO examinations (id, title, description, exam_date, created_at) VALUES (:id, :title, :description, :exam_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create examination: %w", err)
	}
	return nil
}

// Update modifies an examination.
func (r *ExaminationRepository) Update(ctx context.Context, item *models.Examination) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE examinations SET title = :title, description = :description, exam_date = :exam_date WHERE id = :id`, item)
	if err != nil {
		return fmt.Errorf("update examination: %w", err)
	}
	return expectAffected(res, "update examination")
}

// Delete removes an examination.
func (r *ExaminationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM examinations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete examination: %w", err)
	}
	return expectAffected(res, "delete examination")
}
