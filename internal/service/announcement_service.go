package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type notificationRepository interface {
	List(ctx context.Context) ([]models.Notification, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	Create(ctx context.Context, item *models.Notification) error
	Update(ctx context.Context, item *models.Notification) error
	Delete(ctx context.Context, id string) error
}

type examinationRepository interface {
	List(ctx context.Context) ([]models.Examination, error)
	FindByID(ctx context.Context, id string) (*models.Examination, error)
	Create(ctx context.Context, item *models.Examination) error
	Update(ctx context.Context, item *models.Examination) error
	Delete(ctx context.Context, id string) error
}

// NotificationRequest describes create and update payloads for notifications.
type NotificationRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

// ExaminationRequest describes create and update payloads for examinations.
type ExaminationRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	ExamDate    string `json:"exam_date" validate:"required,datetime=2006-01-02"`
}

// AnnouncementService manages notifications and examination notices shown on dashboards.
type AnnouncementService struct {
	notifications notificationRepository
	examinations  examinationRepository
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(notifications notificationRepository, examinations examinationRepository, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{notifications: notifications, examinations: examinations, validator: validate, logger: logger}
}

// ListNotifications returns notifications newest first.
func (s *AnnouncementService) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	items, err := s.notifications.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load notifications")
	}
	return items, nil
}

// CreateNotification publishes a notification.
func (s *AnnouncementService) CreateNotification(ctx context.Context, req NotificationRequest) (*models.Notification, error) {
	if err := s.validateNotification(&req); err != nil {
		return nil, err
	}
	item := &models.Notification{Title: req.Title, Description: req.Description}
	if err := s.notifications.Create(ctx, item); err != nil {
		return nil, appErrors.Internal(err, "failed to create notification")
	}
	return item, nil
}

// UpdateNotification edits a notification.
func (s *AnnouncementService) UpdateNotification(ctx context.Context, id string, req NotificationRequest) (*models.Notification, error) {
	if err := s.validateNotification(&req); err != nil {
		return nil, err
	}
	item, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notification not found", "failed to load notification")
	}
	item.Title = req.Title
	item.Description = req.Description
	if err := s.notifications.Update(ctx, item); err != nil {
		return nil, lookupError(err, "notification not found", "failed to update notification")
	}
	return item, nil
}

// DeleteNotification removes a notification.
func (s *AnnouncementService) DeleteNotification(ctx context.Context, id string) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		return lookupError(err, "notification not found", "failed to delete notification")
	}
	return nil
}

// ListExaminations returns examinations in date order.
func (s *AnnouncementService) ListExaminations(ctx context.Context) ([]models.Examination, error) {
	items, err := s.examinations.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load examinations")
	}
	return items, nil
}

// CreateExamination announces an exam.
func (s *AnnouncementService) CreateExamination(ctx context.Context, req ExaminationRequest) (*models.Examination, error) {
	date, err := s.validateExamination(&req)
	if err != nil {
		return nil, err
	}
	item := &models.Examination{Title: req.Title, Description: req.Description, ExamDate: date}
	if err := s.examinations.Create(ctx, item); err != nil {
		return nil, appErrors.Internal(err, "failed to create examination")
	}
	return item, nil
}

// UpdateExamination edits an exam notice.
func (s *AnnouncementService) UpdateExamination(ctx context.Context, id string, req ExaminationRequest) (*models.Examination, error) {
	date, err := s.validateExamination(&req)
	if err != nil {
		return nil, err
	}
	item, err := s.examinations.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "examination not found", "failed to load examination")
	}
	item.Title = req.Title
	item.Description = req.Description
	item.ExamDate = date
	if err := s.examinations.Update(ctx, item); err != nil {
		return nil, lookupError(err, "examination not found", "failed to update examination")
	}
	return item, nil
}

// DeleteExamination removes an exam notice.
func (s *AnnouncementService) DeleteExamination(ctx context.Context, id string) error {
	if err := s.examinations.Delete(ctx, id); err != nil {
		return lookupError(err, "examination not found", "failed to delete examination")
	}
	return nil
}

func (s *AnnouncementService) validateNotification(req *NotificationRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "title and description are required")
	}
	return nil
}

func (s *AnnouncementService) validateExamination(req *ExaminationRequest) (time.Time, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return time.Time{}, appErrors.Validation(err, "title and exam_date (YYYY-MM-DD) are required")
	}
	date, err := time.Parse(dateLayout, req.ExamDate)
	if err != nil {
		return time.Time{}, appErrors.Validation(err, "exam_date must be YYYY-MM-DD")
	}
	return date, nil
}
