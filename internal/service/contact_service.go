package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

const (
	// ContactSentMessage is shown after a successful submission.
	ContactSentMessage = "Your message has been sent successfully!"
	contactFailMessage = "Failed to send message. Please try again."
)

type contactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=150"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactService stores contact form messages.
type ContactService struct {
	repo      contactRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs a ContactService.
func NewContactService(repo contactRepository, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, validator: validate, logger: logger}
}

// Submit stores a message. An empty phone is stored as NULL.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*models.Contact, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "name, a valid email and message are required")
	}
	contact := &models.Contact{
		FullName: req.Name,
		Email:    req.Email,
		Phone:    normalizeOptional(&req.Phone),
		Message:  req.Message,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		s.logger.Error("contact submission failed", zap.Error(err))
		return nil, appErrors.Internal(err, contactFailMessage)
	}
	return contact, nil
}

// List returns all messages newest first.
func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load contacts")
	}
	return items, nil
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "contact not found", "failed to delete contact")
	}
	return nil
}
