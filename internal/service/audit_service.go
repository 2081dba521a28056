package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/pkg/jobs"
)

const auditJobType = "audit_log"

type auditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuditConfig sizes the background writer.
type AuditConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// AuditService records admin mutations off the request path. Write failures
// are logged and counted, never returned to the caller.
type AuditService struct {
	repo       auditWriter
	queue      *jobs.Queue
	metrics    *MetricsService
	logger     *zap.Logger
	maxRetries int
	now        func() time.Time
}

// NewAuditService constructs an AuditService with its own worker queue.
func NewAuditService(repo auditWriter, metrics *MetricsService, logger *zap.Logger, cfg AuditConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	svc := &AuditService{repo: repo, metrics: metrics, logger: logger, maxRetries: cfg.MaxRetries, now: time.Now}
	svc.queue = jobs.NewQueue("audit", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		BufferSize: cfg.BufferSize,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the workers.
func (s *AuditService) Start(ctx context.Context) {
	if s == nil {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains pending records and stops the workers.
func (s *AuditService) Stop() {
	if s == nil {
		return
	}
	s.queue.Stop()
}

// Record schedules an audit entry for writing.
func (s *AuditService) Record(entry models.AuditLog) {
	if s == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: auditJobType, Payload: entry}); err != nil {
		s.metrics.RecordAudit("dropped")
		s.logger.Sugar().Warnw("audit record dropped", "action", entry.Action, "actor_id", entry.ActorID, "error", err)
	}
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.AuditLog)
	if !ok {
		s.logger.Sugar().Errorw("unexpected audit payload", "job_id", job.ID)
		return nil
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		if job.Attempt >= s.maxRetries || errors.Is(err, context.Canceled) {
			s.metrics.RecordAudit("failed")
		}
		return err
	}
	s.metrics.RecordAudit("written")
	return nil
}
