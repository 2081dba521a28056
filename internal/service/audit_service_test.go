package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

type recordingAuditRepo struct {
	mu       sync.Mutex
	logs     []models.AuditLog
	failures int
}

func (r *recordingAuditRepo) Create(_ context.Context, log *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("temporary failure")
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *recordingAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

func TestAuditServiceWritesInBackground(t *testing.T) {
	repo := &recordingAuditRepo{failures: 1}
	metrics := NewMetricsService()
	svc := NewAuditService(repo, metrics, zap.NewNop(), AuditConfig{Workers: 1, BufferSize: 4, MaxRetries: 2, RetryDelay: time.Millisecond})
	svc.Start(context.Background())

	svc.Record(models.AuditLog{ActorID: "a1", ActorRole: models.RoleAdmin, Action: models.AuditActionJobStatus, Resource: "jobs"})
	svc.Stop()

	require.Equal(t, 1, repo.count())
	assert.NotEmpty(t, repo.logs[0].ID)
	assert.False(t, repo.logs[0].CreatedAt.IsZero())
	assert.Zero(t, metrics.Snapshot().AuditDropped)
}

func TestAuditServiceDropsWhenStopped(t *testing.T) {
	repo := &recordingAuditRepo{}
	metrics := NewMetricsService()
	svc := NewAuditService(repo, metrics, zap.NewNop(), AuditConfig{Workers: 1})

	svc.Record(models.AuditLog{Action: models.AuditActionAdminDelete})

	assert.Equal(t, 0, repo.count())
	assert.Equal(t, uint64(1), metrics.Snapshot().AuditDropped)
}

func TestAuditServiceNilSafe(t *testing.T) {
	var svc *AuditService
	assert.NotPanics(t, func() {
		svc.Start(context.Background())
		svc.Record(models.AuditLog{})
		svc.Stop()
	})
}
