package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type mockFranchiseRepo struct {
	items      map[string]models.Franchise
	lastFilter models.FranchiseStatus
}

func (m *mockFranchiseRepo) List(_ context.Context, status models.FranchiseStatus) ([]models.Franchise, error) {
	m.lastFilter = status
	var out []models.Franchise
	for _, f := range m.items {
		if status == "" || f.Status == status {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockFranchiseRepo) FindByID(_ context.Context, id string) (*models.Franchise, error) {
	if f, ok := m.items[id]; ok {
		return &f, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockFranchiseRepo) UpdateStatus(_ context.Context, id string, status models.FranchiseStatus) error {
	f, ok := m.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	f.Status = status
	m.items[id] = f
	return nil
}

func TestFranchiseServiceSetStatus(t *testing.T) {
	repo := &mockFranchiseRepo{items: map[string]models.Franchise{"f1": {ID: "f1", Status: models.FranchiseStatusPending}}}
	svc := NewFranchiseService(repo, nil, nil, zap.NewNop())

	updated, err := svc.SetStatus(context.Background(), "f1", FranchiseStatusRequest{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, models.FranchiseStatusApproved, updated.Status)

	updated, err = svc.SetStatus(context.Background(), "f1", FranchiseStatusRequest{Status: models.FranchiseStatusPending})
	require.NoError(t, err)
	assert.Equal(t, models.FranchiseStatusPending, updated.Status)

	_, err = svc.SetStatus(context.Background(), "f1", FranchiseStatusRequest{Status: "suspended"})
	assert.Equal(t, 400, appErrors.FromError(err).Status)

	_, err = svc.SetStatus(context.Background(), "nope", FranchiseStatusRequest{Status: models.FranchiseStatusRejected})
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestFranchiseServiceListFilter(t *testing.T) {
	repo := &mockFranchiseRepo{items: map[string]models.Franchise{
		"f1": {ID: "f1", Status: models.FranchiseStatusPending},
		"f2": {ID: "f2", Status: models.FranchiseStatusApproved},
	}}
	svc := NewFranchiseService(repo, nil, nil, zap.NewNop())

	pending, err := svc.List(context.Background(), "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, models.FranchiseStatusPending, repo.lastFilter)

	_, err = svc.List(context.Background(), "other")
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
