package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type mockContactRepo struct {
	saved     []models.Contact
	createErr error
}

func (m *mockContactRepo) Create(_ context.Context, contact *models.Contact) error {
	if m.createErr != nil {
		return m.createErr
	}
	contact.ID = "ct1"
	m.saved = append(m.saved, *contact)
	return nil
}

func (m *mockContactRepo) List(context.Context) ([]models.Contact, error) {
	return m.saved, nil
}

func (m *mockContactRepo) Delete(_ context.Context, id string) error {
	for i, c := range m.saved {
		if c.ID == id {
			m.saved = append(m.saved[:i], m.saved[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func TestContactServiceSubmitStoresNullPhone(t *testing.T) {
	repo := &mockContactRepo{}
	svc := NewContactService(repo, nil, zap.NewNop())

	contact, err := svc.Submit(context.Background(), ContactRequest{Name: "Asha", Email: "asha@example.com", Phone: "  ", Message: "Hello"})
	require.NoError(t, err)
	assert.Nil(t, contact.Phone)
	assert.Equal(t, "Asha", repo.saved[0].FullName)

	contact, err = svc.Submit(context.Background(), ContactRequest{Name: "Ravi", Email: "ravi@example.com", Phone: "98765", Message: "Hi"})
	require.NoError(t, err)
	require.NotNil(t, contact.Phone)
	assert.Equal(t, "98765", *contact.Phone)
}

func TestContactServiceSubmitValidation(t *testing.T) {
	svc := NewContactService(&mockContactRepo{}, nil, zap.NewNop())

	for _, req := range []ContactRequest{
		{Email: "a@example.com", Message: "x"},
		{Name: "A", Message: "x"},
		{Name: "A", Email: "not-an-email", Message: "x"},
		{Name: "A", Email: "a@example.com", Message: "   "},
	} {
		_, err := svc.Submit(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 400, appErrors.FromError(err).Status)
	}
}

func TestContactServiceSubmitStoreFailure(t *testing.T) {
	svc := NewContactService(&mockContactRepo{createErr: errors.New("connection refused")}, nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), ContactRequest{Name: "A", Email: "a@example.com", Message: "x"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 500, appErr.Status)
	assert.Equal(t, contactFailMessage, appErr.Message)
}
