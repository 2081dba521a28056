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

type memNotifications struct {
	items map[string]models.Notification
}

func (m *memNotifications) List(context.Context) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.items {
		out = append(out, n)
	}
	return out, nil
}

func (m *memNotifications) FindByID(_ context.Context, id string) (*models.Notification, error) {
	if n, ok := m.items[id]; ok {
		return &n, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memNotifications) Create(_ context.Context, item *models.Notification) error {
	item.ID = "n" + item.Title
	m.items[item.ID] = *item
	return nil
}

func (m *memNotifications) Update(_ context.Context, item *models.Notification) error {
	m.items[item.ID] = *item
	return nil
}

func (m *memNotifications) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type memExaminations struct {
	items map[string]models.Examination
}

func (m *memExaminations) List(context.Context) ([]models.Examination, error) {
	var out []models.Examination
	for _, e := range m.items {
		out = append(out, e)
	}
	return out, nil
}

func (m *memExaminations) FindByID(_ context.Context, id string) (*models.Examination, error) {
	if e, ok := m.items[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memExaminations) Create(_ context.Context, item *models.Examination) error {
	item.ID = "e" + item.Title
	m.items[item.ID] = *item
	return nil
}

func (m *memExaminations) Update(_ context.Context, item *models.Examination) error {
	m.items[item.ID] = *item
	return nil
}

func (m *memExaminations) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func newTestAnnouncementService() (*AnnouncementService, *memNotifications, *memExaminations) {
	notes := &memNotifications{items: map[string]models.Notification{}}
	exams := &memExaminations{items: map[string]models.Examination{}}
	return NewAnnouncementService(notes, exams, nil, zap.NewNop()), notes, exams
}

func TestAnnouncementServiceNotifications(t *testing.T) {
	svc, notes, _ := newTestAnnouncementService()

	created, err := svc.CreateNotification(context.Background(), NotificationRequest{Title: " Holiday ", Description: "Closed Monday"})
	require.NoError(t, err)
	assert.Equal(t, "Holiday", created.Title)

	_, err = svc.CreateNotification(context.Background(), NotificationRequest{Title: "  "})
	assert.Equal(t, 400, appErrors.FromError(err).Status)

	updated, err := svc.UpdateNotification(context.Background(), created.ID, NotificationRequest{Title: "Holiday", Description: "Closed Tuesday"})
	require.NoError(t, err)
	assert.Equal(t, "Closed Tuesday", notes.items[created.ID].Description)
	assert.Equal(t, created.ID, updated.ID)

	require.NoError(t, svc.DeleteNotification(context.Background(), created.ID))
	err = svc.DeleteNotification(context.Background(), created.ID)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestAnnouncementServiceExaminationDate(t *testing.T) {
	svc, _, exams := newTestAnnouncementService()

	created, err := svc.CreateExamination(context.Background(), ExaminationRequest{Title: "Tally final", ExamDate: "2024-06-15"})
	require.NoError(t, err)
	assert.Equal(t, 15, exams.items[created.ID].ExamDate.Day())

	_, err = svc.CreateExamination(context.Background(), ExaminationRequest{Title: "Bad", ExamDate: "15/06/2024"})
	assert.Equal(t, 400, appErrors.FromError(err).Status)

	_, err = svc.UpdateExamination(context.Background(), "missing", ExaminationRequest{Title: "x", ExamDate: "2024-06-15"})
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
