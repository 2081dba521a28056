package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/repository"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type mockStudentRegistrar struct {
	mu        sync.Mutex
	next      int64
	usernames map[string]bool
	created   []models.Student
	createErr error
}

func (m *mockStudentRegistrar) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usernames[username], nil
}

func (m *mockStudentRegistrar) NextStudentNumber(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next == 0 {
		m.next = 10
	}
	n := m.next
	m.next++
	return n, nil
}

func (m *mockStudentRegistrar) Create(_ context.Context, student *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if m.usernames == nil {
		m.usernames = map[string]bool{}
	}
	m.usernames[student.Username] = true
	student.ID = fmt.Sprintf("row-%d", len(m.created)+1)
	m.created = append(m.created, *student)
	return nil
}

type mockFranchiseRegistrar struct {
	usernames map[string]bool
	emails    map[string]bool
	created   []models.Franchise
}

func (m *mockFranchiseRegistrar) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return m.usernames[username], nil
}

func (m *mockFranchiseRegistrar) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return m.emails[email], nil
}

func (m *mockFranchiseRegistrar) Create(_ context.Context, franchise *models.Franchise) error {
	franchise.ID = "f-new"
	m.created = append(m.created, *franchise)
	return nil
}

func validStudentRequest(username string) RegisterStudentRequest {
	return RegisterStudentRequest{Name: "Asha", Phone: "555", Username: username, Password: "secret", Qualification: "BSc"}
}

func TestRegisterStudentAssignsIncreasingIDs(t *testing.T) {
	repo := &mockStudentRegistrar{}
	svc := NewRegistrationService(repo, &mockFranchiseRegistrar{}, nil, zap.NewNop())

	first, err := svc.RegisterStudent(context.Background(), validStudentRequest("asha"))
	require.NoError(t, err)
	second, err := svc.RegisterStudent(context.Background(), validStudentRequest("ravi"))
	require.NoError(t, err)

	assert.Equal(t, "S10", first.StudentID)
	assert.Equal(t, "S11", second.StudentID)
	assert.NotEqual(t, "secret", first.PasswordHash)
	assert.True(t, passwordMatches(first.PasswordHash, "secret"))
}

func TestRegisterStudentConcurrentIDsAreUnique(t *testing.T) {
	repo := &mockStudentRegistrar{}
	svc := NewRegistrationService(repo, &mockFranchiseRegistrar{}, nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.RegisterStudent(context.Background(), validStudentRequest(fmt.Sprintf("user-%d", i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, s := range repo.created {
		assert.False(t, seen[s.StudentID], "duplicate id %s", s.StudentID)
		seen[s.StudentID] = true
	}
	assert.Len(t, seen, 8)
}

func TestRegisterStudentDuplicateUsername(t *testing.T) {
	repo := &mockStudentRegistrar{usernames: map[string]bool{"asha": true}}
	svc := NewRegistrationService(repo, &mockFranchiseRegistrar{}, nil, zap.NewNop())

	_, err := svc.RegisterStudent(context.Background(), validStudentRequest("asha"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, msgUsernameTaken, appErr.Message)
	assert.Empty(t, repo.created)
}

func TestRegisterStudentRaceMapsUniqueViolation(t *testing.T) {
	repo := &mockStudentRegistrar{createErr: fmt.Errorf("create student: %w", &pq.Error{Code: "23505", Constraint: repository.ConstraintStudentUsername})}
	svc := NewRegistrationService(repo, &mockFranchiseRegistrar{}, nil, zap.NewNop())

	_, err := svc.RegisterStudent(context.Background(), validStudentRequest("asha"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, msgUsernameTaken, appErr.Message)
}

func TestRegisterStudentRequiresFields(t *testing.T) {
	svc := NewRegistrationService(&mockStudentRegistrar{}, &mockFranchiseRegistrar{}, nil, zap.NewNop())

	_, err := svc.RegisterStudent(context.Background(), RegisterStudentRequest{Name: "  ", Phone: "555", Username: "a", Password: "b"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRegisterFranchise(t *testing.T) {
	repo := &mockFranchiseRegistrar{emails: map[string]bool{"taken@example.com": true}}
	svc := NewRegistrationService(&mockStudentRegistrar{}, repo, nil, zap.NewNop())

	franchise, err := svc.RegisterFranchise(context.Background(), RegisterFranchiseRequest{Name: "North", Phone: "555", Email: "north@example.com", Username: "north", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, models.FranchiseStatusPending, franchise.Status)

	_, err = svc.RegisterFranchise(context.Background(), RegisterFranchiseRequest{Name: "South", Phone: "555", Email: "taken@example.com", Username: "south", Password: "secret"})
	require.Error(t, err)
	assert.Equal(t, msgEmailTaken, appErrors.FromError(err).Message)
}

func TestStudentIDHelpers(t *testing.T) {
	assert.Equal(t, "S42", FormatStudentID(42))

	n, err := ParseStudentNumber("S42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = ParseStudentNumber("X42")
	assert.Error(t, err)
	_, err = ParseStudentNumber("Sabc")
	assert.Error(t, err)
}
