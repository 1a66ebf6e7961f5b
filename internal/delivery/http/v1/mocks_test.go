package v1_test

import (
	"context"

	"internview-backend/internal/domain"
	"internview-backend/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type MockUserUC struct {
	mock.Mock
}

func (m *MockUserUC) Register(ctx context.Context, in domain.RegisterInput) (*domain.UserProfile, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserUC) Login(ctx context.Context, login, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}
func (m *MockUserUC) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserUC) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserUC) GetUser(ctx context.Context, id string) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserUC) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProfile), args.Error(1)
}
func (m *MockUserUC) UpdateUser(ctx context.Context, p domain.Principal, id string, in domain.UpdateUserInput) (*domain.UserProfile, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserUC) DeleteUser(ctx context.Context, p domain.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

type MockCVUC struct {
	mock.Mock
}

func (m *MockCVUC) CreateCV(ctx context.Context, p domain.Principal, in domain.CreateCVInput) (*domain.CV, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CV), args.Error(1)
}
func (m *MockCVUC) ListCVs(ctx context.Context, withUser bool) ([]domain.CVView, error) {
	args := m.Called(ctx, withUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CVView), args.Error(1)
}
func (m *MockCVUC) GetCV(ctx context.Context, id string) (*domain.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CV), args.Error(1)
}
func (m *MockCVUC) ListByUser(ctx context.Context, userID string) ([]domain.CV, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CV), args.Error(1)
}
func (m *MockCVUC) UpdateCV(ctx context.Context, p domain.Principal, id string, in domain.UpdateCVInput) (*domain.CV, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CV), args.Error(1)
}
func (m *MockCVUC) DeleteCV(ctx context.Context, p domain.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

type MockVacancyUC struct {
	mock.Mock
}

func (m *MockVacancyUC) CreateVacancy(ctx context.Context, p domain.Principal, in domain.VacancyInput) (*domain.VacancyDetail, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VacancyDetail), args.Error(1)
}
func (m *MockVacancyUC) ListVacancies(ctx context.Context, filter domain.VacancyFilter) (*domain.VacancyList, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VacancyList), args.Error(1)
}
func (m *MockVacancyUC) GetVacancy(ctx context.Context, id string) (*domain.VacancyDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VacancyDetail), args.Error(1)
}
func (m *MockVacancyUC) UpdateVacancy(ctx context.Context, p domain.Principal, id string, in domain.VacancyInput) (*domain.VacancyDetail, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VacancyDetail), args.Error(1)
}
func (m *MockVacancyUC) DeleteVacancy(ctx context.Context, p domain.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}
func (m *MockVacancyUC) ToggleActive(ctx context.Context, p domain.Principal, id string) (*domain.VacancySummary, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VacancySummary), args.Error(1)
}
func (m *MockVacancyUC) ListMine(ctx context.Context, p domain.Principal) ([]domain.VacancySummary, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VacancySummary), args.Error(1)
}

type MockApplicationUC struct {
	mock.Mock
}

func (m *MockApplicationUC) Apply(ctx context.Context, p domain.Principal, in domain.ApplyInput) (*domain.ApplicationDetail, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationDetail), args.Error(1)
}
func (m *MockApplicationUC) ListMine(ctx context.Context, p domain.Principal) ([]domain.ApplicationDetail, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationDetail), args.Error(1)
}
func (m *MockApplicationUC) ListForVacancy(ctx context.Context, p domain.Principal, vacancyID string) ([]domain.ApplicationDetail, error) {
	args := m.Called(ctx, p, vacancyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationDetail), args.Error(1)
}
func (m *MockApplicationUC) UpdateApplication(ctx context.Context, p domain.Principal, id string, patch domain.ApplicationPatch) (*domain.ApplicationDetail, error) {
	args := m.Called(ctx, p, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationDetail), args.Error(1)
}
func (m *MockApplicationUC) DeleteApplication(ctx context.Context, p domain.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}
func (m *MockApplicationUC) ExportForVacancy(ctx context.Context, p domain.Principal, vacancyID string, format domain.ExportFormat) (*domain.ExportFile, error) {
	args := m.Called(ctx, p, vacancyID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportFile), args.Error(1)
}

type staticHealth struct {
	status usecase.HealthStatus
}

func (s staticHealth) Check(ctx context.Context) usecase.HealthStatus {
	return s.status
}
