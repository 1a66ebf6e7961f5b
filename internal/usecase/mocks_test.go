package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"internview-backend/internal/domain"
	"internview-backend/internal/usecase"
	"internview-backend/pkg/storage"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockUserRepo) CountOwnedResources(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockCVRepo struct {
	mock.Mock
}

func (m *MockCVRepo) Create(ctx context.Context, cv *domain.CV) error {
	return m.Called(ctx, cv).Error(0)
}
func (m *MockCVRepo) GetByID(ctx context.Context, id string) (*domain.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CV), args.Error(1)
}
func (m *MockCVRepo) List(ctx context.Context) ([]domain.CV, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CV), args.Error(1)
}
func (m *MockCVRepo) ListWithOwner(ctx context.Context) ([]domain.CVView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CVView), args.Error(1)
}
func (m *MockCVRepo) ListByUserID(ctx context.Context, userID string) ([]domain.CV, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CV), args.Error(1)
}
func (m *MockCVRepo) Update(ctx context.Context, cv *domain.CV) error {
	return m.Called(ctx, cv).Error(0)
}
func (m *MockCVRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockVacancyRepo struct {
	mock.Mock
}

func (m *MockVacancyRepo) Create(ctx context.Context, v *domain.Vacancy) error {
	return m.Called(ctx, v).Error(0)
}
func (m *MockVacancyRepo) GetByID(ctx context.Context, id string) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}
func (m *MockVacancyRepo) GetDetail(ctx context.Context, id string) (*domain.VacancyDetail, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, string) *domain.VacancyDetail); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VacancyDetail), args.Error(1)
}
func (m *MockVacancyRepo) List(ctx context.Context, filter domain.VacancyFilter) ([]domain.VacancySummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VacancySummary), args.Error(1)
}
func (m *MockVacancyRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.VacancySummary, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VacancySummary), args.Error(1)
}
func (m *MockVacancyRepo) Update(ctx context.Context, v *domain.Vacancy) error {
	return m.Called(ctx, v).Error(0)
}
func (m *MockVacancyRepo) ToggleActive(ctx context.Context, id string) (*domain.VacancySummary, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, string) *domain.VacancySummary); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VacancySummary), args.Error(1)
}
func (m *MockVacancyRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetDetail(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationDetail), args.Error(1)
}
func (m *MockApplicationRepo) ListByIntern(ctx context.Context, internID string) ([]domain.ApplicationDetail, error) {
	args := m.Called(ctx, internID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationDetail), args.Error(1)
}
func (m *MockApplicationRepo) ListByVacancy(ctx context.Context, vacancyID string) ([]domain.ApplicationDetail, error) {
	args := m.Called(ctx, vacancyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationDetail), args.Error(1)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, vacancyID, internID string) (bool, error) {
	args := m.Called(ctx, vacancyID, internID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) Update(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// Fixtures

var (
	intern    = domain.Principal{UserID: "intern-1", Role: domain.RoleIntern}
	intern2   = domain.Principal{UserID: "intern-2", Role: domain.RoleIntern}
	recruiter = domain.Principal{UserID: "recruiter-1", Role: domain.RoleRecruiter}
	stranger  = domain.Principal{UserID: "recruiter-2", Role: domain.RoleRecruiter}
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func pdfUpload() *domain.FileUpload {
	return &domain.FileUpload{Filename: "resume.pdf", Data: []byte(samplePDF)}
}

// newUploader returns an uploader backed by a temp directory served under /uploads.
func newUploader(t *testing.T) (*usecase.Uploader, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	return usecase.NewUploader(store, 10, 5), dir
}

// storedFile maps a public /uploads path back to the temp directory.
func storedFile(dir, url string) string {
	return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func strPtr(s string) *string { return &s }
