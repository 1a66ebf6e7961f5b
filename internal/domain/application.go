package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

// Application status lifecycle: pending → reviewed / accepted / rejected (recruiter), any → cancelled (intern).
const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewed  ApplicationStatus = "reviewed"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCancelled ApplicationStatus = "cancelled"
)

// RecruiterStatuses are the values a vacancy owner may set.
var RecruiterStatuses = []ApplicationStatus{StatusPending, StatusReviewed, StatusAccepted, StatusRejected}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s ApplicationStatus) SettableByRecruiter() bool {
	for _, allowed := range RecruiterStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

type Application struct {
	ID          string            `json:"id"`
	VacancyID   string            `json:"vacancy_id"`
	InternID    string            `json:"intern_id"`
	CVID        *string           `json:"cv_id,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CoverLetter *string           `json:"cover_letter,omitempty"`
	ResumeURL   *string           `json:"resume_url,omitempty"`
	AppliedAt   time.Time         `json:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// VacancyRef is the slice of a vacancy embedded in application responses.
type VacancyRef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	RecruiterID string `json:"recruiter_id"`
	IsActive    bool   `json:"is_active"`
}

// ApplicationDetail carries the relations every application response needs.
// Vacancy and Intern are values, so a detail without them cannot be constructed.
type ApplicationDetail struct {
	Application
	Vacancy VacancyRef  `json:"vacancy"`
	Intern  UserProfile `json:"intern"`
	CV      *CV         `json:"cv,omitempty"`
}

type ApplyInput struct {
	VacancyID   string
	CVID        *string
	CoverLetter *string
	ResumeURL   *string
}

type ApplicationPatch struct {
	Status      *ApplicationStatus
	CoverLetter *string
	ResumeURL   *string
}

func (p ApplicationPatch) Empty() bool {
	return p.Status == nil && p.CoverLetter == nil && p.ResumeURL == nil
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetDetail(ctx context.Context, id string) (*ApplicationDetail, error)
	ListByIntern(ctx context.Context, internID string) ([]ApplicationDetail, error)
	ListByVacancy(ctx context.Context, vacancyID string) ([]ApplicationDetail, error)
	Exists(ctx context.Context, vacancyID, internID string) (bool, error)
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id string) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, p Principal, in ApplyInput) (*ApplicationDetail, error)
	ListMine(ctx context.Context, p Principal) ([]ApplicationDetail, error)
	ListForVacancy(ctx context.Context, p Principal, vacancyID string) ([]ApplicationDetail, error)
	UpdateApplication(ctx context.Context, p Principal, id string, patch ApplicationPatch) (*ApplicationDetail, error)
	DeleteApplication(ctx context.Context, p Principal, id string) error
	ExportForVacancy(ctx context.Context, p Principal, vacancyID string, format ExportFormat) (*ExportFile, error)
}

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// ExportFile is a rendered applicant list ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
