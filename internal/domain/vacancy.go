package domain

import (
	"context"
	"time"
)

type Vacancy struct {
	ID              string     `json:"id"`
	RecruiterID     string     `json:"recruiter_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Requirements    []string   `json:"requirements"`
	SalaryRange     *string    `json:"salary_range,omitempty"`
	Location        string     `json:"location"`
	WorkMode        string     `json:"work_mode"`
	ExperienceLevel string     `json:"experience_level"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the vacancy has an expiry in the past.
func (v *Vacancy) Expired(now time.Time) bool {
	return v.ExpiresAt != nil && !v.ExpiresAt.After(now)
}

type VacancySummary struct {
	Vacancy
	ApplicationCount int64 `json:"application_count"`
}

// VacancyDetail can only be built with its recruiter loaded.
type VacancyDetail struct {
	VacancySummary
	Recruiter UserProfile `json:"recruiter"`
}

func NewVacancyDetail(v Vacancy, recruiter UserProfile, applicationCount int64) VacancyDetail {
	return VacancyDetail{
		VacancySummary: VacancySummary{Vacancy: v, ApplicationCount: applicationCount},
		Recruiter:      recruiter,
	}
}

type VacancyInput struct {
	Title           string
	Description     string
	Requirements    []string
	SalaryRange     *string
	Location        string
	WorkMode        string
	ExperienceLevel string
	ExpiresAt       *time.Time
}

type VacancyFilter struct {
	ActiveOnly      bool
	Location        string
	WorkMode        string
	ExperienceLevel string
	Query           string
}

type VacancyList struct {
	Vacancies []VacancySummary `json:"vacancies"`
	// Fallback is set when no active vacancy matched and all vacancies were returned instead.
	Fallback bool `json:"fallback"`
}

type VacancyRepository interface {
	Create(ctx context.Context, v *Vacancy) error
	GetByID(ctx context.Context, id string) (*Vacancy, error)
	GetDetail(ctx context.Context, id string) (*VacancyDetail, error)
	List(ctx context.Context, filter VacancyFilter) ([]VacancySummary, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]VacancySummary, error)
	Update(ctx context.Context, v *Vacancy) error
	ToggleActive(ctx context.Context, id string) (*VacancySummary, error)
	Delete(ctx context.Context, id string) error
}

type VacancyUsecase interface {
	CreateVacancy(ctx context.Context, p Principal, in VacancyInput) (*VacancyDetail, error)
	ListVacancies(ctx context.Context, filter VacancyFilter) (*VacancyList, error)
	GetVacancy(ctx context.Context, id string) (*VacancyDetail, error)
	UpdateVacancy(ctx context.Context, p Principal, id string, in VacancyInput) (*VacancyDetail, error)
	DeleteVacancy(ctx context.Context, p Principal, id string) error
	ToggleActive(ctx context.Context, p Principal, id string) (*VacancySummary, error)
	ListMine(ctx context.Context, p Principal) ([]VacancySummary, error)
}
