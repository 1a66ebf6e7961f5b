package usecase

import (
	"context"
	"strings"
	"time"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"

	"github.com/google/uuid"
)

type vacancyUsecase struct {
	vacancyRepo  domain.VacancyRepository
	listFallback bool
	now          func() time.Time
}

// NewVacancyUsecase creates the vacancy usecase. With listFallback set, a list
// request matching no active vacancy returns all vacancies instead.
func NewVacancyUsecase(vacancyRepo domain.VacancyRepository, listFallback bool) domain.VacancyUsecase {
	return &vacancyUsecase{
		vacancyRepo:  vacancyRepo,
		listFallback: listFallback,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// normalizeVacancyInput trims fields and rejects incomplete input.
func (uc *vacancyUsecase) normalizeVacancyInput(in domain.VacancyInput) (domain.VacancyInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.WorkMode = strings.TrimSpace(in.WorkMode)
	in.ExperienceLevel = strings.TrimSpace(in.ExperienceLevel)
	in.SalaryRange = trimmedPtr(in.SalaryRange)

	if in.Title == "" || in.Description == "" || in.Location == "" || in.WorkMode == "" || in.ExperienceLevel == "" {
		return in, apperror.BadRequest("Title, description, location, work mode and experience level are required")
	}

	requirements := make([]string, 0, len(in.Requirements))
	for _, r := range in.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			requirements = append(requirements, r)
		}
	}
	in.Requirements = requirements

	if in.ExpiresAt != nil {
		if !in.ExpiresAt.After(uc.now()) {
			return in, apperror.BadRequest("Expiry date must be in the future")
		}
		utc := in.ExpiresAt.UTC()
		in.ExpiresAt = &utc
	}
	return in, nil
}

func (uc *vacancyUsecase) CreateVacancy(ctx context.Context, p domain.Principal, in domain.VacancyInput) (*domain.VacancyDetail, error) {
	if err := domain.Authorize(p, domain.Rule{Role: domain.RoleRecruiter, Reason: "Only recruiters can create vacancies"}); err != nil {
		return nil, err
	}
	in, err := uc.normalizeVacancyInput(in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	v := &domain.Vacancy{
		ID:              uuid.NewString(),
		RecruiterID:     p.UserID,
		Title:           in.Title,
		Description:     in.Description,
		Requirements:    in.Requirements,
		SalaryRange:     in.SalaryRange,
		Location:        in.Location,
		WorkMode:        in.WorkMode,
		ExperienceLevel: in.ExperienceLevel,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
		ExpiresAt:       in.ExpiresAt,
	}
	if err := uc.vacancyRepo.Create(ctx, v); err != nil {
		return nil, apperror.Internal(err)
	}
	return uc.GetVacancy(ctx, v.ID)
}

// ListVacancies returns active vacancies. See NewVacancyUsecase for the fallback.
func (uc *vacancyUsecase) ListVacancies(ctx context.Context, filter domain.VacancyFilter) (*domain.VacancyList, error) {
	filter.ActiveOnly = true
	vacancies, err := uc.vacancyRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(vacancies) > 0 || !uc.listFallback {
		return &domain.VacancyList{Vacancies: vacancies}, nil
	}

	filter.ActiveOnly = false
	vacancies, err = uc.vacancyRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.VacancyList{Vacancies: vacancies, Fallback: true}, nil
}

func (uc *vacancyUsecase) GetVacancy(ctx context.Context, id string) (*domain.VacancyDetail, error) {
	detail, err := uc.vacancyRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Vacancy not found")
	}
	return detail, nil
}

func (uc *vacancyUsecase) UpdateVacancy(ctx context.Context, p domain.Principal, id string, in domain.VacancyInput) (*domain.VacancyDetail, error) {
	v, err := uc.ownedVacancy(ctx, p, id, "You can only update your own vacancies")
	if err != nil {
		return nil, err
	}
	in, err = uc.normalizeVacancyInput(in)
	if err != nil {
		return nil, err
	}

	v.Title = in.Title
	v.Description = in.Description
	v.Requirements = in.Requirements
	v.SalaryRange = in.SalaryRange
	v.Location = in.Location
	v.WorkMode = in.WorkMode
	v.ExperienceLevel = in.ExperienceLevel
	v.ExpiresAt = in.ExpiresAt
	v.UpdatedAt = uc.now()

	if err := uc.vacancyRepo.Update(ctx, v); err != nil {
		return nil, storeErr(err, "Vacancy not found")
	}
	return uc.GetVacancy(ctx, v.ID)
}

func (uc *vacancyUsecase) DeleteVacancy(ctx context.Context, p domain.Principal, id string) error {
	if _, err := uc.ownedVacancy(ctx, p, id, "You can only delete your own vacancies"); err != nil {
		return err
	}
	if err := uc.vacancyRepo.Delete(ctx, id); err != nil {
		return storeErr(err, "Vacancy not found")
	}
	return nil
}

func (uc *vacancyUsecase) ToggleActive(ctx context.Context, p domain.Principal, id string) (*domain.VacancySummary, error) {
	if _, err := uc.ownedVacancy(ctx, p, id, "You can only change your own vacancies"); err != nil {
		return nil, err
	}
	summary, err := uc.vacancyRepo.ToggleActive(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Vacancy not found")
	}
	return summary, nil
}

func (uc *vacancyUsecase) ListMine(ctx context.Context, p domain.Principal) ([]domain.VacancySummary, error) {
	if err := domain.Authorize(p, domain.Rule{Role: domain.RoleRecruiter, Reason: "Only recruiters have vacancies"}); err != nil {
		return nil, err
	}
	vacancies, err := uc.vacancyRepo.ListByRecruiter(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return vacancies, nil
}

// ownedVacancy loads the vacancy and checks the caller is the recruiter who posted it.
func (uc *vacancyUsecase) ownedVacancy(ctx context.Context, p domain.Principal, id, reason string) (*domain.Vacancy, error) {
	if !p.Authenticated() {
		return nil, apperror.Unauthorized("Authentication required")
	}
	v, err := uc.vacancyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Vacancy not found")
	}
	rule := domain.Rule{Role: domain.RoleRecruiter, OwnerID: v.RecruiterID, Reason: reason}
	if err := domain.Authorize(p, rule); err != nil {
		return nil, err
	}
	return v, nil
}
