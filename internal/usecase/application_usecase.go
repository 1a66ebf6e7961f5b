package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	vacancyRepo     domain.VacancyRepository
	cvRepo          domain.CVRepository
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	vacancyRepo domain.VacancyRepository,
	cvRepo domain.CVRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		vacancyRepo:     vacancyRepo,
		cvRepo:          cvRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Apply lets an intern apply to an active, unexpired vacancy once
func (uc *applicationUsecase) Apply(ctx context.Context, p domain.Principal, in domain.ApplyInput) (*domain.ApplicationDetail, error) {
	// 1. Only interns apply
	if err := domain.Authorize(p, domain.Rule{Role: domain.RoleIntern, Reason: "Only interns can apply to vacancies"}); err != nil {
		return nil, err
	}

	// 2. Vacancy must exist and accept applications
	vacancy, err := uc.vacancyRepo.GetByID(ctx, in.VacancyID)
	if err != nil {
		return nil, storeErr(err, "Vacancy not found")
	}
	if !vacancy.IsActive {
		return nil, apperror.BadRequest("This vacancy is not accepting applications")
	}
	now := uc.now()
	if vacancy.Expired(now) {
		return nil, apperror.BadRequest("This vacancy has expired")
	}

	// 3. One application per intern and vacancy
	exists, err := uc.applicationRepo.Exists(ctx, in.VacancyID, p.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, alreadyApplied()
	}

	// 4. Attached CV must belong to the applicant
	if in.CVID != nil {
		cv, err := uc.cvRepo.GetByID(ctx, *in.CVID)
		if err != nil {
			return nil, storeErr(err, "CV not found")
		}
		if err := domain.Authorize(p, domain.Rule{OwnerID: cv.UserID, Reason: "You can only apply with your own CV"}); err != nil {
			return nil, err
		}
	}

	// 5. Create application
	app := &domain.Application{
		ID:          uuid.NewString(),
		VacancyID:   in.VacancyID,
		InternID:    p.UserID,
		CVID:        in.CVID,
		Status:      domain.StatusPending,
		CoverLetter: trimmedPtr(in.CoverLetter),
		ResumeURL:   trimmedPtr(in.ResumeURL),
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		// A concurrent duplicate passes the pre-check and trips the unique constraint.
		if errors.Is(err, domain.ErrConflict) {
			return nil, alreadyApplied()
		}
		// The vacancy or the CV was deleted after the checks above.
		return nil, storeErr(err, "Vacancy or CV not found")
	}

	return uc.detail(ctx, app.ID)
}

// ListMine returns the caller's applications, newest first
func (uc *applicationUsecase) ListMine(ctx context.Context, p domain.Principal) ([]domain.ApplicationDetail, error) {
	if err := domain.Authorize(p, domain.Rule{Role: domain.RoleIntern, Reason: "Only interns have applications"}); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.ListByIntern(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListForVacancy returns all applications for a vacancy (owning recruiter only)
func (uc *applicationUsecase) ListForVacancy(ctx context.Context, p domain.Principal, vacancyID string) ([]domain.ApplicationDetail, error) {
	if !p.Authenticated() {
		return nil, apperror.Unauthorized("Authentication required")
	}
	vacancy, err := uc.vacancyRepo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, storeErr(err, "Vacancy not found")
	}
	rule := domain.Rule{
		Role:    domain.RoleRecruiter,
		OwnerID: vacancy.RecruiterID,
		Reason:  "You can only view applications for your own vacancies",
	}
	if err := domain.Authorize(p, rule); err != nil {
		return nil, err
	}

	apps, err := uc.applicationRepo.ListByVacancy(ctx, vacancyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// UpdateApplication applies a patch after checking who may change what
func (uc *applicationUsecase) UpdateApplication(ctx context.Context, p domain.Principal, id string, patch domain.ApplicationPatch) (*domain.ApplicationDetail, error) {
	if patch.Empty() {
		return nil, apperror.BadRequest("Nothing to update")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperror.BadRequest(fmt.Sprintf("Invalid application status %q", *patch.Status))
	}

	app, err := uc.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeApplicationPatch(p, app, patch); err != nil {
		return nil, err
	}

	if patch.Status != nil {
		app.Status = *patch.Status
	}
	if patch.CoverLetter != nil {
		app.CoverLetter = trimmedPtr(patch.CoverLetter)
	}
	if patch.ResumeURL != nil {
		app.ResumeURL = trimmedPtr(patch.ResumeURL)
	}
	app.UpdatedAt = uc.now()

	if err := uc.applicationRepo.Update(ctx, &app.Application); err != nil {
		return nil, storeErr(err, "Application not found")
	}
	return app, nil
}

// DeleteApplication withdraws (intern) or discards (owning recruiter) an application
func (uc *applicationUsecase) DeleteApplication(ctx context.Context, p domain.Principal, id string) error {
	app, err := uc.detail(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.AuthorizeApplicationDelete(p, app); err != nil {
		return err
	}
	if err := uc.applicationRepo.Delete(ctx, id); err != nil {
		return storeErr(err, "Application not found")
	}
	return nil
}

func (uc *applicationUsecase) detail(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	app, err := uc.applicationRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Application not found")
	}
	return app, nil
}

func alreadyApplied() error {
	return apperror.Conflict("You have already applied to this vacancy")
}
