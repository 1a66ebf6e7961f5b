package usecase

import (
	"context"
	"strings"
	"time"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"

	"github.com/google/uuid"
)

type cvUsecase struct {
	cvRepo  domain.CVRepository
	uploads *Uploader
	now     func() time.Time
}

func NewCVUsecase(cvRepo domain.CVRepository, uploads *Uploader) domain.CVUsecase {
	return &cvUsecase{
		cvRepo:  cvRepo,
		uploads: uploads,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateCV stores the optional PDF first and removes it again if the record cannot be written.
func (uc *cvUsecase) CreateCV(ctx context.Context, p domain.Principal, in domain.CreateCVInput) (*domain.CV, error) {
	if err := domain.Authorize(p, domain.Rule{Role: domain.RoleIntern, Reason: "Only interns can create CVs"}); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.BadRequest("Title is required")
	}

	now := uc.now()
	cv := &domain.CV{
		ID:          uuid.NewString(),
		UserID:      p.UserID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.File != nil {
		url, err := uc.uploads.SaveCV(ctx, in.File)
		if err != nil {
			return nil, err
		}
		cv.PDF = url
	}

	if err := uc.cvRepo.Create(ctx, cv); err != nil {
		uc.uploads.Remove(ctx, cv.PDF)
		return nil, storeErr(err, "User not found")
	}
	return cv, nil
}

func (uc *cvUsecase) ListCVs(ctx context.Context, withUser bool) ([]domain.CVView, error) {
	if withUser {
		views, err := uc.cvRepo.ListWithOwner(ctx)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return views, nil
	}

	cvs, err := uc.cvRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	views := make([]domain.CVView, 0, len(cvs))
	for _, cv := range cvs {
		views = append(views, domain.CVView{CV: cv})
	}
	return views, nil
}

func (uc *cvUsecase) GetCV(ctx context.Context, id string) (*domain.CV, error) {
	cv, err := uc.cvRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "CV not found")
	}
	return cv, nil
}

func (uc *cvUsecase) ListByUser(ctx context.Context, userID string) ([]domain.CV, error) {
	cvs, err := uc.cvRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return cvs, nil
}

func (uc *cvUsecase) UpdateCV(ctx context.Context, p domain.Principal, id string, in domain.UpdateCVInput) (*domain.CV, error) {
	cv, err := uc.GetCV(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.Rule{OwnerID: cv.UserID, Reason: "You can only update your own CVs"}); err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperror.BadRequest("Title must not be empty")
		}
		cv.Title = title
	}
	if in.Description != nil {
		cv.Description = strings.TrimSpace(*in.Description)
	}

	oldPDF := ""
	if in.File != nil {
		url, err := uc.uploads.SaveCV(ctx, in.File)
		if err != nil {
			return nil, err
		}
		oldPDF = cv.PDF
		cv.PDF = url
	}

	cv.UpdatedAt = uc.now()
	if err := uc.cvRepo.Update(ctx, cv); err != nil {
		if in.File != nil {
			uc.uploads.Remove(ctx, cv.PDF)
		}
		return nil, storeErr(err, "CV not found")
	}
	uc.uploads.Remove(ctx, oldPDF)
	return cv, nil
}

func (uc *cvUsecase) DeleteCV(ctx context.Context, p domain.Principal, id string) error {
	cv, err := uc.GetCV(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.Authorize(p, domain.Rule{OwnerID: cv.UserID, Reason: "You can only delete your own CVs"}); err != nil {
		return err
	}
	if err := uc.cvRepo.Delete(ctx, id); err != nil {
		return storeErr(err, "CV not found")
	}
	uc.uploads.Remove(ctx, cv.PDF)
	return nil
}
