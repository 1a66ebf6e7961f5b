package domain

import (
	"context"
	"time"
)

type CV struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PDF         string    `json:"pdf"` // public path, empty when no file was uploaded
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CVView is a CV optionally embedding its owner.
type CVView struct {
	CV
	User *UserProfile `json:"user,omitempty"`
}

type CreateCVInput struct {
	Title       string
	Description string
	File        *FileUpload
}

type UpdateCVInput struct {
	Title       *string
	Description *string
	File        *FileUpload
}

type CVRepository interface {
	Create(ctx context.Context, cv *CV) error
	GetByID(ctx context.Context, id string) (*CV, error)
	List(ctx context.Context) ([]CV, error)
	ListWithOwner(ctx context.Context) ([]CVView, error)
	ListByUserID(ctx context.Context, userID string) ([]CV, error)
	Update(ctx context.Context, cv *CV) error
	Delete(ctx context.Context, id string) error
}

type CVUsecase interface {
	CreateCV(ctx context.Context, p Principal, in CreateCVInput) (*CV, error)
	ListCVs(ctx context.Context, withUser bool) ([]CVView, error)
	GetCV(ctx context.Context, id string) (*CV, error)
	ListByUser(ctx context.Context, userID string) ([]CV, error)
	UpdateCV(ctx context.Context, p Principal, id string, in UpdateCVInput) (*CV, error)
	DeleteCV(ctx context.Context, p Principal, id string) error
}
