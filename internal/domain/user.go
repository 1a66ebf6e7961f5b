package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ProfilePic   *string   `json:"profile_pic,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile is the public view of a user. It never carries the credential.
type UserProfile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Login       string    `json:"login"`
	Role        Role      `json:"role"`
	ProfilePic  *string   `json:"profile_pic,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		Name:        u.Name,
		Login:       u.Login,
		Role:        u.Role,
		ProfilePic:  u.ProfilePic,
		Description: u.Description,
		CreatedAt:   u.CreatedAt,
	}
}

func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

type RegisterInput struct {
	Name        string
	Login       string
	Password    string
	Role        string
	Description *string
	ProfilePic  *FileUpload
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name        *string
	Login       *string
	Password    *string
	Role        *string
	Description *string
	ProfilePic  *FileUpload
}

type LoginResult struct {
	User      UserProfile `json:"user"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByLogin(ctx context.Context, login string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	// CountOwnedResources counts CVs, vacancies and applications bound to the user's role.
	CountOwnedResources(ctx context.Context, id string) (int64, error)
}

type UserUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*UserProfile, error)
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	Authenticate(ctx context.Context, login, password string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	GetUser(ctx context.Context, id string) (*UserProfile, error)
	ListUsers(ctx context.Context) ([]UserProfile, error)
	UpdateUser(ctx context.Context, p Principal, id string, in UpdateUserInput) (*UserProfile, error)
	DeleteUser(ctx context.Context, p Principal, id string) error
}
