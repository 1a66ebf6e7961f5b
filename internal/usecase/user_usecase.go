package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"
	"internview-backend/pkg/logger"
	"internview-backend/pkg/security"

	"github.com/google/uuid"
)

type userUsecase struct {
	userRepo domain.UserRepository
	cvRepo   domain.CVRepository
	uploads  *Uploader
	tokens   *security.TokenIssuer
	lockout  *security.LoginTracker
	now      func() time.Time
}

// NewUserUsecase creates the account usecase. tokens may be disabled, in which
// case Login only returns the profile and clients use Basic credentials.
// lockout may be nil.
func NewUserUsecase(
	userRepo domain.UserRepository,
	cvRepo domain.CVRepository,
	uploads *Uploader,
	tokens *security.TokenIssuer,
	lockout *security.LoginTracker,
) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		cvRepo:   cvRepo,
		uploads:  uploads,
		tokens:   tokens,
		lockout:  lockout,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *userUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	login := strings.TrimSpace(in.Login)
	if name == "" || login == "" || in.Password == "" {
		return nil, apperror.BadRequest("Name, login and password are required")
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if err := security.ValidatePassword(in.Password); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if err := uc.ensureLoginFree(ctx, login, ""); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := uc.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Login:        login,
		PasswordHash: hash,
		Role:         role,
		Description:  trimmedPtr(in.Description),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.ProfilePic != nil {
		url, err := uc.uploads.SaveProfileImage(ctx, in.ProfilePic)
		if err != nil {
			return nil, err
		}
		user.ProfilePic = &url
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if user.ProfilePic != nil {
			uc.uploads.Remove(ctx, *user.ProfilePic)
		}
		if errors.Is(err, domain.ErrConflict) {
			return nil, loginTaken()
		}
		return nil, apperror.Internal(err)
	}

	profile := user.Profile()
	return &profile, nil
}

func (uc *userUsecase) Login(ctx context.Context, login, password string) (*domain.LoginResult, error) {
	user, err := uc.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}

	result := &domain.LoginResult{User: user.Profile()}
	if uc.tokens.Enabled() {
		token, expiresAt, err := uc.tokens.Issue(user.ID, string(user.Role))
		if err != nil {
			return nil, apperror.Internal(err)
		}
		result.Token = token
		result.ExpiresAt = &expiresAt
	}
	return result, nil
}

// Authenticate verifies credentials. Unknown login and wrong password produce
// the same error and take comparable time. Repeated failures block the login
// for a while; lockout backend errors never deny a valid login.
func (uc *userUsecase) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	login = strings.TrimSpace(login)

	blocked, err := uc.lockout.IsBlocked(ctx, login)
	if err != nil {
		logger.Log.Warn("login lockout check failed", "error", err)
	}
	if blocked {
		return nil, apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
	}

	user, err := uc.verifyCredentials(ctx, login, password)
	if err != nil {
		if apperror.CodeOf(err) == http.StatusUnauthorized {
			if _, trackErr := uc.lockout.RecordFailure(ctx, login); trackErr != nil {
				logger.Log.Warn("failed to record login failure", "error", trackErr)
			}
		}
		return nil, err
	}

	if err := uc.lockout.Clear(ctx, login); err != nil {
		logger.Log.Warn("failed to clear login failures", "error", err)
	}
	return user, nil
}

func (uc *userUsecase) verifyCredentials(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			security.EqualizeTiming(password)
			return nil, invalidCredentials()
		}
		return nil, apperror.Internal(err)
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, invalidCredentials()
	}
	return user, nil
}

func (uc *userUsecase) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	return user, nil
}

func (uc *userUsecase) GetUser(ctx context.Context, id string) (*domain.UserProfile, error) {
	user, err := uc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

func (uc *userUsecase) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	profiles := make([]domain.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

func (uc *userUsecase) UpdateUser(ctx context.Context, p domain.Principal, id string, in domain.UpdateUserInput) (*domain.UserProfile, error) {
	if err := domain.Authorize(p, domain.Rule{OwnerID: id, Reason: "You can only update your own account"}); err != nil {
		return nil, err
	}
	user, err := uc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.BadRequest("Name must not be empty")
		}
		user.Name = name
	}
	if in.Login != nil {
		login := strings.TrimSpace(*in.Login)
		if login == "" {
			return nil, apperror.BadRequest("Login must not be empty")
		}
		if login != user.Login {
			if err := uc.ensureLoginFree(ctx, login, user.ID); err != nil {
				return nil, err
			}
			user.Login = login
		}
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, apperror.BadRequest("Password must not be empty")
		}
		if err := security.ValidatePassword(*in.Password); err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
		hash, err := security.HashPassword(*in.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.PasswordHash = hash
	}
	if in.Role != nil {
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		if role != user.Role {
			owned, err := uc.userRepo.CountOwnedResources(ctx, user.ID)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			if owned > 0 {
				return nil, apperror.Conflict("Cannot change role while you still own CVs, vacancies or applications")
			}
			user.Role = role
		}
	}
	if in.Description != nil {
		user.Description = trimmedPtr(in.Description)
	}

	var oldPic string
	if in.ProfilePic != nil {
		url, err := uc.uploads.SaveProfileImage(ctx, in.ProfilePic)
		if err != nil {
			return nil, err
		}
		if user.ProfilePic != nil {
			oldPic = *user.ProfilePic
		}
		user.ProfilePic = &url
	}

	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		if in.ProfilePic != nil {
			uc.uploads.Remove(ctx, *user.ProfilePic)
		}
		if errors.Is(err, domain.ErrConflict) {
			return nil, loginTaken()
		}
		return nil, storeErr(err, "User not found")
	}
	uc.uploads.Remove(ctx, oldPic)

	profile := user.Profile()
	return &profile, nil
}

// DeleteUser removes the account. The database cascades to CVs, vacancies and
// applications; stored files are removed afterwards on a best-effort basis.
func (uc *userUsecase) DeleteUser(ctx context.Context, p domain.Principal, id string) error {
	if err := domain.Authorize(p, domain.Rule{OwnerID: id, Reason: "You can only delete your own account"}); err != nil {
		return err
	}
	user, err := uc.FindByID(ctx, id)
	if err != nil {
		return err
	}
	cvs, err := uc.cvRepo.ListByUserID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return storeErr(err, "User not found")
	}

	if user.ProfilePic != nil {
		uc.uploads.Remove(ctx, *user.ProfilePic)
	}
	for _, cv := range cvs {
		uc.uploads.Remove(ctx, cv.PDF)
	}
	return nil
}

// ensureLoginFree fails with 409 when login belongs to a user other than selfID.
func (uc *userUsecase) ensureLoginFree(ctx context.Context, login, selfID string) error {
	existing, err := uc.userRepo.GetByLogin(ctx, login)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return apperror.Internal(err)
	case existing.ID != selfID:
		return loginTaken()
	}
	return nil
}

func loginTaken() error {
	return apperror.Conflict("A user with this login already exists")
}

func invalidCredentials() error {
	return apperror.Unauthorized("Invalid credentials")
}
