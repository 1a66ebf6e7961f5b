package middleware

import (
	"context"
	"net/http"
	"strings"

	"internview-backend/internal/delivery/http/response"
	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"
	"internview-backend/pkg/logger"
	"internview-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// UserLookup is the part of the user usecase the auth middleware needs.
type UserLookup interface {
	Authenticate(ctx context.Context, login, password string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthMiddleware accepts "Bearer <jwt>" (when a signing secret is configured) or
// "Basic base64(login:password)". The user is reloaded from the store on every
// request; the role claim inside a token is never trusted.
func AuthMiddleware(tokens *security.TokenIssuer, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, credentials, _ := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
		if scheme == "" {
			unauthorized(c, "Authorization header required")
			return
		}

		ctx := c.Request.Context()
		var (
			user *domain.User
			err  error
		)
		switch strings.ToLower(scheme) {
		case "bearer":
			if !tokens.Enabled() {
				unauthorized(c, "Bearer tokens are not enabled; use Basic credentials")
				return
			}
			claims, parseErr := tokens.Parse(strings.TrimSpace(credentials))
			if parseErr != nil {
				logger.Log.Debug("token validation failed", "error", parseErr)
				unauthorized(c, "Invalid token")
				return
			}
			user, err = users.FindByID(ctx, claims.Subject)
		case "basic":
			login, password, ok := c.Request.BasicAuth()
			if !ok {
				unauthorized(c, "Malformed Basic credentials")
				return
			}
			user, err = users.Authenticate(ctx, login, password)
		default:
			unauthorized(c, "Unsupported authorization scheme")
			return
		}

		if err != nil {
			switch apperror.CodeOf(err) {
			case http.StatusUnauthorized:
				unauthorized(c, "Invalid credentials")
			case http.StatusNotFound:
				// Token for a deleted account
				unauthorized(c, "User not found")
			default:
				_ = c.Error(err)
				c.Abort()
			}
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserRole), string(user.Role))
		c.Set(string(domain.KeyUserLogin), user.Login)

		c.Next()
	}
}

// PrincipalFrom returns the caller set by AuthMiddleware. Unauthenticated
// requests yield the zero Principal, which every policy check rejects.
func PrincipalFrom(c *gin.Context) domain.Principal {
	return domain.Principal{
		UserID: c.GetString(string(domain.KeyUserID)),
		Role:   domain.Role(c.GetString(string(domain.KeyUserRole))),
	}
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Basic realm="internview"`)
	response.Error(c, http.StatusUnauthorized, message, nil)
	c.Abort()
}
