package v1

import (
	"net/http"

	"internview-backend/internal/delivery/http/middleware"
	"internview-backend/internal/delivery/http/response"
	"internview-backend/internal/domain"
	"internview-backend/internal/usecase"
	"internview-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	UserUC        domain.UserUsecase
	CVUC          domain.CVUsecase
	VacancyUC     domain.VacancyUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      usecase.HealthUsecase
	Tokens        *security.TokenIssuer
	Redis         *goredis.Client          // optional; rate limits fall back to memory
	Audit         *security.SecurityLogger // optional

	AllowedOrigins           []string
	UploadDir                string // served at /uploads when files are stored locally
	MaxCVBytes               int64
	MaxImageBytes            int64
	RateLimitLoginPerMinute  int
	RateLimitUploadPerMinute int
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.MaxMultipartMemory = max(deps.MaxCVBytes, deps.MaxImageBytes)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	if deps.UploadDir != "" {
		r.Static("/uploads", deps.UploadDir)
	}

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status.Status != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	loginCfg := middleware.LoginRateLimitConfig(deps.RateLimitLoginPerMinute)
	loginCfg.Audit = deps.Audit
	uploadCfg := middleware.UploadRateLimitConfig(deps.RateLimitUploadPerMinute)
	uploadCfg.Audit = deps.Audit
	loginLimit := middleware.RateLimitMiddleware(deps.Redis, loginCfg)
	uploadLimit := middleware.RateLimitMiddleware(deps.Redis, uploadCfg)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.UserUC))
	{
		NewUserHandler(v1, protected, deps.UserUC, deps.MaxImageBytes, loginLimit, uploadLimit)
		NewCVHandler(v1, protected, deps.CVUC, deps.MaxCVBytes, uploadLimit)
		NewVacancyHandler(v1, protected, deps.VacancyUC, deps.ApplicationUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
	}

	return r
}
