package v1

import (
	"net/http"

	"internview-backend/internal/delivery/http/middleware"
	"internview-backend/internal/delivery/http/response"
	"internview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC        domain.UserUsecase
	maxImageBytes int64
}

func NewUserHandler(public, protected *gin.RouterGroup, userUC domain.UserUsecase, maxImageBytes int64, loginLimit, uploadLimit gin.HandlerFunc) {
	handler := &UserHandler{userUC: userUC, maxImageBytes: maxImageBytes}

	publicUsers := public.Group("/users")
	{
		publicUsers.POST("", uploadLimit, handler.Register)
		publicUsers.POST("/login", loginLimit, handler.Login)
		publicUsers.GET("", handler.List)
		publicUsers.GET("/:id", handler.Get)
	}

	protectedUsers := protected.Group("/users")
	{
		protectedUsers.PUT("/:id", uploadLimit, handler.Update)
		protectedUsers.DELETE("/:id", handler.Delete)
	}
}

type RegisterRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,max=100,valid_name,no_emoji"`
	Login       string  `json:"login" form:"login" binding:"required,min=3,max=50,valid_login"`
	Password    string  `json:"password" form:"password" binding:"required,min=6,max=72"`
	Role        string  `json:"role" form:"role" binding:"required,user_role"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=2000"`
}

type LoginRequest struct {
	Login    string `json:"login" form:"login" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name" form:"name" binding:"omitempty,max=100,valid_name,no_emoji"`
	Login       *string `json:"login" form:"login" binding:"omitempty,min=3,max=50,valid_login"`
	Password    *string `json:"password" form:"password" binding:"omitempty,min=6,max=72"`
	Role        *string `json:"role" form:"role" binding:"omitempty,user_role"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=2000"`
}

// Register godoc
// @Summary      Register a user
// @Description  Create an intern or recruiter account. Send multipart/form-data to attach a profile picture (jpg, jpeg, png, gif, heic, webp).
// @Tags         users
// @Accept       json,mpfd
// @Produce      json
// @Param        user         body      RegisterRequest  true   "User"
// @Param        profile_pic  formData  file             false  "Profile picture"
// @Success      201  {object}  response.Response{data=domain.UserProfile}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	pic, err := formFile(c, "profile_pic", h.maxImageBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	profile, err := h.userUC.Register(c.Request.Context(), domain.RegisterInput{
		Name:        req.Name,
		Login:       req.Login,
		Password:    req.Password,
		Role:        req.Role,
		Description: req.Description,
		ProfilePic:  pic,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered", profile)
}

// Login godoc
// @Summary      Log in
// @Description  Verify credentials. Returns the profile and, when tokens are enabled, a bearer token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        credentials  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Response{data=domain.LoginResult}
// @Failure      401  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	result, err := h.userUC.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.UserProfile}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUC.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", users)
}

// Get godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.UserProfile}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userUC.GetUser(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", user)
}

// Update godoc
// @Summary      Update your account
// @Description  Partial update. A role change is refused while you still own CVs, vacancies or applications.
// @Tags         users
// @Accept       json,mpfd
// @Produce      json
// @Param        id           path      string             true   "User ID"
// @Param        user         body      UpdateUserRequest  true   "Fields to change"
// @Param        profile_pic  formData  file               false  "New profile picture"
// @Success      200  {object}  response.Response{data=domain.UserProfile}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /users/{id} [put]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	pic, err := formFile(c, "profile_pic", h.maxImageBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	profile, err := h.userUC.UpdateUser(c.Request.Context(), middleware.PrincipalFrom(c), id, domain.UpdateUserInput{
		Name:        req.Name,
		Login:       req.Login,
		Password:    req.Password,
		Role:        req.Role,
		Description: req.Description,
		ProfilePic:  pic,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User updated", profile)
}

// Delete godoc
// @Summary      Delete your account
// @Description  Removes the account together with its CVs, vacancies and applications.
// @Tags         users
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /users/{id} [delete]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.userUC.DeleteUser(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.NoContent(c)
}
