package v1

import (
	"net/http"

	"internview-backend/internal/delivery/http/middleware"
	"internview-backend/internal/delivery/http/response"
	"internview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CVHandler struct {
	cvUC       domain.CVUsecase
	maxCVBytes int64
}

func NewCVHandler(public, protected *gin.RouterGroup, cvUC domain.CVUsecase, maxCVBytes int64, uploadLimit gin.HandlerFunc) {
	handler := &CVHandler{cvUC: cvUC, maxCVBytes: maxCVBytes}

	publicCVs := public.Group("/cvs")
	{
		publicCVs.GET("", handler.List)
		publicCVs.GET("/:id", handler.Get)
		publicCVs.GET("/user/:userId", handler.ListByUser)
	}

	protectedCVs := protected.Group("/cvs")
	{
		protectedCVs.POST("", uploadLimit, handler.Create)
		protectedCVs.PUT("/:id", uploadLimit, handler.Update)
		protectedCVs.DELETE("/:id", handler.Delete)
	}
}

type CreateCVRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=200,not_blank"`
	Description string `json:"description" form:"description" binding:"max=5000"`
}

type UpdateCVRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,max=200,not_blank"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=5000"`
}

// Create godoc
// @Summary      Create a CV
// @Description  Interns only. Send multipart/form-data with a "pdf" part to attach the document.
// @Tags         cvs
// @Accept       json,mpfd
// @Produce      json
// @Param        cv   body      CreateCVRequest  true   "CV"
// @Param        pdf  formData  file             false  "PDF document"
// @Success      201  {object}  response.Response{data=domain.CV}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /cvs [post]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *CVHandler) Create(c *gin.Context) {
	var req CreateCVRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	file, err := formFile(c, "pdf", h.maxCVBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	cv, err := h.cvUC.CreateCV(c.Request.Context(), middleware.PrincipalFrom(c), domain.CreateCVInput{
		Title:       req.Title,
		Description: req.Description,
		File:        file,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "CV created", cv)
}

// List godoc
// @Summary      List CVs
// @Tags         cvs
// @Produce      json
// @Param        with_user  query     bool  false  "Embed the owner's profile"
// @Success      200  {object}  response.Response{data=[]domain.CVView}
// @Router       /cvs [get]
func (h *CVHandler) List(c *gin.Context) {
	withUser := c.Query("with_user") == "true"
	cvs, err := h.cvUC.ListCVs(c.Request.Context(), withUser)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CVs retrieved", cvs)
}

// Get godoc
// @Summary      Get a CV
// @Tags         cvs
// @Produce      json
// @Param        id   path      string  true  "CV ID"
// @Success      200  {object}  response.Response{data=domain.CV}
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id} [get]
func (h *CVHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	cv, err := h.cvUC.GetCV(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV retrieved", cv)
}

// ListByUser godoc
// @Summary      List a user's CVs
// @Tags         cvs
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.CV}
// @Router       /cvs/user/{userId} [get]
func (h *CVHandler) ListByUser(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	cvs, err := h.cvUC.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CVs retrieved", cvs)
}

// Update godoc
// @Summary      Update a CV
// @Description  Owner only. A new "pdf" part replaces the stored document.
// @Tags         cvs
// @Accept       json,mpfd
// @Produce      json
// @Param        id   path      string           true   "CV ID"
// @Param        cv   body      UpdateCVRequest  true   "Fields to change"
// @Param        pdf  formData  file             false  "Replacement PDF"
// @Success      200  {object}  response.Response{data=domain.CV}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id} [put]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *CVHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCVRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	file, err := formFile(c, "pdf", h.maxCVBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	cv, err := h.cvUC.UpdateCV(c.Request.Context(), middleware.PrincipalFrom(c), id, domain.UpdateCVInput{
		Title:       req.Title,
		Description: req.Description,
		File:        file,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV updated", cv)
}

// Delete godoc
// @Summary      Delete a CV
// @Tags         cvs
// @Param        id   path  string  true  "CV ID"
// @Success      204
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id} [delete]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *CVHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.cvUC.DeleteCV(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.NoContent(c)
}
