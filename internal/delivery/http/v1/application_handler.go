package v1

import (
	"net/http"

	"internview-backend/internal/delivery/http/middleware"
	"internview-backend/internal/delivery/http/response"
	"internview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles application-related HTTP requests
type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes. All of them require authentication.
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/applications")
	{
		applications.POST("", handler.Apply)
		applications.GET("/my", handler.ListMine)
		applications.GET("/vacancy/:vacancyId", handler.ListForVacancy)
		applications.PUT("/:id", handler.Update)
		applications.DELETE("/:id", handler.Delete)
	}
}

// ApplyRequest represents the request body for applying to a vacancy
type ApplyRequest struct {
	VacancyID   string  `json:"vacancy_id" binding:"required,uuid"`
	CVID        *string `json:"cv_id" binding:"omitempty,uuid"`
	CoverLetter *string `json:"cover_letter" binding:"omitempty,max=10000"`
	ResumeURL   *string `json:"resume_url" binding:"omitempty,url,max=2000"`
}

// UpdateApplicationRequest is a partial update; omitted fields are unchanged
type UpdateApplicationRequest struct {
	Status      *string `json:"status" binding:"omitempty,app_status"`
	CoverLetter *string `json:"cover_letter" binding:"omitempty,max=10000"`
	ResumeURL   *string `json:"resume_url" binding:"omitempty,url,max=2000"`
}

// Apply godoc
// @Summary      Apply to a vacancy
// @Description  Interns only. The vacancy must be active and not expired; an attached CV must be your own.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      ApplyRequest  true  "Application"
// @Success      201  {object}  response.Response{data=domain.ApplicationDetail}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications [post]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), middleware.PrincipalFrom(c), domain.ApplyInput{
		VacancyID:   req.VacancyID,
		CVID:        req.CVID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMine godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ApplicationDetail}
// @Failure      403  {object}  response.Response
// @Router       /applications/my [get]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUC.ListMine(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ListForVacancy godoc
// @Summary      List applications for a vacancy
// @Tags         applications
// @Produce      json
// @Param        vacancyId  path      string  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=[]domain.ApplicationDetail}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/vacancy/{vacancyId} [get]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *ApplicationHandler) ListForVacancy(c *gin.Context) {
	vacancyID, ok := idParam(c, "vacancyId")
	if !ok {
		return
	}
	apps, err := h.applicationUC.ListForVacancy(c.Request.Context(), middleware.PrincipalFrom(c), vacancyID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// Update godoc
// @Summary      Update an application
// @Description  The vacancy owner may set pending, reviewed, accepted or rejected. The applicant may cancel and edit the cover letter and resume URL.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      string                    true  "Application ID"
// @Param        application  body      UpdateApplicationRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.ApplicationDetail}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [put]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	patch := domain.ApplicationPatch{CoverLetter: req.CoverLetter, ResumeURL: req.ResumeURL}
	if req.Status != nil {
		status := domain.ApplicationStatus(*req.Status)
		patch.Status = &status
	}

	app, err := h.applicationUC.UpdateApplication(c.Request.Context(), middleware.PrincipalFrom(c), id, patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}

// Delete godoc
// @Summary      Delete an application
// @Description  Allowed for the applicant and the vacancy owner.
// @Tags         applications
// @Param        id   path  string  true  "Application ID"
// @Success      204
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.applicationUC.DeleteApplication(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.NoContent(c)
}
