package v1

import (
	"fmt"
	"net/http"
	"time"

	"internview-backend/internal/delivery/http/middleware"
	"internview-backend/internal/delivery/http/response"
	"internview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type VacancyHandler struct {
	vacancyUC     domain.VacancyUsecase
	applicationUC domain.ApplicationUsecase
}

func NewVacancyHandler(public, protected *gin.RouterGroup, vacancyUC domain.VacancyUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &VacancyHandler{vacancyUC: vacancyUC, applicationUC: applicationUC}

	// PUBLIC routes - active vacancies and details
	publicVacancies := public.Group("/vacancies")
	{
		publicVacancies.GET("", handler.List)
		publicVacancies.GET("/:id", handler.Get)
	}

	protectedVacancies := protected.Group("/vacancies")
	{
		protectedVacancies.GET("/my", handler.ListMine)
		protectedVacancies.GET("/:id/applications", handler.ListApplications)
		protectedVacancies.GET("/:id/applications/export", handler.ExportApplications)
		protectedVacancies.POST("", handler.Create)
		protectedVacancies.PUT("/:id", handler.Update)
		protectedVacancies.DELETE("/:id", handler.Delete)
		protectedVacancies.PATCH("/:id/toggle", handler.Toggle)
	}
}

type VacancyRequest struct {
	Title           string     `json:"title" binding:"required,max=200,not_blank"`
	Description     string     `json:"description" binding:"required,max=10000,not_blank"`
	Requirements    []string   `json:"requirements" binding:"max=50,dive,max=500"`
	SalaryRange     *string    `json:"salary_range" binding:"omitempty,max=100"`
	Location        string     `json:"location" binding:"required,max=200,not_blank"`
	WorkMode        string     `json:"work_mode" binding:"required,max=50,not_blank"`
	ExperienceLevel string     `json:"experience_level" binding:"required,max=50,not_blank"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

func (r VacancyRequest) input() domain.VacancyInput {
	return domain.VacancyInput{
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		SalaryRange:     r.SalaryRange,
		Location:        r.Location,
		WorkMode:        r.WorkMode,
		ExperienceLevel: r.ExperienceLevel,
		ExpiresAt:       r.ExpiresAt,
	}
}

// Create godoc
// @Summary      Create a vacancy
// @Description  Recruiters only. The caller becomes the owner.
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        vacancy  body      VacancyRequest  true  "Vacancy"
// @Success      201  {object}  response.Response{data=domain.VacancyDetail}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /vacancies [post]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *VacancyHandler) Create(c *gin.Context) {
	var req VacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	vacancy, err := h.vacancyUC.CreateVacancy(c.Request.Context(), middleware.PrincipalFrom(c), req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Vacancy created", vacancy)
}

// List godoc
// @Summary      List active vacancies
// @Description  Newest first. "fallback" is true when no active vacancy matched and all vacancies are returned instead.
// @Tags         vacancies
// @Produce      json
// @Param        location          query     string  false  "Location contains"
// @Param        work_mode         query     string  false  "Work mode"
// @Param        experience_level  query     string  false  "Experience level"
// @Param        q                 query     string  false  "Title contains"
// @Success      200  {object}  response.Response{data=domain.VacancyList}
// @Router       /vacancies [get]
func (h *VacancyHandler) List(c *gin.Context) {
	filter := domain.VacancyFilter{
		Location:        c.Query("location"),
		WorkMode:        c.Query("work_mode"),
		ExperienceLevel: c.Query("experience_level"),
		Query:           c.Query("q"),
	}

	list, err := h.vacancyUC.ListVacancies(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancies retrieved", list)
}

// Get godoc
// @Summary      Get a vacancy
// @Description  Includes the recruiter's profile and the number of applications.
// @Tags         vacancies
// @Produce      json
// @Param        id   path      string  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=domain.VacancyDetail}
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id} [get]
func (h *VacancyHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	vacancy, err := h.vacancyUC.GetVacancy(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy retrieved", vacancy)
}

// ListMine godoc
// @Summary      List my vacancies
// @Tags         vacancies
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.VacancySummary}
// @Failure      403  {object}  response.Response
// @Router       /vacancies/my [get]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *VacancyHandler) ListMine(c *gin.Context) {
	vacancies, err := h.vacancyUC.ListMine(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancies retrieved", vacancies)
}

// ListApplications godoc
// @Summary      List applications for a vacancy
// @Description  Owning recruiter only. Newest first.
// @Tags         vacancies
// @Produce      json
// @Param        id   path      string  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=[]domain.ApplicationDetail}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id}/applications [get]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *VacancyHandler) ListApplications(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	apps, err := h.applicationUC.ListForVacancy(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ExportApplications godoc
// @Summary      Export applicants of a vacancy
// @Description  Downloads the applicant list as an Excel workbook or CSV file.
// @Tags         vacancies
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        id      path      string  true   "Vacancy ID"
// @Param        format  query     string  false  "xlsx or csv"  Enums(xlsx, csv)
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id}/applications/export [get]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *VacancyHandler) ExportApplications(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportXLSX)))
	file, err := h.applicationUC.ExportForVacancy(c.Request.Context(), middleware.PrincipalFrom(c), id, format)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Update godoc
// @Summary      Update a vacancy
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Vacancy ID"
// @Param        vacancy  body      VacancyRequest  true  "Vacancy"
// @Success      200  {object}  response.Response{data=domain.VacancyDetail}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id} [put]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *VacancyHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req VacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	vacancy, err := h.vacancyUC.UpdateVacancy(c.Request.Context(), middleware.PrincipalFrom(c), id, req.input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy updated", vacancy)
}

// Delete godoc
// @Summary      Delete a vacancy
// @Tags         vacancies
// @Param        id   path  string  true  "Vacancy ID"
// @Success      204
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id} [delete]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *VacancyHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.vacancyUC.DeleteVacancy(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.NoContent(c)
}

// Toggle godoc
// @Summary      Toggle a vacancy's active flag
// @Tags         vacancies
// @Produce      json
// @Param        id   path      string  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=domain.VacancySummary}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id}/toggle [patch]
// @Security     BasicAuth
// @Security     BearerAuth
func (h *VacancyHandler) Toggle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	vacancy, err := h.vacancyUC.ToggleActive(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy status updated", vacancy)
}
