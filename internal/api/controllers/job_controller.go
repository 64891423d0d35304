package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobboard/internal/models/db_models"
	"jobboard/internal/models/request_models"
	"jobboard/internal/repositories"
	"jobboard/internal/services"
	"jobboard/pkg/middleware"
	"jobboard/pkg/utils"
)

type JobController struct {
	jobService services.JobServiceInterface
}

func NewJobController(jobService services.JobServiceInterface) *JobController {
	return &JobController{jobService: jobService}
}

func bindJobID(c *gin.Context) (uuid.UUID, bool) {
	var q request_models.JobIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondBindError(c, err)
		return uuid.Nil, false
	}
	if q.JobID == "" {
		return uuid.Nil, true
	}
	return uuid.MustParse(q.JobID), true
}

// Board godoc
// @Summary Job board
// @Description Lists the jobs the caller has not saved. With jobId the job is saved first.
// @Tags Jobs
// @Produce json
// @Param jobId query string false "Job to save"
// @Success 200 {object} utils.APIResponse
// @Router /jobs [get]
func (j *JobController) Board(c *gin.Context) {
	jobID, ok := bindJobID(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	var (
		jobs []db_models.Job
		err  error
	)
	if jobID != uuid.Nil {
		jobs, err = j.jobService.Save(c.Request.Context(), userID, jobID)
	} else {
		jobs, err = j.jobService.Board(c.Request.Context(), userID)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, jobs, "Jobs")
}

// Search godoc
// @Summary Search jobs
// @Description Case-insensitive contains match on title, description and company; empty fields are ignored
// @Tags Jobs
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body request_models.JobSearchRequest true "Search fields"
// @Success 200 {object} utils.APIResponse
// @Router /jobs [post]
func (j *JobController) Search(c *gin.Context) {
	var req request_models.JobSearchRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	jobs, err := j.jobService.Search(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, jobs, "Jobs")
}

// Saved godoc
// @Summary Saved jobs
// @Description Lists the caller's saved jobs. With jobId the job is removed first.
// @Tags Jobs
// @Produce json
// @Param jobId query string false "Job to remove"
// @Success 200 {object} utils.APIResponse
// @Router /savedjobs [get]
func (j *JobController) Saved(c *gin.Context) {
	jobID, ok := bindJobID(c)
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(c)

	var (
		jobs []db_models.Job
		err  error
	)
	if jobID != uuid.Nil {
		jobs, err = j.jobService.Unsave(c.Request.Context(), userID, jobID)
	} else {
		jobs, err = j.jobService.Saved(c.Request.Context(), userID)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, jobs, "Saved Jobs")
}

func adminJobFilter(c *gin.Context) (repositories.JobFilter, bool) {
	var q request_models.AdminJobQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondBindError(c, err)
		return repositories.JobFilter{}, false
	}
	return repositories.JobFilter{
		Title:       q.Title,
		Description: q.Description,
		CompanyName: q.CompanyName,
		Source:      db_models.JobSource(q.Source),
		Approved:    q.Approved,
	}, true
}

// AdminList godoc
// @Summary Job grid
// @Tags Admin
// @Produce json
// @Param title query string false "Title contains"
// @Param description query string false "Description contains"
// @Param company_name query string false "Company contains"
// @Param approved query bool false "Approval state"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /admin/jobs [get]
func (j *JobController) AdminList(c *gin.Context) {
	filter, ok := adminJobFilter(c)
	if !ok {
		return
	}
	page, pageSize, err := utils.Paging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	jobs, err := j.jobService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, jobs, "Jobs")
}

// AdminUpdate godoc
// @Summary Edit a job
// @Description Inline edit; only the fields present change
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body request_models.UpdateJobRequest true "Changed fields"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/jobs/{id} [patch]
func (j *JobController) AdminUpdate(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req request_models.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	job, err := j.jobService.Update(c.Request.Context(), jobID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, job, "Job updated")
}

// AdminExport godoc
// @Summary Export jobs as CSV
// @Tags Admin
// @Produce text/csv
// @Success 200 {file} file
// @Router /admin/jobs/export [get]
func (j *JobController) AdminExport(c *gin.Context) {
	filter, ok := adminJobFilter(c)
	if !ok {
		return
	}

	name := fmt.Sprintf("jobs-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Status(http.StatusOK)

	if err := j.jobService.ExportCSV(c.Request.Context(), filter, c.Writer); err != nil {
		if c.Writer.Written() {
			_ = c.Error(err)
			return
		}
		c.Writer.Header().Del("Content-Type")
		c.Writer.Header().Del("Content-Disposition")
		utils.HandleServiceError(c, err)
	}
}
