package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobboard/internal/models/db_models"
	"jobboard/internal/models/request_models"
	"jobboard/internal/services"
	"jobboard/internal/sources"
	"jobboard/pkg/middleware"
	"jobboard/pkg/utils"
)

// AdminController serves the admin landing page and the ingestion forms.
type AdminController struct {
	analysisService  services.AnalysisService
	ingestionService services.IngestionServiceInterface
}

func NewAdminController(analysisService services.AnalysisService, ingestionService services.IngestionServiceInterface) *AdminController {
	return &AdminController{
		analysisService:  analysisService,
		ingestionService: ingestionService,
	}
}

// Dashboard godoc
// @Summary Admin dashboard
// @Description KPIs and jobs per source
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.AdminDashboard}
// @Router /admin [get]
func (a *AdminController) Dashboard(c *gin.Context) {
	dashboard, err := a.analysisService.AdminDashboard(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, dashboard, "Dashboard")
}

func (a *AdminController) ingest(c *gin.Context, source db_models.JobSource, criteria sources.Criteria, save bool) {
	adminID, _ := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	result, err := a.ingestionService.Run(ctx, source, criteria, adminID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	data := gin.H{"result": result}
	if save {
		search, err := a.ingestionService.SaveSearch(ctx, source, criteria, adminID)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		data["saved_search"] = search
	}
	utils.RespondSuccess(c, data, "Ingestion finished")
}

// IngestGitHub godoc
// @Summary Ingest from GitHub Jobs
// @Description Fetches, filters and stores listings as unapproved jobs owned by the caller
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body request_models.GitHubIngestRequest true "Search criteria"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /admin/github [post]
func (a *AdminController) IngestGitHub(c *gin.Context) {
	var req request_models.GitHubIngestRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	a.ingest(c, db_models.SourceGitHub, sources.Criteria{
		Keywords: req.Description,
		Location: req.Location,
		FullTime: req.FullTime,
	}, req.Save)
}

// IngestMuse godoc
// @Summary Ingest from The Muse
// @Description Fetches, filters and stores listings as unapproved jobs owned by the caller
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body request_models.MuseIngestRequest true "Search criteria"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /admin/muse [post]
func (a *AdminController) IngestMuse(c *gin.Context) {
	var req request_models.MuseIngestRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	a.ingest(c, db_models.SourceMuse, sources.Criteria{
		Keywords: req.PositionName,
		Category: req.Category,
		Level:    req.Level,
		Page:     req.Page,
	}, req.Save)
}

// ListSearches godoc
// @Summary Saved searches
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /admin/searches [get]
func (a *AdminController) ListSearches(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)
	searches, err := a.ingestionService.ListSearches(c.Request.Context(), adminID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, searches, "Saved searches")
}

// CreateSearch godoc
// @Summary Save a search for scheduled ingestion
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.SavedSearchRequest true "Source and criteria"
// @Success 201 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /admin/searches [post]
func (a *AdminController) CreateSearch(c *gin.Context) {
	var req request_models.SavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	adminID, _ := middleware.CurrentUserID(c)
	search, err := a.ingestionService.SaveSearch(c.Request.Context(), db_models.JobSource(req.Source), sources.Criteria{
		Keywords: req.Keywords,
		Location: req.Location,
		FullTime: req.FullTime,
		Category: req.Category,
		Level:    req.Level,
		Page:     req.Page,
	}, adminID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondStatus(c, http.StatusCreated, search, "Search saved")
}

// DeleteSearch godoc
// @Summary Delete a saved search
// @Tags Admin
// @Param id path string true "Saved search ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/searches/{id} [delete]
func (a *AdminController) DeleteSearch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid search ID")
		return
	}

	adminID, _ := middleware.CurrentUserID(c)
	if err := a.ingestionService.DeleteSearch(c.Request.Context(), id, adminID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Search deleted")
}
