package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard/internal/services"
	"jobboard/pkg/middleware"
	"jobboard/pkg/utils"
)

const appName = "Jobs Beyond Border"

type PagesController struct {
	analysisService services.AnalysisService
	db              *gorm.DB
}

func NewPagesController(analysisService services.AnalysisService, db *gorm.DB) *PagesController {
	return &PagesController{analysisService: analysisService, db: db}
}

// Home godoc
// @Summary Landing page
// @Tags Pages
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router / [get]
func (p *PagesController) Home(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"name": appName}, "Home")
}

// About godoc
// @Summary About page
// @Tags Pages
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /about [get]
func (p *PagesController) About(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"name": appName}, "About")
}

// Analysis godoc
// @Summary Job market analysis
// @Description Totals, jobs per source, top companies and the caller's saved-job count
// @Tags Pages
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.AnalysisReport}
// @Router /analysis [get]
func (p *PagesController) Analysis(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	report, err := p.analysisService.UserReport(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, report, "Analysis")
}

// Health godoc
// @Summary Liveness and database check
// @Tags Pages
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (p *PagesController) Health(c *gin.Context) {
	sqlDB, err := p.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.RespondSuccess(c, gin.H{"database": "ok"}, "ok")
}
