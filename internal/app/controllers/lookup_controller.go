package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamthree/jobapply/internal/app/services"
)

// LookupController serves the dropdown taxonomies.
type LookupController struct {
	jobService *services.JobService
}

// NewLookupController creates a new lookup controller
func NewLookupController(jobService *services.JobService) *LookupController {
	return &LookupController{jobService: jobService}
}

// GetCapabilities handles GET /capabilities
func (ctrl *LookupController) GetCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.jobService.GetCapabilities(c.Request.Context()))
}

// GetBands handles GET /bands
func (ctrl *LookupController) GetBands(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.jobService.GetBands(c.Request.Context()))
}

// GetStatuses handles GET /statuses
func (ctrl *LookupController) GetStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.jobService.GetStatuses(c.Request.Context()))
}
