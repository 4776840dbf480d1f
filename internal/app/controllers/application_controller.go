package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/app/models/dto"
	"github.com/teamthree/jobapply/internal/app/services"
	"github.com/teamthree/jobapply/internal/middleware"
	"github.com/teamthree/jobapply/internal/pkg/validation"
)

// ApplicationController handles application endpoints.
type ApplicationController struct {
	appService *services.ApplicationService
}

// NewApplicationController creates a new application controller
func NewApplicationController(appService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{appService: appService}
}

// SubmitApplication handles POST /applications. Business refusals (closed
// role, no positions) are 400s with success=false, not error envelopes.
func (ctrl *ApplicationController) SubmitApplication(c *gin.Context) {
	var input models.ApplicationCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.SubmitApplicationResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	result, err := ctrl.appService.SubmitApplication(c.Request.Context(), &input)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	status := http.StatusCreated
	if !result.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.SubmitApplicationResponse{
		Success:       result.Success,
		Message:       result.Message,
		ApplicationID: result.ApplicationID,
	})
}

// GetApplications handles GET /applications
func (ctrl *ApplicationController) GetApplications(c *gin.Context) {
	applications, err := ctrl.appService.GetAllApplications(
		c.Request.Context(),
		c.DefaultQuery("sortBy", "createdAt"),
		c.DefaultQuery("sortOrder", "desc"),
	)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// GetApplicationsWithJobRoles handles GET /applications-with-roles
func (ctrl *ApplicationController) GetApplicationsWithJobRoles(c *gin.Context) {
	applications, err := ctrl.appService.GetApplicationsWithJobRoles(
		c.Request.Context(),
		c.DefaultQuery("sortBy", "createdAt"),
		c.DefaultQuery("sortOrder", "desc"),
	)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// GetApplicationByID handles GET /applications/:id
func (ctrl *ApplicationController) GetApplicationByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	application, err := ctrl.appService.GetApplicationByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

// GetApplicationDetails handles GET /applications/:id/details
func (ctrl *ApplicationController) GetApplicationDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	application, err := ctrl.appService.GetApplicationDetails(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

// GetMyApplications handles GET /applications/my-applications?email=
func (ctrl *ApplicationController) GetMyApplications(c *gin.Context) {
	email := c.Query("email")
	applications, err := ctrl.appService.GetApplicationsByEmail(c.Request.Context(), email)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// GetApplicationsByJobRole handles GET /applications/job-role/:jobRoleId
func (ctrl *ApplicationController) GetApplicationsByJobRole(c *gin.Context) {
	jobRoleID, err := strconv.ParseInt(c.Param("jobRoleId"), 10, 64)
	if err != nil || jobRoleID <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid job role ID parameter",
		})
		return
	}

	applications, svcErr := ctrl.appService.GetApplicationsByJobRole(c.Request.Context(), jobRoleID)
	if svcErr != nil {
		middleware.HandleAPIError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// GetApplicationsByStatus handles GET /applications/status/:status
func (ctrl *ApplicationController) GetApplicationsByStatus(c *gin.Context) {
	applications, err := ctrl.appService.GetApplicationsByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// UpdateApplicationStatus handles PUT /applications/:id/status
func (ctrl *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid request body",
		})
		return
	}

	application, err := ctrl.appService.UpdateApplicationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Application status updated successfully",
		"application": application,
	})
}

// HireApplicant handles PUT /applications/:id/hire
func (ctrl *ApplicationController) HireApplicant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	application, err := ctrl.appService.HireApplicant(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Applicant hired successfully",
		"application": application,
	})
}

// RejectApplicant handles PUT /applications/:id/reject
func (ctrl *ApplicationController) RejectApplicant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	application, err := ctrl.appService.RejectApplicant(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Applicant rejected",
		"application": application,
	})
}

// WithdrawApplication handles DELETE /applications/:id/withdraw and its
// POST alias. The email can come from the body or, failing that, the query.
func (ctrl *ApplicationController) WithdrawApplication(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.WithdrawApplicationRequest
	_ = c.ShouldBindJSON(&req)
	if req.EmailAddress == "" {
		req.EmailAddress = c.Query("email")
	}

	withdrawn, err := ctrl.appService.WithdrawApplication(c.Request.Context(), id, req.EmailAddress)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if !withdrawn {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "NotFoundError",
			Message: "Application not found",
		})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Application withdrawn successfully",
	})
}

// GetApplicationAnalytics handles GET /analytics/applications?date=YYYY-MM-DD
func (ctrl *ApplicationController) GetApplicationAnalytics(c *gin.Context) {
	dateParam := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))
	if !validation.IsValidDate(dateParam) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	targetDate, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	analytics, err := ctrl.appService.GetApplicationAnalytics(c.Request.Context(), targetDate)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}
