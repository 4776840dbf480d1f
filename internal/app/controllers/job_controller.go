// Package controllers wires HTTP requests to the service layer.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/app/models/dto"
	"github.com/teamthree/jobapply/internal/app/services"
	"github.com/teamthree/jobapply/internal/middleware"
)

// JobController handles job role endpoints.
type JobController struct {
	jobService *services.JobService
}

// NewJobController creates a new job controller
func NewJobController(jobService *services.JobService) *JobController {
	return &JobController{jobService: jobService}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid ID parameter",
		})
		return 0, false
	}
	return id, true
}

// GetJobs handles GET /jobs
func (ctrl *JobController) GetJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	jobs, err := ctrl.jobService.FetchJobs(
		c.Request.Context(),
		c.DefaultQuery("sortBy", "name"),
		c.DefaultQuery("sortOrder", "asc"),
		limit, offset,
	)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJobByID handles GET /jobs/:id
func (ctrl *JobController) GetJobByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	job, err := ctrl.jobService.GetJobByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob handles POST /jobs/job
func (ctrl *JobController) CreateJob(c *gin.Context) {
	var input models.JobRoleCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid request body",
		})
		return
	}

	job, err := ctrl.jobService.AddJob(c.Request.Context(), &input)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Job role created successfully",
		"jobRole": job,
	})
}

// UpdateJob handles PUT /jobs/:id
func (ctrl *JobController) UpdateJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid request body",
		})
		return
	}

	job, err := ctrl.jobService.UpdateJobRole(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job role updated successfully",
		"jobRole": job,
	})
}

// DeleteJob handles DELETE /jobs/:id
func (ctrl *JobController) DeleteJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := ctrl.jobService.DeleteJob(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "NotFoundError",
			Message: "Job role not found",
		})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Job role deleted successfully",
	})
}

// AutoCloseJobs handles POST /jobs/auto-close
func (ctrl *JobController) AutoCloseJobs(c *gin.Context) {
	count, message, err := ctrl.jobService.AutoCloseExpiredJobRoles(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AutoCloseResponse{
		Success:     true,
		Message:     message,
		ClosedCount: count,
	})
}
