package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamthree/jobapply/internal/app/models/dto"
	"github.com/teamthree/jobapply/internal/scheduler"
)

// SchedulerController exposes admin control over the background tasks.
type SchedulerController struct {
	scheduler *scheduler.Scheduler
}

// NewSchedulerController creates a new scheduler controller
func NewSchedulerController(s *scheduler.Scheduler) *SchedulerController {
	return &SchedulerController{scheduler: s}
}

// Status handles GET /admin/scheduler/status
func (ctrl *SchedulerController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"tasks":     ctrl.scheduler.TaskStatuses(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// StartTask handles POST /admin/scheduler/start/:taskName
func (ctrl *SchedulerController) StartTask(c *gin.Context) {
	name := c.Param("taskName")
	if err := ctrl.scheduler.Start(name); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Task '" + name + "' started successfully",
	})
}

// StopTask handles POST /admin/scheduler/stop/:taskName
func (ctrl *SchedulerController) StopTask(c *gin.Context) {
	name := c.Param("taskName")
	if err := ctrl.scheduler.Stop(name); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Task '" + name + "' stopped successfully",
	})
}

// StartAll handles POST /admin/scheduler/start-all
func (ctrl *SchedulerController) StartAll(c *gin.Context) {
	if err := ctrl.scheduler.StartAll(); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "InternalError",
			Message: "Failed to start all tasks",
		})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "All tasks started successfully",
	})
}

// StopAll handles POST /admin/scheduler/stop-all
func (ctrl *SchedulerController) StopAll(c *gin.Context) {
	ctrl.scheduler.StopAll()
	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "All tasks stopped successfully",
	})
}
