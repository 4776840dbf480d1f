// Package routes mounts every endpoint under /api/v1.
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamthree/jobapply/internal/app/controllers"
	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/app/models/dto"
	"github.com/teamthree/jobapply/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	jobController *controllers.JobController,
	lookupController *controllers.LookupController,
	applicationController *controllers.ApplicationController,
	authController *controllers.AuthController,
	schedulerController *controllers.SchedulerController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status: "ok",
			Time:   time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	v1.GET("/jobs", jobController.GetJobs)
	v1.GET("/jobs/:id", jobController.GetJobByID)

	v1.GET("/capabilities", lookupController.GetCapabilities)
	v1.GET("/bands", lookupController.GetBands)
	v1.GET("/statuses", lookupController.GetStatuses)

	v1.POST("/applications", applicationController.SubmitApplication)
	v1.GET("/applications/my-applications", applicationController.GetMyApplications)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.Profile)

		// Withdrawal needs a known requester; ownership is enforced in the
		// service by matching the email in the body.
		authenticated.DELETE("/applications/:id/withdraw", applicationController.WithdrawApplication)
		authenticated.POST("/applications/:id/withdraw", applicationController.WithdrawApplication)
	}

	// --- Admin routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.POST("/jobs/job", jobController.CreateJob)
		admin.PUT("/jobs/:id", jobController.UpdateJob)
		admin.DELETE("/jobs/:id", jobController.DeleteJob)
		admin.POST("/jobs/auto-close", jobController.AutoCloseJobs)

		admin.GET("/applications", applicationController.GetApplications)
		admin.GET("/applications-with-roles", applicationController.GetApplicationsWithJobRoles)
		admin.GET("/applications/:id", applicationController.GetApplicationByID)
		admin.GET("/applications/:id/details", applicationController.GetApplicationDetails)
		admin.GET("/applications/job-role/:jobRoleId", applicationController.GetApplicationsByJobRole)
		admin.GET("/applications/status/:status", applicationController.GetApplicationsByStatus)
		admin.PUT("/applications/:id/status", applicationController.UpdateApplicationStatus)
		admin.PUT("/applications/:id/hire", applicationController.HireApplicant)
		admin.PUT("/applications/:id/reject", applicationController.RejectApplicant)

		admin.GET("/analytics/applications", applicationController.GetApplicationAnalytics)

		adminScheduler := admin.Group("/admin/scheduler")
		{
			adminScheduler.GET("/status", schedulerController.Status)
			adminScheduler.POST("/start/:taskName", schedulerController.StartTask)
			adminScheduler.POST("/stop/:taskName", schedulerController.StopTask)
			adminScheduler.POST("/start-all", schedulerController.StartAll)
			adminScheduler.POST("/stop-all", schedulerController.StopAll)
		}
	}
}
