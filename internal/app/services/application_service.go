package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/db"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
	"github.com/teamthree/jobapply/internal/pkg/helpers"
	"github.com/teamthree/jobapply/internal/pkg/logger"
	"github.com/teamthree/jobapply/internal/pkg/validation"
)

// IApplicationRepository abstracts application persistence for the service
// layer.
type IApplicationRepository interface {
	Create(ctx context.Context, input *models.ApplicationCreate) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetByIDWithJobRole(ctx context.Context, id int64) (*models.ApplicationWithJobRole, error)
	GetAll(ctx context.Context, sortBy, sortOrder string) ([]models.Application, error)
	GetAllWithJobRoles(ctx context.Context, sortBy, sortOrder string) ([]models.ApplicationWithJobRole, error)
	GetByEmail(ctx context.Context, email string) ([]models.Application, error)
	GetByJobRole(ctx context.Context, jobRoleID int64) ([]models.Application, error)
	GetByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (bool, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.ApplicationStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetAnalytics(ctx context.Context, dayStart, dayEnd time.Time) (*models.ApplicationAnalytics, error)
}

// jobRoleTxRepository is the slice of the job role repository the hire flow
// needs inside a transaction.
type jobRoleTxRepository interface {
	IJobRoleRepository
	DecrementOpenPositionsTx(ctx context.Context, tx pgx.Tx, id int64) error
}

// SubmitResult is the outcome of an application submission. Refusals
// (closed role, exhausted positions) are expected business outcomes, so they
// come back as Success=false rather than as errors.
type SubmitResult struct {
	Success       bool
	Message       string
	ApplicationID int64
}

// adminSettableStatuses excludes Hired; that is only reachable through the
// dedicated hire flow.
var adminSettableStatuses = map[models.ApplicationStatus]bool{
	models.ApplicationPending:  true,
	models.ApplicationReviewed: true,
	models.ApplicationAccepted: true,
	models.ApplicationRejected: true,
}

// ApplicationService handles application business logic.
type ApplicationService struct {
	appRepo IApplicationRepository
	jobRepo jobRoleTxRepository
	runTx   func(ctx context.Context, fn db.TransactionFn) error
}

// NewApplicationService creates a new application service. The transaction
// runner executes the hire flow atomically.
func NewApplicationService(appRepo IApplicationRepository, jobRepo jobRoleTxRepository, runTx func(ctx context.Context, fn db.TransactionFn) error) *ApplicationService {
	return &ApplicationService{appRepo: appRepo, jobRepo: jobRepo, runTx: runTx}
}

func validateApplicationInput(input *models.ApplicationCreate) string {
	if !validation.IsValidEmail(input.EmailAddress) {
		return "Invalid email address format"
	}
	if !validation.IsValidPhoneNumber(input.PhoneNumber) {
		return "Invalid phone number. Must be a valid number"
	}
	if input.JobRoleID <= 0 {
		return "Valid job role ID is required"
	}
	if input.CoverLetter != nil && len(*input.CoverLetter) > validation.CoverLetterMaxLength {
		return "Cover letter must be less than 2000 characters"
	}
	return ""
}

// SubmitApplication validates the payload, checks the target role is open
// with positions available, and creates a Pending application. All expected
// refusals come back in the result; the error is reserved for datastore
// failures.
func (s *ApplicationService) SubmitApplication(ctx context.Context, input *models.ApplicationCreate) (*SubmitResult, error) {
	if msg := validateApplicationInput(input); msg != "" {
		return &SubmitResult{Success: false, Message: msg}, nil
	}

	jobRole, err := s.jobRepo.GetByID(ctx, input.JobRoleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrJobRoleNotFound) {
			return &SubmitResult{Success: false, Message: "Job role not found"}, nil
		}
		return nil, fmt.Errorf("failed to load job role: %w", err)
	}

	if !jobRole.IsOpen() {
		return &SubmitResult{Success: false, Message: "This job role is no longer accepting applications"}, nil
	}
	if jobRole.OpenPositions <= 0 {
		return &SubmitResult{Success: false, Message: "No open positions available for this job role"}, nil
	}

	id, err := s.appRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return &SubmitResult{
		Success:       true,
		ApplicationID: id,
		Message:       "Application submitted successfully",
	}, nil
}

// GetApplicationByID returns one application.
func (s *ApplicationService) GetApplicationByID(ctx context.Context, id int64) (*models.Application, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Valid application ID is required")
	}
	return s.appRepo.GetByID(ctx, id)
}

// GetApplicationDetails returns one application with its job role joined in.
func (s *ApplicationService) GetApplicationDetails(ctx context.Context, id int64) (*models.ApplicationWithJobRole, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Valid application ID is required")
	}
	return s.appRepo.GetByIDWithJobRole(ctx, id)
}

// GetAllApplications lists every application.
func (s *ApplicationService) GetAllApplications(ctx context.Context, sortBy, sortOrder string) ([]models.Application, error) {
	return s.appRepo.GetAll(ctx, sortBy, sortOrder)
}

// GetApplicationsWithJobRoles lists every application with its job role
// name and location.
func (s *ApplicationService) GetApplicationsWithJobRoles(ctx context.Context, sortBy, sortOrder string) ([]models.ApplicationWithJobRole, error) {
	return s.appRepo.GetAllWithJobRoles(ctx, sortBy, sortOrder)
}

// GetApplicationsByEmail lists a candidate's own applications.
func (s *ApplicationService) GetApplicationsByEmail(ctx context.Context, email string) ([]models.Application, error) {
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("Valid email address is required")
	}
	return s.appRepo.GetByEmail(ctx, email)
}

// GetApplicationsByJobRole lists the applications against one job role.
func (s *ApplicationService) GetApplicationsByJobRole(ctx context.Context, jobRoleID int64) ([]models.Application, error) {
	if jobRoleID <= 0 {
		return nil, apperrors.NewValidationError("Valid job role ID is required")
	}
	return s.appRepo.GetByJobRole(ctx, jobRoleID)
}

// GetApplicationsByStatus lists the applications currently in one status.
func (s *ApplicationService) GetApplicationsByStatus(ctx context.Context, status string) ([]models.Application, error) {
	st := models.ApplicationStatus(status)
	if !adminSettableStatuses[st] && st != models.ApplicationHired {
		return nil, apperrors.NewValidationError("Invalid status. Must be one of: Pending, Reviewed, Accepted, Rejected, Hired")
	}
	return s.appRepo.GetByStatus(ctx, st)
}

// UpdateApplicationStatus sets an admin-settable review status. Hired is
// excluded; HireApplicant is the only path there.
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, id int64, status string) (*models.Application, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Valid application ID is required")
	}
	st := models.ApplicationStatus(status)
	if !adminSettableStatuses[st] {
		return nil, apperrors.NewValidationError("Invalid status. Must be one of: Pending, Reviewed, Accepted, Rejected")
	}

	updated, err := s.appRepo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperrors.ErrApplicationNotFound
	}
	return s.appRepo.GetByID(ctx, id)
}

// HireApplicant marks an application Hired and decrements the role's open
// positions in one transaction; both commit or neither does.
func (s *ApplicationService) HireApplicant(ctx context.Context, id int64) (*models.Application, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Valid application ID is required")
	}

	application, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	jobRole, err := s.jobRepo.GetByID(ctx, application.JobRoleID)
	if err != nil {
		return nil, err
	}
	if jobRole.OpenPositions <= 0 {
		return nil, apperrors.NewForbiddenError("No open positions available for this job role")
	}

	err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		updated, err := s.appRepo.UpdateStatusTx(ctx, tx, id, models.ApplicationHired)
		if err != nil {
			return err
		}
		if !updated {
			return apperrors.ErrApplicationNotFound
		}
		return s.jobRepo.DecrementOpenPositionsTx(ctx, tx, application.JobRoleID)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenPositions) {
			return nil, apperrors.NewForbiddenError("No open positions available for this job role")
		}
		return nil, err
	}

	logger.Info().Int64("application", id).Int64("jobRole", application.JobRoleID).Msg("Applicant hired")
	return s.appRepo.GetByID(ctx, id)
}

// RejectApplicant marks an application Rejected.
func (s *ApplicationService) RejectApplicant(ctx context.Context, id int64) (*models.Application, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Valid application ID is required")
	}

	updated, err := s.appRepo.UpdateStatus(ctx, id, models.ApplicationRejected)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperrors.ErrApplicationNotFound
	}
	return s.appRepo.GetByID(ctx, id)
}

// WithdrawApplication hard-deletes a candidate's own application. The email
// must match the stored address exactly, including case.
func (s *ApplicationService) WithdrawApplication(ctx context.Context, id int64, requesterEmail string) (bool, error) {
	if id <= 0 {
		return false, apperrors.NewValidationError("Valid application ID is required")
	}
	if !validation.IsValidEmail(requesterEmail) {
		return false, apperrors.NewValidationError("Valid email address is required")
	}

	application, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	if application.EmailAddress != requesterEmail {
		return false, apperrors.NewForbiddenError("You can only withdraw your own applications")
	}

	return s.appRepo.Delete(ctx, id)
}

// GetApplicationAnalytics counts applications for the UTC calendar day
// containing the target date.
func (s *ApplicationService) GetApplicationAnalytics(ctx context.Context, targetDate time.Time) (*models.ApplicationAnalytics, error) {
	dayStart, dayEnd := helpers.DayBoundsUTC(targetDate)
	analytics, err := s.appRepo.GetAnalytics(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get application analytics: %w", err)
	}
	return analytics, nil
}
