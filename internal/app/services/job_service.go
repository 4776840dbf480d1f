package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/app/repositories"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
	"github.com/teamthree/jobapply/internal/pkg/dberrors"
	"github.com/teamthree/jobapply/internal/pkg/logger"
	"github.com/teamthree/jobapply/internal/pkg/validation"
)

// IJobRoleRepository abstracts job role persistence for the service layer.
type IJobRoleRepository interface {
	GetAll(ctx context.Context, opts repositories.JobRoleListOptions) ([]models.JobRole, error)
	GetByID(ctx context.Context, id int64) (*models.JobRole, error)
	Create(ctx context.Context, input *models.JobRoleCreate) (*models.JobRole, error)
	Update(ctx context.Context, id int64, patch *models.JobRolePatch) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	AutoCloseExpired(ctx context.Context) (int64, error)
}

// ILookupRepository abstracts the taxonomy tables.
type ILookupRepository interface {
	GetCapabilities(ctx context.Context) ([]models.Capability, error)
	GetBands(ctx context.Context) ([]models.Band, error)
	GetStatuses(ctx context.Context) ([]models.JobStatus, error)
}

var jobRoleSortFields = map[string]bool{
	"name":           true,
	"location":       true,
	"closingDate":    true,
	"capabilityName": true,
	"bandName":       true,
	"statusName":     true,
	"openPositions":  true,
}

// JobService handles job role business logic.
type JobService struct {
	jobRepo    IJobRoleRepository
	lookupRepo ILookupRepository
}

// NewJobService creates a new job service
func NewJobService(jobRepo IJobRoleRepository, lookupRepo ILookupRepository) *JobService {
	return &JobService{jobRepo: jobRepo, lookupRepo: lookupRepo}
}

func validateJobRoleInput(input *models.JobRoleCreate) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("Role name is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return apperrors.NewValidationError("Location is required")
	}
	if input.CapabilityID <= 0 {
		return apperrors.NewValidationError("Valid capability ID is required")
	}
	if input.BandID <= 0 {
		return apperrors.NewValidationError("Valid band ID is required")
	}
	if !validation.IsValidDate(input.ClosingDate) {
		return apperrors.NewValidationError("Invalid closing date format. Use YYYY-MM-DD")
	}
	closing, err := time.Parse("2006-01-02", input.ClosingDate)
	if err != nil {
		return apperrors.NewValidationError("Invalid closing date format. Use YYYY-MM-DD")
	}
	// Date-only comparison: a role closing today is still valid.
	today, _ := time.Parse("2006-01-02", time.Now().UTC().Format("2006-01-02"))
	if closing.Before(today) {
		return apperrors.NewValidationError("Closing date must be in the future")
	}
	if input.OpenPositions != nil && *input.OpenPositions <= 0 {
		return apperrors.NewValidationError("Open positions must be greater than 0")
	}
	return nil
}

// AddJob validates and creates a job role, returning the persisted record
// enriched with its lookup names.
func (s *JobService) AddJob(ctx context.Context, input *models.JobRoleCreate) (*models.JobRole, error) {
	if err := validateJobRoleInput(input); err != nil {
		return nil, err
	}

	jobRole, err := s.jobRepo.Create(ctx, input)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewValidationError("Invalid capability ID or band ID. Please select valid options from the dropdown.")
		}
		return nil, fmt.Errorf("failed to create job role: %w", err)
	}
	return jobRole, nil
}

// UpdateJobRole applies a partial update to a non-deleted job role and
// returns the updated record.
func (s *JobService) UpdateJobRole(ctx context.Context, id int64, patch *models.JobRolePatch) (*models.JobRole, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Valid job role ID is required")
	}
	if patch == nil || patch.IsEmpty() {
		return nil, apperrors.NewValidationError("No updates provided")
	}
	if patch.ClosingDate != nil && !validation.IsValidDate(*patch.ClosingDate) {
		return nil, apperrors.NewValidationError("Invalid closing date format. Use YYYY-MM-DD")
	}
	if patch.OpenPositions != nil && *patch.OpenPositions < 0 {
		return nil, apperrors.NewValidationError("Open positions cannot be negative")
	}

	updated, err := s.jobRepo.Update(ctx, id, patch)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewValidationError("Invalid capability ID or band ID. Please select valid options from the dropdown.")
		}
		return nil, fmt.Errorf("failed to update job role: %w", err)
	}
	if !updated {
		return nil, apperrors.ErrJobRoleNotFound
	}

	return s.jobRepo.GetByID(ctx, id)
}

// FetchJobs lists non-deleted job roles. Unrecognized sort fields fall back
// to name ascending.
func (s *JobService) FetchJobs(ctx context.Context, sortBy, sortOrder string, limit, offset int) ([]models.JobRole, error) {
	if !jobRoleSortFields[sortBy] {
		sortBy = "name"
		sortOrder = "asc"
	}
	return s.jobRepo.GetAll(ctx, repositories.JobRoleListOptions{
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    offset,
	})
}

// GetJobByID returns one non-deleted job role.
func (s *JobService) GetJobByID(ctx context.Context, id int64) (*models.JobRole, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("Valid job role ID is required")
	}
	return s.jobRepo.GetByID(ctx, id)
}

// DeleteJob soft-deletes a job role. The bool reports whether a row was
// affected, so repeated deletes are harmless.
func (s *JobService) DeleteJob(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, apperrors.NewValidationError("Valid job role ID is required")
	}
	return s.jobRepo.SoftDelete(ctx, id)
}

// AutoCloseExpiredJobRoles closes every open role past its closing date or
// out of positions. Safe to run repeatedly.
func (s *JobService) AutoCloseExpiredJobRoles(ctx context.Context) (int64, string, error) {
	count, err := s.jobRepo.AutoCloseExpired(ctx)
	if err != nil {
		return 0, "", fmt.Errorf("failed to auto-close job roles: %w", err)
	}

	message := "No job roles needed to be closed"
	if count > 0 {
		message = fmt.Sprintf("Successfully auto-closed %d job role(s)", count)
	}
	logger.Info().Int64("closed", count).Msg("Auto-close sweep finished")
	return count, message, nil
}

// GetCapabilities lists the capability taxonomy. Listing failures degrade to
// an empty slice so dropdowns render rather than 500.
func (s *JobService) GetCapabilities(ctx context.Context) []models.Capability {
	capabilities, err := s.lookupRepo.GetCapabilities(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch capabilities")
		return []models.Capability{}
	}
	return capabilities
}

// GetBands lists the band taxonomy.
func (s *JobService) GetBands(ctx context.Context) []models.Band {
	bands, err := s.lookupRepo.GetBands(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch bands")
		return []models.Band{}
	}
	return bands
}

// GetStatuses lists the job availability statuses.
func (s *JobService) GetStatuses(ctx context.Context) []models.JobStatus {
	statuses, err := s.lookupRepo.GetStatuses(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch statuses")
		return []models.JobStatus{}
	}
	return statuses
}
