package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/db"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
)

// passthroughTx runs the transactional function directly; the fakes have no
// real transaction to join.
func passthroughTx(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

func newApplicationFixture() (*ApplicationService, *fakeApplicationRepo, *fakeJobRoleRepo) {
	appRepo := newFakeApplicationRepo()
	jobRepo := newFakeJobRoleRepo()
	return NewApplicationService(appRepo, jobRepo, passthroughTx), appRepo, jobRepo
}

func addOpenRole(jobRepo *fakeJobRoleRepo, openPositions int) *models.JobRole {
	statusName := "Open"
	return jobRepo.addRole(models.JobRole{
		Name: "Engineer", Location: "Belfast",
		StatusID: models.StatusOpenID, StatusName: &statusName,
		ClosingDate: "2999-01-01", OpenPositions: openPositions,
	})
}

func validApplicationInput(jobRoleID int64) *models.ApplicationCreate {
	return &models.ApplicationCreate{
		JobRoleID:    jobRoleID,
		EmailAddress: "a@b.com",
		PhoneNumber:  "07912345678",
	}
}

func TestSubmitApplicationSuccess(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)

	result, err := svc.SubmitApplication(context.Background(), validApplicationInput(role.ID))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Application submitted successfully", result.Message)
	require.NotZero(t, result.ApplicationID)

	created, err := appRepo.GetByID(context.Background(), result.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, created.Status)
}

func TestSubmitApplicationValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ApplicationCreate)
		message string
	}{
		{"bad email", func(i *models.ApplicationCreate) { i.EmailAddress = "not-an-email" }, "Invalid email address format"},
		{"bad phone", func(i *models.ApplicationCreate) { i.PhoneNumber = "12ab34" }, "Invalid phone number. Must be a valid number"},
		{"short phone", func(i *models.ApplicationCreate) { i.PhoneNumber = "12345" }, "Invalid phone number. Must be a valid number"},
		{"bad job role id", func(i *models.ApplicationCreate) { i.JobRoleID = 0 }, "Valid job role ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, appRepo, jobRepo := newApplicationFixture()
			addOpenRole(jobRepo, 1)

			input := validApplicationInput(1)
			tt.mutate(input)

			result, err := svc.SubmitApplication(context.Background(), input)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
			assert.Empty(t, appRepo.applications)
		})
	}
}

func TestSubmitApplicationCoverLetterTooLong(t *testing.T) {
	svc, _, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)

	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'x'
	}
	cover := string(long)

	input := validApplicationInput(role.ID)
	input.CoverLetter = &cover

	result, err := svc.SubmitApplication(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Cover letter must be less than 2000 characters", result.Message)
}

func TestSubmitApplicationJobRoleNotFound(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	result, err := svc.SubmitApplication(context.Background(), validApplicationInput(99))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Job role not found", result.Message)
}

func TestSubmitApplicationClosedRole(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	closed := "Closed"
	role := jobRepo.addRole(models.JobRole{
		Name: "Engineer", StatusID: models.StatusClosedID, StatusName: &closed,
		OpenPositions: 1,
	})

	result, err := svc.SubmitApplication(context.Background(), validApplicationInput(role.ID))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "This job role is no longer accepting applications", result.Message)
	assert.Empty(t, appRepo.applications)
}

func TestSubmitApplicationNoPositions(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 0)

	result, err := svc.SubmitApplication(context.Background(), validApplicationInput(role.ID))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No open positions available for this job role", result.Message)
	assert.Empty(t, appRepo.applications)
}

func TestUpdateApplicationStatusRejectsHired(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)
	app := appRepo.addApplication(models.Application{JobRoleID: role.ID, Status: models.ApplicationPending})

	_, err := svc.UpdateApplicationStatus(context.Background(), app.ID, "Hired")
	require.Error(t, err)
	assert.Equal(t, "Invalid status. Must be one of: Pending, Reviewed, Accepted, Rejected", err.Error())
}

func TestUpdateApplicationStatus(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)
	app := appRepo.addApplication(models.Application{JobRoleID: role.ID, Status: models.ApplicationPending})

	updated, err := svc.UpdateApplicationStatus(context.Background(), app.ID, "Reviewed")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationReviewed, updated.Status)
}

func TestHireApplicant(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)
	app := appRepo.addApplication(models.Application{JobRoleID: role.ID, Status: models.ApplicationReviewed})

	hired, err := svc.HireApplicant(context.Background(), app.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationHired, hired.Status)
	assert.Zero(t, jobRepo.roles[role.ID].OpenPositions)
}

func TestHireApplicantNoPositions(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 0)
	app := appRepo.addApplication(models.Application{JobRoleID: role.ID, Status: models.ApplicationReviewed})

	_, err := svc.HireApplicant(context.Background(), app.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The application is untouched.
	unchanged, err := appRepo.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationReviewed, unchanged.Status)
}

func TestHireApplicantNotFound(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	_, err := svc.HireApplicant(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestRejectApplicant(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)
	app := appRepo.addApplication(models.Application{JobRoleID: role.ID, Status: models.ApplicationReviewed})

	rejected, err := svc.RejectApplicant(context.Background(), app.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationRejected, rejected.Status)
	// Rejection never gives positions back.
	assert.Equal(t, 1, jobRepo.roles[role.ID].OpenPositions)
}

func TestWithdrawApplicationOwner(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)
	app := appRepo.addApplication(models.Application{JobRoleID: role.ID, EmailAddress: "a@b.com"})

	withdrawn, err := svc.WithdrawApplication(context.Background(), app.ID, "a@b.com")
	require.NoError(t, err)
	assert.True(t, withdrawn)
	assert.Empty(t, appRepo.applications)
}

func TestWithdrawApplicationWrongEmail(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)
	app := appRepo.addApplication(models.Application{JobRoleID: role.ID, EmailAddress: "a@b.com"})

	_, err := svc.WithdrawApplication(context.Background(), app.ID, "other@b.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Len(t, appRepo.applications, 1)
}

func TestWithdrawApplicationCaseSensitive(t *testing.T) {
	svc, appRepo, jobRepo := newApplicationFixture()
	role := addOpenRole(jobRepo, 1)
	app := appRepo.addApplication(models.Application{JobRoleID: role.ID, EmailAddress: "a@b.com"})

	// The ownership check matches the stored address byte for byte.
	_, err := svc.WithdrawApplication(context.Background(), app.ID, "A@B.com")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestWithdrawApplicationNotFound(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	_, err := svc.WithdrawApplication(context.Background(), 42, "a@b.com")
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestGetApplicationAnalytics(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	appRepo.analytics = &models.ApplicationAnalytics{
		ApplicationsCreatedToday: 4,
		ApplicationsHiredToday:   1,
		TotalApplicationsToday:   4,
	}
	svc := NewApplicationService(appRepo, newFakeJobRoleRepo(), passthroughTx)

	analytics, err := svc.GetApplicationAnalytics(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 4, analytics.ApplicationsCreatedToday)
	assert.Equal(t, 1, analytics.ApplicationsHiredToday)
	assert.Equal(t, 4, analytics.TotalApplicationsToday)
}
