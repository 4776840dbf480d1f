package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamthree/jobapply/internal/app/models"
)

func newJobService(repo *fakeJobRoleRepo) *JobService {
	return NewJobService(repo, &fakeLookupRepo{})
}

func validJobInput() *models.JobRoleCreate {
	return &models.JobRoleCreate{
		Name:         "Engineer",
		Location:     "Belfast",
		CapabilityID: 1,
		BandID:       2,
		ClosingDate:  "2999-01-01",
	}
}

func TestAddJobSuccess(t *testing.T) {
	repo := newFakeJobRoleRepo()
	svc := newJobService(repo)

	job, err := svc.AddJob(context.Background(), validJobInput())
	require.NoError(t, err)
	require.NotNil(t, job)

	assert.Equal(t, "Engineer", job.Name)
	assert.Equal(t, 1, job.OpenPositions)
	require.NotNil(t, job.StatusName)
	assert.Equal(t, "Open", *job.StatusName)
}

func TestAddJobValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.JobRoleCreate)
		message string
	}{
		{"missing name", func(i *models.JobRoleCreate) { i.Name = "  " }, "Role name is required"},
		{"missing location", func(i *models.JobRoleCreate) { i.Location = "" }, "Location is required"},
		{"bad capability", func(i *models.JobRoleCreate) { i.CapabilityID = 0 }, "Valid capability ID is required"},
		{"bad band", func(i *models.JobRoleCreate) { i.BandID = -1 }, "Valid band ID is required"},
		{"bad date format", func(i *models.JobRoleCreate) { i.ClosingDate = "01/01/2999" }, "Invalid closing date format. Use YYYY-MM-DD"},
		{"past date", func(i *models.JobRoleCreate) { i.ClosingDate = "2020-01-01" }, "Closing date must be in the future"},
		{"zero positions", func(i *models.JobRoleCreate) {
			zero := 0
			i.OpenPositions = &zero
		}, "Open positions must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeJobRoleRepo()
			svc := newJobService(repo)

			input := validJobInput()
			tt.mutate(input)

			_, err := svc.AddJob(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			// Validation failures never reach the repository.
			assert.Zero(t, repo.createCalls)
		})
	}
}

func TestAddJobClosingToday(t *testing.T) {
	repo := newFakeJobRoleRepo()
	svc := newJobService(repo)

	input := validJobInput()
	input.ClosingDate = time.Now().UTC().Format("2006-01-02")

	job, err := svc.AddJob(context.Background(), input)
	require.NoError(t, err)
	assert.NotNil(t, job)
}

func TestUpdateJobRoleEmptyPatch(t *testing.T) {
	svc := newJobService(newFakeJobRoleRepo())

	_, err := svc.UpdateJobRole(context.Background(), 1, &models.JobRolePatch{})
	require.Error(t, err)
	assert.Equal(t, "No updates provided", err.Error())
}

func TestUpdateJobRoleAppliesFields(t *testing.T) {
	repo := newFakeJobRoleRepo()
	svc := newJobService(repo)

	statusName := "Open"
	role := repo.addRole(models.JobRole{
		Name: "Engineer", Location: "Belfast",
		StatusID: models.StatusOpenID, StatusName: &statusName,
		ClosingDate: "2999-01-01", OpenPositions: 1,
	})

	newName := "Senior Engineer"
	updated, err := svc.UpdateJobRole(context.Background(), role.ID, &models.JobRolePatch{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Senior Engineer", updated.Name)
	assert.Equal(t, "Belfast", updated.Location)
}

func TestUpdateJobRoleNotFound(t *testing.T) {
	svc := newJobService(newFakeJobRoleRepo())

	name := "X"
	_, err := svc.UpdateJobRole(context.Background(), 42, &models.JobRolePatch{Name: &name})
	assert.Error(t, err)
}

func TestUpdateJobRoleBadDate(t *testing.T) {
	svc := newJobService(newFakeJobRoleRepo())

	bad := "tomorrow"
	_, err := svc.UpdateJobRole(context.Background(), 1, &models.JobRolePatch{ClosingDate: &bad})
	require.Error(t, err)
	assert.Equal(t, "Invalid closing date format. Use YYYY-MM-DD", err.Error())
}

func TestDeleteJobIdempotent(t *testing.T) {
	repo := newFakeJobRoleRepo()
	svc := newJobService(repo)

	role := repo.addRole(models.JobRole{Name: "Engineer"})

	deleted, err := svc.DeleteJob(context.Background(), role.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteJob(context.Background(), role.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAutoCloseMessages(t *testing.T) {
	repo := newFakeJobRoleRepo()
	repo.closedCount = 3
	svc := newJobService(repo)

	count, message, err := svc.AutoCloseExpiredJobRoles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, "Successfully auto-closed 3 job role(s)", message)

	// Second run finds nothing to close.
	count, message, err = svc.AutoCloseExpiredJobRoles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No job roles needed to be closed", message)
}

func TestLookupsDegradeToEmpty(t *testing.T) {
	svc := NewJobService(newFakeJobRoleRepo(), &fakeLookupRepo{err: assert.AnError})

	assert.Empty(t, svc.GetCapabilities(context.Background()))
	assert.Empty(t, svc.GetBands(context.Background()))
	assert.Empty(t, svc.GetStatuses(context.Background()))
}
