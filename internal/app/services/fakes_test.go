package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/app/repositories"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
)

// fakeJobRoleRepo is an in-memory stand-in for the job role repository.
type fakeJobRoleRepo struct {
	roles       map[int64]*models.JobRole
	nextID      int64
	createCalls int
	createErr   error
	closedCount int64
}

func newFakeJobRoleRepo() *fakeJobRoleRepo {
	return &fakeJobRoleRepo{roles: map[int64]*models.JobRole{}, nextID: 1}
}

func (f *fakeJobRoleRepo) addRole(role models.JobRole) *models.JobRole {
	role.ID = f.nextID
	f.nextID++
	f.roles[role.ID] = &role
	return &role
}

func (f *fakeJobRoleRepo) GetAll(ctx context.Context, opts repositories.JobRoleListOptions) ([]models.JobRole, error) {
	out := []models.JobRole{}
	for _, r := range f.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeJobRoleRepo) GetByID(ctx context.Context, id int64) (*models.JobRole, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, apperrors.ErrJobRoleNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeJobRoleRepo) Create(ctx context.Context, input *models.JobRoleCreate) (*models.JobRole, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}

	statusID := models.StatusOpenID
	if input.StatusID != nil {
		statusID = *input.StatusID
	}
	openPositions := 1
	if input.OpenPositions != nil {
		openPositions = *input.OpenPositions
	}
	statusName := models.StatusOpenName
	return f.addRole(models.JobRole{
		Name:          input.Name,
		Location:      input.Location,
		CapabilityID:  input.CapabilityID,
		BandID:        input.BandID,
		ClosingDate:   input.ClosingDate,
		StatusID:      statusID,
		StatusName:    &statusName,
		OpenPositions: openPositions,
	}), nil
}

func (f *fakeJobRoleRepo) Update(ctx context.Context, id int64, patch *models.JobRolePatch) (bool, error) {
	r, ok := f.roles[id]
	if !ok {
		return false, nil
	}
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Location != nil {
		r.Location = *patch.Location
	}
	if patch.ClosingDate != nil {
		r.ClosingDate = *patch.ClosingDate
	}
	if patch.OpenPositions != nil {
		r.OpenPositions = *patch.OpenPositions
	}
	if patch.StatusID != nil {
		r.StatusID = *patch.StatusID
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	return true, nil
}

func (f *fakeJobRoleRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.roles[id]; !ok {
		return false, nil
	}
	delete(f.roles, id)
	return true, nil
}

func (f *fakeJobRoleRepo) AutoCloseExpired(ctx context.Context) (int64, error) {
	count := f.closedCount
	f.closedCount = 0
	return count, nil
}

func (f *fakeJobRoleRepo) DecrementOpenPositionsTx(ctx context.Context, tx pgx.Tx, id int64) error {
	r, ok := f.roles[id]
	if !ok || r.OpenPositions <= 0 {
		return apperrors.ErrNoOpenPositions
	}
	r.OpenPositions--
	return nil
}

// fakeLookupRepo serves fixed taxonomy rows.
type fakeLookupRepo struct {
	err error
}

func (f *fakeLookupRepo) GetCapabilities(ctx context.Context) ([]models.Capability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.Capability{{ID: 1, Name: "Engineering"}}, nil
}

func (f *fakeLookupRepo) GetBands(ctx context.Context) ([]models.Band, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.Band{{ID: 1, Name: "Consultant"}}, nil
}

func (f *fakeLookupRepo) GetStatuses(ctx context.Context) ([]models.JobStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.JobStatus{{ID: 1, Name: "Open"}, {ID: 2, Name: "Closed"}}, nil
}

// fakeApplicationRepo is an in-memory stand-in for the application
// repository.
type fakeApplicationRepo struct {
	applications map[int64]*models.Application
	nextID       int64
	analytics    *models.ApplicationAnalytics
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: map[int64]*models.Application{}, nextID: 1}
}

func (f *fakeApplicationRepo) addApplication(a models.Application) *models.Application {
	a.ID = f.nextID
	f.nextID++
	f.applications[a.ID] = &a
	return &a
}

func (f *fakeApplicationRepo) Create(ctx context.Context, input *models.ApplicationCreate) (int64, error) {
	a := f.addApplication(models.Application{
		JobRoleID:    input.JobRoleID,
		PhoneNumber:  input.PhoneNumber,
		EmailAddress: input.EmailAddress,
		Status:       models.ApplicationPending,
		CoverLetter:  input.CoverLetter,
		Notes:        input.Notes,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	return a.ID, nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeApplicationRepo) GetByIDWithJobRole(ctx context.Context, id int64) (*models.ApplicationWithJobRole, error) {
	a, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ApplicationWithJobRole{Application: *a}, nil
}

func (f *fakeApplicationRepo) GetAll(ctx context.Context, sortBy, sortOrder string) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range f.applications {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeApplicationRepo) GetAllWithJobRoles(ctx context.Context, sortBy, sortOrder string) ([]models.ApplicationWithJobRole, error) {
	out := []models.ApplicationWithJobRole{}
	for _, a := range f.applications {
		out = append(out, models.ApplicationWithJobRole{Application: *a})
	}
	return out, nil
}

func (f *fakeApplicationRepo) GetByEmail(ctx context.Context, email string) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range f.applications {
		if a.EmailAddress == email {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) GetByJobRole(ctx context.Context, jobRoleID int64) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range f.applications {
		if a.JobRoleID == jobRoleID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) GetByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range f.applications {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (bool, error) {
	a, ok := f.applications[id]
	if !ok {
		return false, nil
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeApplicationRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.ApplicationStatus) (bool, error) {
	return f.UpdateStatus(ctx, id, status)
}

func (f *fakeApplicationRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.applications[id]; !ok {
		return false, nil
	}
	delete(f.applications, id)
	return true, nil
}

func (f *fakeApplicationRepo) GetAnalytics(ctx context.Context, dayStart, dayEnd time.Time) (*models.ApplicationAnalytics, error) {
	if f.analytics != nil {
		return f.analytics, nil
	}
	return &models.ApplicationAnalytics{}, nil
}

// fakeUserRepo is an in-memory stand-in for the user repository.
type fakeUserRepo struct {
	users    map[int64]*models.User
	sessions map[string]*models.Session
	nextID   int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[int64]*models.User{},
		sessions: map[string]*models.Session{},
		nextID:   1,
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	copied := *user
	copied.ID = f.nextID
	copied.IsActive = true
	copied.CreatedAt = time.Now()
	f.nextID++
	f.users[copied.ID] = &copied
	return copied.ID, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	if u, ok := f.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserRepo) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	f.sessions[token] = &models.Session{
		ID:        int64(len(f.sessions) + 1),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeUserRepo) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeUserRepo) DeleteSessionByToken(ctx context.Context, token string) (bool, error) {
	if _, ok := f.sessions[token]; !ok {
		return false, nil
	}
	delete(f.sessions, token)
	return true, nil
}

func (f *fakeUserRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	var removed int64
	for token, s := range f.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(f.sessions, token)
			removed++
		}
	}
	return removed, nil
}
