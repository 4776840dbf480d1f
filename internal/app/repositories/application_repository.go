package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
)

var applicationSortColumns = map[string]string{
	"createdAt":    "a.created_at",
	"updatedAt":    "a.updated_at",
	"status":       "a.status",
	"emailAddress": "a.email_address",
}

const applicationColumns = `
	a.id, a.job_role_id, a.phone_number, a.email_address, a.status,
	a.cover_letter, a.notes, a.created_at, a.updated_at`

// ApplicationRepository manages application persistence.
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID, &a.JobRoleID, &a.PhoneNumber, &a.EmailAddress, &a.Status,
		&a.CoverLetter, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func orderClause(sortBy, sortOrder string) string {
	column, ok := applicationSortColumns[sortBy]
	if !ok {
		column = "a.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

// Create inserts a new application with status Pending and returns its ID.
func (r *ApplicationRepository) Create(ctx context.Context, input *models.ApplicationCreate) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (job_role_id, phone_number, email_address, status, cover_letter, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		input.JobRoleID, input.PhoneNumber, input.EmailAddress,
		models.ApplicationPending, input.CoverLetter, input.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetByID returns one application.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT`+applicationColumns+` FROM applications a WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// GetByIDWithJobRole returns one application enriched with its job role's
// name and location.
func (r *ApplicationRepository) GetByIDWithJobRole(ctx context.Context, id int64) (*models.ApplicationWithJobRole, error) {
	row := r.db.QueryRow(ctx, `
		SELECT`+applicationColumns+`, jr.name, jr.location
		FROM applications a
		LEFT JOIN job_roles jr ON jr.id = a.job_role_id
		WHERE a.id = $1`, id)

	var a models.ApplicationWithJobRole
	err := row.Scan(
		&a.ID, &a.JobRoleID, &a.PhoneNumber, &a.EmailAddress, &a.Status,
		&a.CoverLetter, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		&a.JobRoleName, &a.JobRoleLocation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	applications := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, *a)
	}
	return applications, rows.Err()
}

// GetAll returns every application.
func (r *ApplicationRepository) GetAll(ctx context.Context, sortBy, sortOrder string) ([]models.Application, error) {
	return r.list(ctx, `SELECT`+applicationColumns+` FROM applications a`+orderClause(sortBy, sortOrder))
}

// GetByEmail returns the applications submitted with the given address.
func (r *ApplicationRepository) GetByEmail(ctx context.Context, email string) ([]models.Application, error) {
	return r.list(ctx,
		`SELECT`+applicationColumns+` FROM applications a WHERE a.email_address = $1`+orderClause("createdAt", "desc"),
		email)
}

// GetByJobRole returns the applications against one job role.
func (r *ApplicationRepository) GetByJobRole(ctx context.Context, jobRoleID int64) ([]models.Application, error) {
	return r.list(ctx,
		`SELECT`+applicationColumns+` FROM applications a WHERE a.job_role_id = $1`+orderClause("createdAt", "desc"),
		jobRoleID)
}

// GetByStatus returns the applications currently in one status.
func (r *ApplicationRepository) GetByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error) {
	return r.list(ctx,
		`SELECT`+applicationColumns+` FROM applications a WHERE a.status = $1`+orderClause("createdAt", "desc"),
		status)
}

// GetAllWithJobRoles returns every application joined with its job role's
// name and location.
func (r *ApplicationRepository) GetAllWithJobRoles(ctx context.Context, sortBy, sortOrder string) ([]models.ApplicationWithJobRole, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+applicationColumns+`, jr.name, jr.location
		FROM applications a
		LEFT JOIN job_roles jr ON jr.id = a.job_role_id`+orderClause(sortBy, sortOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	applications := []models.ApplicationWithJobRole{}
	for rows.Next() {
		var a models.ApplicationWithJobRole
		err := rows.Scan(
			&a.ID, &a.JobRoleID, &a.PhoneNumber, &a.EmailAddress, &a.Status,
			&a.CoverLetter, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&a.JobRoleName, &a.JobRoleLocation,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

// UpdateStatus sets an application's status and bumps updated_at. Returns
// false when no row matched.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update application status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatusTx is UpdateStatus inside an existing transaction.
func (r *ApplicationRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.ApplicationStatus) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update application status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes an application row entirely. Returns false when no row
// matched.
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetAnalytics counts applications for one day window: created by
// created_at, decided statuses by updated_at.
func (r *ApplicationRepository) GetAnalytics(ctx context.Context, dayStart, dayEnd time.Time) (*models.ApplicationAnalytics, error) {
	analytics := &models.ApplicationAnalytics{}

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE created_at >= $1 AND created_at < $2`,
		dayStart, dayEnd).Scan(&analytics.ApplicationsCreatedToday)
	if err != nil {
		return nil, fmt.Errorf("failed to count created applications: %w", err)
	}

	statusCounts := []struct {
		status models.ApplicationStatus
		target *int
	}{
		{models.ApplicationHired, &analytics.ApplicationsHiredToday},
		{models.ApplicationRejected, &analytics.ApplicationsRejectedToday},
		{models.ApplicationAccepted, &analytics.ApplicationsAcceptedToday},
	}
	for _, sc := range statusCounts {
		err := r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM applications WHERE status = $1 AND updated_at >= $2 AND updated_at < $3`,
			sc.status, dayStart, dayEnd).Scan(sc.target)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s applications: %w", sc.status, err)
		}
	}

	analytics.TotalApplicationsToday = analytics.ApplicationsCreatedToday
	return analytics, nil
}
