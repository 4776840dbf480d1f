package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
)

// jobRoleSortColumns maps API sort fields to the columns of the joined
// listing query. Anything outside this map falls back to the role name, so
// caller input never reaches the SQL text.
var jobRoleSortColumns = map[string]string{
	"name":           "jr.name",
	"location":       "jr.location",
	"closingDate":    "jr.closing_date",
	"capabilityName": "c.name",
	"bandName":       "b.name",
	"statusName":     "s.name",
	"openPositions":  "jr.open_positions",
}

const jobRoleColumns = `
	jr.id, jr.name, jr.location,
	jr.capability_id, c.name AS capability_name,
	jr.band_id, b.name AS band_name,
	jr.status_id, s.name AS status_name,
	to_char(jr.closing_date, 'YYYY-MM-DD') AS closing_date,
	jr.description, jr.responsibilities, jr.job_spec_url,
	jr.open_positions`

const jobRoleJoins = `
	FROM job_roles jr
	LEFT JOIN capabilities c ON c.id = jr.capability_id
	LEFT JOIN bands b ON b.id = jr.band_id
	LEFT JOIN job_availability_status s ON s.id = jr.status_id`

// JobRoleListOptions controls ordering and pagination for job role listings.
type JobRoleListOptions struct {
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
	OnlyOpen  bool
}

// JobRoleRepository manages job role persistence.
type JobRoleRepository struct {
	db *pgxpool.Pool
}

// NewJobRoleRepository creates a new job role repository
func NewJobRoleRepository(db *pgxpool.Pool) *JobRoleRepository {
	return &JobRoleRepository{db: db}
}

func scanJobRole(row pgx.Row) (*models.JobRole, error) {
	var j models.JobRole
	err := row.Scan(
		&j.ID, &j.Name, &j.Location,
		&j.CapabilityID, &j.CapabilityName,
		&j.BandID, &j.BandName,
		&j.StatusID, &j.StatusName,
		&j.ClosingDate,
		&j.Description, &j.Responsibilities, &j.JobSpecURL,
		&j.OpenPositions,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// GetAll returns non-deleted job roles with their lookup names joined in.
func (r *JobRoleRepository) GetAll(ctx context.Context, opts JobRoleListOptions) ([]models.JobRole, error) {
	orderColumn, ok := jobRoleSortColumns[opts.SortBy]
	if !ok {
		orderColumn = "jr.name"
	}
	direction := "ASC"
	if strings.EqualFold(opts.SortOrder, "desc") {
		direction = "DESC"
	}

	query := `SELECT` + jobRoleColumns + jobRoleJoins + `
	WHERE jr.deleted = FALSE`
	if opts.OnlyOpen {
		query += ` AND jr.status_id = 1`
	}
	query += fmt.Sprintf(` ORDER BY %s %s`, orderColumn, direction)

	args := []interface{}{}
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query job roles: %w", err)
	}
	defer rows.Close()

	jobRoles := []models.JobRole{}
	for rows.Next() {
		j, err := scanJobRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job role: %w", err)
		}
		jobRoles = append(jobRoles, *j)
	}
	return jobRoles, rows.Err()
}

// GetByID returns a single non-deleted job role.
func (r *JobRoleRepository) GetByID(ctx context.Context, id int64) (*models.JobRole, error) {
	query := `SELECT` + jobRoleColumns + jobRoleJoins + `
	WHERE jr.id = $1 AND jr.deleted = FALSE`

	j, err := scanJobRole(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobRoleNotFound
		}
		return nil, fmt.Errorf("failed to get job role: %w", err)
	}
	return j, nil
}

// Create inserts a job role and returns the persisted record with lookup
// names joined in.
func (r *JobRoleRepository) Create(ctx context.Context, input *models.JobRoleCreate) (*models.JobRole, error) {
	statusID := models.StatusOpenID
	if input.StatusID != nil {
		statusID = *input.StatusID
	}
	openPositions := 1
	if input.OpenPositions != nil {
		openPositions = *input.OpenPositions
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO job_roles
			(name, location, capability_id, band_id, closing_date, status_id,
			 description, responsibilities, job_spec_url, open_positions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		input.Name, input.Location, input.CapabilityID, input.BandID,
		input.ClosingDate, statusID,
		input.Description, input.Responsibilities, input.JobSpecURL,
		openPositions,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update applies a typed patch to a non-deleted job role. Returns false when
// no row matched.
func (r *JobRoleRepository) Update(ctx context.Context, id int64, patch *models.JobRolePatch) (bool, error) {
	setClauses := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Location != nil {
		addSet("location", *patch.Location)
	}
	if patch.CapabilityID != nil {
		addSet("capability_id", *patch.CapabilityID)
	}
	if patch.BandID != nil {
		addSet("band_id", *patch.BandID)
	}
	if patch.ClosingDate != nil {
		addSet("closing_date", *patch.ClosingDate)
	}
	if patch.StatusID != nil {
		addSet("status_id", *patch.StatusID)
	}
	if patch.OpenPositions != nil {
		addSet("open_positions", *patch.OpenPositions)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Responsibilities != nil {
		addSet("responsibilities", *patch.Responsibilities)
	}
	if patch.JobSpecURL != nil {
		addSet("job_spec_url", *patch.JobSpecURL)
	}

	if len(setClauses) == 0 {
		return false, nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE job_roles SET %s WHERE id = $%d AND deleted = FALSE`,
		strings.Join(setClauses, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SoftDelete marks a job role deleted. Returns false when no row matched.
func (r *JobRoleRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE job_roles SET deleted = TRUE WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete job role: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AutoCloseExpired closes every open role whose closing date has passed or
// whose positions are exhausted. One conditional UPDATE, so two concurrent
// sweeps cannot double-close.
func (r *JobRoleRepository) AutoCloseExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE job_roles
		SET status_id = $1
		WHERE deleted = FALSE
		  AND status_id = $2
		  AND (closing_date < CURRENT_DATE OR open_positions <= 0)`,
		models.StatusClosedID, models.StatusOpenID)
	if err != nil {
		return 0, fmt.Errorf("failed to auto-close job roles: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DecrementOpenPositionsTx decreases a role's open positions inside an
// existing transaction. The guard keeps the count from going negative under
// concurrent hires.
func (r *JobRoleRepository) DecrementOpenPositionsTx(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE job_roles
		SET open_positions = open_positions - 1
		WHERE id = $1 AND deleted = FALSE AND open_positions > 0`, id)
	if err != nil {
		return fmt.Errorf("failed to decrement open positions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoOpenPositions
	}
	return nil
}
