package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamthree/jobapply/internal/app/models"
)

// LookupRepository reads the capability, band and status taxonomy tables.
type LookupRepository struct {
	db *pgxpool.Pool
}

// NewLookupRepository creates a new lookup repository
func NewLookupRepository(db *pgxpool.Pool) *LookupRepository {
	return &LookupRepository{db: db}
}

// GetCapabilities returns all capabilities ordered by name.
func (r *LookupRepository) GetCapabilities(ctx context.Context) ([]models.Capability, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM capabilities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query capabilities: %w", err)
	}
	defer rows.Close()

	capabilities := []models.Capability{}
	for rows.Next() {
		var c models.Capability
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan capability: %w", err)
		}
		capabilities = append(capabilities, c)
	}
	return capabilities, rows.Err()
}

// GetBands returns all bands ordered by name.
func (r *LookupRepository) GetBands(ctx context.Context) ([]models.Band, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM bands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bands: %w", err)
	}
	defer rows.Close()

	bands := []models.Band{}
	for rows.Next() {
		var b models.Band
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan band: %w", err)
		}
		bands = append(bands, b)
	}
	return bands, rows.Err()
}

// GetStatuses returns all job availability statuses ordered by name.
func (r *LookupRepository) GetStatuses(ctx context.Context) ([]models.JobStatus, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM job_availability_status ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statuses: %w", err)
	}
	defer rows.Close()

	statuses := []models.JobStatus{}
	for rows.Next() {
		var s models.JobStatus
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
