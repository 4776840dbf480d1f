package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teamthree/jobapply/internal/pkg/auth"
	"github.com/teamthree/jobapply/internal/pkg/logger"
)

// Capability and band names loaded on first boot. Inserts are skipped when
// the table already has rows, so reseeding an existing database is a no-op.
var capabilityNames = []string{
	"Engineering",
	"Data & AI",
	"Digital Services",
	"Workday",
	"Testing",
	"DevOps",
	"Cyber Security",
	"Business Analysis",
	"Project Management",
	"Architecture",
	"UX/UI Design",
	"Platform Engineering",
	"Quality Assurance",
	"Cloud Solutions",
	"ServiceNow",
}

var bandNames = []string{
	"Trainee",
	"Apprentice",
	"Associate",
	"Senior Associate",
	"Consultant",
	"Manager",
	"Principal",
	"Leadership Community",
	"Director",
}

// Status IDs are referenced directly by application logic, so the two rows
// are inserted with fixed IDs.
var statusNames = []string{"Open", "Closed"}

// DefaultAdmin describes the bootstrap admin account created when the users
// table is empty.
type DefaultAdmin struct {
	Email    string
	Password string
}

// SeedDatabase fills the lookup tables and creates the bootstrap admin
// account when the database is empty.
func SeedDatabase(ctx context.Context, db *pgxpool.Pool, admin DefaultAdmin) error {
	if err := seedLookup(ctx, db, "capabilities", capabilityNames); err != nil {
		return err
	}
	if err := seedLookup(ctx, db, "bands", bandNames); err != nil {
		return err
	}
	if err := seedStatuses(ctx, db); err != nil {
		return err
	}
	if err := seedAdminUser(ctx, db, admin); err != nil {
		return err
	}
	return nil
}

func seedLookup(ctx context.Context, db *pgxpool.Pool, table string, names []string) error {
	var count int
	if err := db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count); err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range names {
		if _, err := db.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1)`, table), name); err != nil {
			return fmt.Errorf("failed to seed %s: %w", table, err)
		}
	}

	logger.Info().Str("table", table).Int("rows", len(names)).Msg("Seeded lookup table")
	return nil
}

func seedStatuses(ctx context.Context, db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM job_availability_status`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count job_availability_status: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, name := range statusNames {
		if _, err := db.Exec(ctx,
			`INSERT INTO job_availability_status (id, name) VALUES ($1, $2)`, i+1, name); err != nil {
			return fmt.Errorf("failed to seed job_availability_status: %w", err)
		}
	}

	// Keep the sequence ahead of the fixed-ID inserts.
	if _, err := db.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('job_availability_status', 'id'), $1)`, len(statusNames)); err != nil {
		return fmt.Errorf("failed to advance job_availability_status sequence: %w", err)
	}

	logger.Info().Int("rows", len(statusNames)).Msg("Seeded job availability statuses")
	return nil
}

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, admin DefaultAdmin) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO users (email, password, first_name, last_name, role_type) VALUES ($1, $2, 'Admin', 'User', 'admin')`,
		admin.Email, hashed); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Info().Str("email", admin.Email).Msg("Created bootstrap admin account")
	return nil
}
