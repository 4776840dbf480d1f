// Package repositories owns all persistence. Services never touch SQL.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository behind one constructor so bootstrap
// wires a single value.
type Repositories struct {
	JobRoles     *JobRoleRepository
	Applications *ApplicationRepository
	Users        *UserRepository
	Lookups      *LookupRepository
}

// NewRepositories creates all repositories over one shared pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		JobRoles:     NewJobRoleRepository(db),
		Applications: NewApplicationRepository(db),
		Users:        NewUserRepository(db),
		Lookups:      NewLookupRepository(db),
	}
}
