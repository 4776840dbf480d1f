package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleUser  RoleType = "user"
)

// ApplicationStatus is the lifecycle state of a candidate application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationReviewed ApplicationStatus = "Reviewed"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
	ApplicationHired    ApplicationStatus = "Hired"
)

// Job availability status IDs as seeded in job_availability_status.
const (
	StatusOpenID   int64 = 1
	StatusClosedID int64 = 2
)

// StatusOpenName is the seeded name of the Open availability status.
const StatusOpenName = "Open"
