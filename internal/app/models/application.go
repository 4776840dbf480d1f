package models

import "time"

// Application is a candidate's submission against one job role.
type Application struct {
	ID           int64             `json:"applicationID"`
	JobRoleID    int64             `json:"jobRoleId"`
	PhoneNumber  string            `json:"phoneNumber"`
	EmailAddress string            `json:"emailAddress"`
	Status       ApplicationStatus `json:"status"`
	CoverLetter  *string           `json:"coverLetter"`
	Notes        *string           `json:"notes"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ApplicationWithJobRole is an application enriched with its job role's name
// and location via a LEFT JOIN.
type ApplicationWithJobRole struct {
	Application
	JobRoleName     *string `json:"jobRoleName"`
	JobRoleLocation *string `json:"jobRoleLocation"`
}

// ApplicationCreate carries the fields accepted when submitting an application.
type ApplicationCreate struct {
	JobRoleID    int64   `json:"jobRoleId"`
	PhoneNumber  string  `json:"phoneNumber"`
	EmailAddress string  `json:"emailAddress"`
	CoverLetter  *string `json:"coverLetter"`
	Notes        *string `json:"notes"`
}

// ApplicationAnalytics holds per-day application counts. Created is counted by
// createdAt; the status counts are counted by updatedAt so they capture when
// the decision was made, not when the application arrived.
type ApplicationAnalytics struct {
	ApplicationsCreatedToday  int `json:"applicationsCreatedToday"`
	ApplicationsHiredToday    int `json:"applicationsHiredToday"`
	ApplicationsRejectedToday int `json:"applicationsRejectedToday"`
	ApplicationsAcceptedToday int `json:"applicationsAcceptedToday"`
	TotalApplicationsToday    int `json:"totalApplicationsToday"`
}
