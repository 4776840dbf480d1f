package models

// Capability is a job-role classification taxonomy (domain area).
type Capability struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Band is a job-role seniority level.
type Band struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// JobStatus is a job availability status lookup row (Open, Closed).
type JobStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
