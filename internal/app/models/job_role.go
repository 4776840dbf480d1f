package models

// JobRole represents a postable vacancy joined with its capability, band and
// availability status names. Joined names are pointers because the joins are
// LEFT JOINs and the lookup rows may be absent.
type JobRole struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	CapabilityID    int64   `json:"capabilityId"`
	CapabilityName  *string `json:"capabilityName"`
	BandID          int64   `json:"bandId"`
	BandName        *string `json:"bandName"`
	StatusID        int64   `json:"statusId"`
	StatusName      *string `json:"statusName"`
	ClosingDate     string  `json:"closingDate"` // YYYY-MM-DD
	Description     *string `json:"description,omitempty"`
	Responsibilities *string `json:"responsibilities,omitempty"`
	JobSpecURL      *string `json:"jobSpecUrl,omitempty"`
	OpenPositions   int     `json:"openPositions"`
}

// IsOpen reports whether the role is accepting applications. The status name
// is authoritative; the seeded Open ID is accepted as a fallback for rows
// whose lookup join came back empty.
func (j *JobRole) IsOpen() bool {
	if j.StatusName != nil {
		return *j.StatusName == StatusOpenName
	}
	return j.StatusID == StatusOpenID
}

// JobRoleCreate carries the fields accepted when creating a job role.
type JobRoleCreate struct {
	Name             string  `json:"name"`
	Location         string  `json:"location"`
	CapabilityID     int64   `json:"capabilityId"`
	BandID           int64   `json:"bandId"`
	ClosingDate      string  `json:"closingDate"`
	Description      *string `json:"description"`
	Responsibilities *string `json:"responsibilities"`
	JobSpecURL       *string `json:"jobSpecUrl"`
	StatusID         *int64  `json:"statusId"`
	OpenPositions    *int    `json:"openPositions"`
}

// JobRolePatch is a typed partial update: nil means "leave the column alone".
// Optional text columns use a double pointer so callers can distinguish
// "not supplied" (outer nil) from "explicitly cleared" (inner nil).
type JobRolePatch struct {
	Name             *string
	Location         *string
	CapabilityID     *int64
	BandID           *int64
	ClosingDate      *string
	Description      **string
	Responsibilities **string
	JobSpecURL       **string
	StatusID         *int64
	OpenPositions    *int
}

// IsEmpty reports whether the patch carries no recognized field.
func (p *JobRolePatch) IsEmpty() bool {
	return p.Name == nil && p.Location == nil && p.CapabilityID == nil &&
		p.BandID == nil && p.ClosingDate == nil && p.Description == nil &&
		p.Responsibilities == nil && p.JobSpecURL == nil && p.StatusID == nil &&
		p.OpenPositions == nil
}
