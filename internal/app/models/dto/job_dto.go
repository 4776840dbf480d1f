package dto

import (
	"encoding/json"

	"github.com/teamthree/jobapply/internal/app/models"
)

// UpdateJobRoleRequest is a partial update body. Key presence is tracked so
// an explicit null can clear an optional text column while an absent key
// leaves it untouched.
type UpdateJobRoleRequest struct {
	Name             *string
	Location         *string
	CapabilityID     *int64
	BandID           *int64
	ClosingDate      *string
	Description      *string
	Responsibilities *string
	JobSpecURL       *string
	StatusID         *int64
	OpenPositions    *int

	present map[string]bool
}

func (r *UpdateJobRoleRequest) UnmarshalJSON(data []byte) error {
	type fields struct {
		Name             *string `json:"name"`
		Location         *string `json:"location"`
		CapabilityID     *int64  `json:"capabilityId"`
		BandID           *int64  `json:"bandId"`
		ClosingDate      *string `json:"closingDate"`
		Description      *string `json:"description"`
		Responsibilities *string `json:"responsibilities"`
		JobSpecURL       *string `json:"jobSpecUrl"`
		StatusID         *int64  `json:"statusId"`
		OpenPositions    *int    `json:"openPositions"`
	}

	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	r.Name = f.Name
	r.Location = f.Location
	r.CapabilityID = f.CapabilityID
	r.BandID = f.BandID
	r.ClosingDate = f.ClosingDate
	r.Description = f.Description
	r.Responsibilities = f.Responsibilities
	r.JobSpecURL = f.JobSpecURL
	r.StatusID = f.StatusID
	r.OpenPositions = f.OpenPositions

	r.present = make(map[string]bool, len(keys))
	for k := range keys {
		r.present[k] = true
	}
	return nil
}

// ToPatch converts the request into a typed patch. Unrecognized keys are
// dropped here, so nothing user-controlled reaches the query builder.
func (r *UpdateJobRoleRequest) ToPatch() *models.JobRolePatch {
	patch := &models.JobRolePatch{}

	if r.Name != nil {
		patch.Name = r.Name
	}
	if r.Location != nil {
		patch.Location = r.Location
	}
	if r.CapabilityID != nil {
		patch.CapabilityID = r.CapabilityID
	}
	if r.BandID != nil {
		patch.BandID = r.BandID
	}
	if r.ClosingDate != nil {
		patch.ClosingDate = r.ClosingDate
	}
	if r.StatusID != nil {
		patch.StatusID = r.StatusID
	}
	if r.OpenPositions != nil {
		patch.OpenPositions = r.OpenPositions
	}

	// Nullable text columns: a present key with a null value clears the
	// column, a present key with a string sets it.
	if r.present["description"] {
		v := r.Description
		patch.Description = &v
	}
	if r.present["responsibilities"] {
		v := r.Responsibilities
		patch.Responsibilities = &v
	}
	if r.present["jobSpecUrl"] {
		v := r.JobSpecURL
		patch.JobSpecURL = &v
	}

	return patch
}
