package dto

// UpdateApplicationStatusRequest sets an application's review status.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// WithdrawApplicationRequest identifies the requester for the ownership
// check. The email must match the application's stored address exactly.
type WithdrawApplicationRequest struct {
	EmailAddress string `json:"emailAddress"`
}
