package dto

import (
	"time"

	issuanceDomain "github.com/allisson/license-manager/internal/issuance/domain"
)

// IssueLicenseResponse is returned by a successful issuance.
type IssueLicenseResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapIssueOutputToResponse converts a domain issuance result into its API form.
func MapIssueOutputToResponse(output *issuanceDomain.IssueOutput) IssueLicenseResponse {
	return IssueLicenseResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
	}
}
