// Package dto provides data transfer objects for the issuance HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	licenseService "github.com/allisson/license-manager/internal/license/service"
)

// DownloadLicenseRequest holds the query parameters of a download.
//
// The token itself is not validated here: a malformed token must be reported
// exactly like an unknown one.
type DownloadLicenseRequest struct {
	Token  string `form:"token"`
	Format string `form:"format"`
}

// Validate checks the requested artifact format.
func (r *DownloadLicenseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Format,
			validation.In(string(licenseService.FormatXML), string(licenseService.FormatJSON)),
		),
	)
}
