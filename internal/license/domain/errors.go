package domain

import (
	"github.com/allisson/license-manager/internal/errors"
)

var (
	// ErrLicenseNotFound indicates the license record was not found.
	ErrLicenseNotFound = errors.Wrap(errors.ErrNotFound, "license not found")

	// ErrCustomerNotFound indicates the customer record was not found.
	ErrCustomerNotFound = errors.Wrap(errors.ErrNotFound, "customer not found")

	// ErrProductNotFound indicates the product record was not found.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "product not found")

	// ErrProductAlreadyExists indicates a product with the same id already exists.
	ErrProductAlreadyExists = errors.Wrap(errors.ErrConflict, "product already exists")

	// ErrInvalidLicense indicates the license data cannot produce a valid document.
	ErrInvalidLicense = errors.Wrap(errors.ErrInvalidInput, "invalid license")

	// ErrInvalidArtifact indicates a serialized license could not be decoded.
	ErrInvalidArtifact = errors.Wrap(errors.ErrInvalidInput, "invalid license artifact")

	// ErrSigningFailed indicates the signature operation itself failed.
	ErrSigningFailed = errors.New("license signing failed")

	// ErrSignatureInvalid indicates a signature does not match the document and key.
	ErrSignatureInvalid = errors.New("license signature is invalid")
)
