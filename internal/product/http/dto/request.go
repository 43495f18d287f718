// Package dto provides data transfer objects for the product HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	customValidation "github.com/allisson/license-manager/internal/validation"
)

// CreateProductRequest contains the parameters for creating a product.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Algorithm is optional; the server default is used when empty.
	Algorithm string `json:"algorithm"`
}

// Validate checks if the create product request is valid.
func (r *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 1024)),
		validation.Field(&r.Algorithm, validation.By(validateKeyAlgorithm)),
	)
}

func validateKeyAlgorithm(value any) error {
	alg, _ := value.(string)
	if alg == "" {
		return nil
	}
	if _, err := cryptoDomain.ParseKeyAlgorithm(alg); err != nil {
		return validation.NewError("validation_key_algorithm", "must be a supported key algorithm")
	}
	return nil
}
