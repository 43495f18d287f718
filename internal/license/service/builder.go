// Package service builds, signs, verifies and serializes license documents.
package service

import (
	"maps"

	validation "github.com/jellydator/validation"

	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
	customValidation "github.com/allisson/license-manager/internal/validation"
)

// DocumentBuilder assembles license documents from stored records. It is stateless.
type DocumentBuilder struct{}

// NewDocumentBuilder creates a new DocumentBuilder.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

// Build creates the document for license, embedding the customer and product
// identification. The expiration is normalized to UTC and every map is copied.
//
// Returns licenseDomain.ErrInvalidLicense when an argument is nil, the expiration is
// unset or outside years 0000-9999, the quantity is negative, the license type is
// unknown, or a text field holds invalid UTF-8 or characters XML cannot carry.
func (b *DocumentBuilder) Build(
	license *licenseDomain.License,
	customer *licenseDomain.Customer,
	product *licenseDomain.Product,
) (*licenseDomain.Document, error) {
	if license == nil || customer == nil || product == nil {
		return nil, customValidation.WrapValidationErrorAs(
			licenseDomain.ErrInvalidLicense,
			validation.NewError("validation_required", "license, customer and product are required"),
		)
	}

	err := validation.ValidateStruct(license,
		validation.Field(&license.Expiration,
			validation.Required.Error("expiration is required"),
			validation.By(customValidation.RFC3339Year),
		),
		validation.Field(&license.Quantity, validation.Min(0).Error("must be no less than 0")),
		validation.Field(&license.Type, validation.By(func(any) error {
			return license.Type.Validate()
		})),
		validation.Field(&license.ProductFeatures, validation.By(customValidation.XMLTextMap)),
		validation.Field(&license.AdditionalAttributes, validation.By(customValidation.XMLTextMap)),
	)
	if err != nil {
		return nil, customValidation.WrapValidationErrorAs(licenseDomain.ErrInvalidLicense, err)
	}

	// Every string lands in the XML license file, so it must survive XML unchanged.
	err = validation.ValidateStruct(customer,
		validation.Field(&customer.Name, customValidation.XMLText),
		validation.Field(&customer.Email, customValidation.XMLText),
		validation.Field(&customer.Company, customValidation.XMLText),
	)
	if err != nil {
		return nil, customValidation.WrapValidationErrorAs(licenseDomain.ErrInvalidLicense, err)
	}

	err = validation.ValidateStruct(product,
		validation.Field(&product.Name, customValidation.XMLText),
	)
	if err != nil {
		return nil, customValidation.WrapValidationErrorAs(licenseDomain.ErrInvalidLicense, err)
	}

	return &licenseDomain.Document{
		LicenseID:  license.ID,
		Type:       license.Type,
		Quantity:   license.Quantity,
		Expiration: license.Expiration.UTC(),
		Customer: licenseDomain.LicenseeInfo{
			Name:    customer.Name,
			Email:   customer.Email,
			Company: customer.Company,
		},
		ProductID:            product.ID,
		ProductName:          product.Name,
		ProductFeatures:      copyMap(license.ProductFeatures),
		AdditionalAttributes: copyMap(license.AdditionalAttributes),
	}, nil
}

// copyMap returns a non-nil copy so that documents built from nil and empty maps
// compare and encode identically.
func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	maps.Copy(out, m)
	return out
}
