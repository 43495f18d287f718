// Package domain defines the license, customer and product records and the signed
// license document issued to customers.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
)

// LicenseType is the commercial kind of a license.
type LicenseType string

const (
	LicenseTypeStandard     LicenseType = "Standard"
	LicenseTypeTrial        LicenseType = "Trial"
	LicenseTypeSubscription LicenseType = "Subscription"
)

// Validate returns ErrInvalidLicense for unknown types.
func (t LicenseType) Validate() error {
	switch t {
	case LicenseTypeStandard, LicenseTypeTrial, LicenseTypeSubscription:
		return nil
	default:
		return fmt.Errorf("%w: unknown license type %q", ErrInvalidLicense, string(t))
	}
}

// Customer is the licensee.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Company   string
	CreatedAt time.Time
}

// Product is a licensed product together with its signing key pair.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	KeyPair     cryptoDomain.KeyPair
	CreatedAt   time.Time
}

// License is the stored license record a document is built from.
type License struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Type       LicenseType
	// Quantity is the number of seats or instances granted.
	Quantity   int
	Expiration time.Time
	// ProductFeatures enables product features by name, e.g. "Sales Module" -> "yes".
	ProductFeatures map[string]string
	// AdditionalAttributes are free-form values shown to the licensee.
	AdditionalAttributes map[string]string
	CreatedAt            time.Time
}
