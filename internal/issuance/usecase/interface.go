// Package usecase orchestrates license issuance: loading the records, building and
// signing the document, and parking the artifact behind a download token.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	issuanceDomain "github.com/allisson/license-manager/internal/issuance/domain"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

// LicenseRepository defines persistence operations for license records.
// Implementations must support transaction-aware operations via context propagation.
type LicenseRepository interface {
	// Get retrieves a license by ID. Returns ErrLicenseNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*licenseDomain.License, error)
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	// Get retrieves a customer by ID. Returns ErrCustomerNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*licenseDomain.Customer, error)
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// Get retrieves a product by ID. Returns ErrProductNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*licenseDomain.Product, error)
}

// DocumentBuilder assembles license documents from records.
type DocumentBuilder interface {
	Build(
		license *licenseDomain.License,
		customer *licenseDomain.Customer,
		product *licenseDomain.Product,
	) (*licenseDomain.Document, error)
}

// LicenseSigner signs documents with a product key pair.
type LicenseSigner interface {
	Sign(
		doc *licenseDomain.Document,
		keyPair *cryptoDomain.KeyPair,
		secret *cryptoDomain.DeploymentSecret,
	) (*licenseDomain.SignedArtifact, error)
}

// TokenStore parks signed artifacts under download tokens.
type TokenStore interface {
	Put(ctx context.Context, artifact *licenseDomain.SignedArtifact) (*issuanceDomain.IssueOutput, error)
	Get(ctx context.Context, token string) (*licenseDomain.SignedArtifact, error)
}

// SigningUseCase produces signed license artifacts without issuing download tokens.
type SigningUseCase interface {
	// Sign returns the signed artifact for licenseID. It fails like
	// IssuanceUseCase.Issue, minus the token store errors.
	Sign(ctx context.Context, licenseID uuid.UUID) (*licenseDomain.SignedArtifact, error)
}

// IssuanceUseCase defines the issuance and download operations.
type IssuanceUseCase interface {
	// Issue signs the license identified by licenseID and returns a download token
	// valid for the store TTL. Errors:
	//   - ErrLicenseNotFound, ErrCustomerNotFound, ErrProductNotFound
	//   - ErrInvalidLicense when the record cannot form a document
	//   - ErrKeyCustody or ErrSigningFailed when signing fails
	//   - errors.ErrConfiguration when the deployment secret is unusable
	Issue(ctx context.Context, licenseID uuid.UUID) (*issuanceDomain.IssueOutput, error)

	// Sign returns the signed artifact for licenseID without issuing a token.
	// It fails like Issue, minus the token store errors.
	Sign(ctx context.Context, licenseID uuid.UUID) (*licenseDomain.SignedArtifact, error)

	// Download returns the artifact parked under token, or ErrIssuanceTokenNotFound.
	Download(ctx context.Context, token string) (*licenseDomain.SignedArtifact, error)
}
