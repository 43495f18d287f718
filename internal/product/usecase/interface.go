// Package usecase implements product onboarding: every product is created together
// with its own signing key pair, sealed under the deployment secret.
package usecase

import (
	"context"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

// ProductRepository defines persistence operations for products.
// Implementations must support transaction-aware operations via context propagation.
type ProductRepository interface {
	// Create stores a new product with its key pair.
	Create(ctx context.Context, product *licenseDomain.Product) error

	// Get retrieves a product by ID. Returns ErrProductNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*licenseDomain.Product, error)
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	// Algorithm is the signing key algorithm. Empty selects the configured default.
	Algorithm cryptoDomain.KeyAlgorithm
}

// ProductUseCase defines product operations.
type ProductUseCase interface {
	// Create generates a key pair and stores the product. The private key is only
	// ever persisted in encrypted form.
	Create(ctx context.Context, input *CreateProductInput) (*licenseDomain.Product, error)

	// GetPublicKey returns the PEM public key used to verify the product's licenses.
	GetPublicKey(ctx context.Context, productID uuid.UUID) (string, error)
}
