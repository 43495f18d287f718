package dto

import (
	"time"

	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

// ProductResponse describes a product. The encrypted private key is never exposed.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Algorithm   string    `json:"algorithm"`
	PublicKey   string    `json:"public_key"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapProductToResponse converts a domain product into its API form.
func MapProductToResponse(product *licenseDomain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Algorithm:   string(product.KeyPair.Algorithm),
		PublicKey:   product.KeyPair.PublicKey,
		CreatedAt:   product.CreatedAt,
	}
}
