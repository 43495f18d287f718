// Package mocks provides mock implementations of the product use case for handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
	productUseCase "github.com/allisson/license-manager/internal/product/usecase"
)

// MockProductUseCase is a mock implementation of ProductUseCase.
type MockProductUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ProductUseCase.
func (m *MockProductUseCase) Create(
	ctx context.Context,
	input *productUseCase.CreateProductInput,
) (*licenseDomain.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.Product), args.Error(1)
}

// GetPublicKey mocks the GetPublicKey method of ProductUseCase.
func (m *MockProductUseCase) GetPublicKey(ctx context.Context, productID uuid.UUID) (string, error) {
	args := m.Called(ctx, productID)
	return args.String(0), args.Error(1)
}
