// Package mocks provides mock implementations of the issuance use case for handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	issuanceDomain "github.com/allisson/license-manager/internal/issuance/domain"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

// MockIssuanceUseCase is a mock implementation of IssuanceUseCase.
type MockIssuanceUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method of IssuanceUseCase.
func (m *MockIssuanceUseCase) Issue(ctx context.Context, licenseID uuid.UUID) (*issuanceDomain.IssueOutput, error) {
	args := m.Called(ctx, licenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issuanceDomain.IssueOutput), args.Error(1)
}

// Sign mocks the Sign method of IssuanceUseCase.
func (m *MockIssuanceUseCase) Sign(ctx context.Context, licenseID uuid.UUID) (*licenseDomain.SignedArtifact, error) {
	args := m.Called(ctx, licenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.SignedArtifact), args.Error(1)
}

// Download mocks the Download method of IssuanceUseCase.
func (m *MockIssuanceUseCase) Download(ctx context.Context, token string) (*licenseDomain.SignedArtifact, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.SignedArtifact), args.Error(1)
}
