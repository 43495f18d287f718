package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	issuanceDomain "github.com/allisson/license-manager/internal/issuance/domain"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
	"github.com/allisson/license-manager/internal/metrics"
)

// issuanceUseCaseWithMetrics decorates IssuanceUseCase with metrics instrumentation.
type issuanceUseCaseWithMetrics struct {
	next    IssuanceUseCase
	metrics metrics.BusinessMetrics
}

// NewIssuanceUseCaseWithMetrics wraps an IssuanceUseCase with metrics recording.
func NewIssuanceUseCaseWithMetrics(useCase IssuanceUseCase, m metrics.BusinessMetrics) IssuanceUseCase {
	return &issuanceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for license issuance operations.
func (i *issuanceUseCaseWithMetrics) Issue(
	ctx context.Context,
	licenseID uuid.UUID,
) (*issuanceDomain.IssueOutput, error) {
	start := time.Now()
	output, err := i.next.Issue(ctx, licenseID)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "issuance", "license_issue", status)
	i.metrics.RecordDuration(ctx, "issuance", "license_issue", time.Since(start), status)

	return output, err
}

// Sign records metrics for direct license signing.
func (i *issuanceUseCaseWithMetrics) Sign(
	ctx context.Context,
	licenseID uuid.UUID,
) (*licenseDomain.SignedArtifact, error) {
	start := time.Now()
	artifact, err := i.next.Sign(ctx, licenseID)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "issuance", "license_sign", status)
	i.metrics.RecordDuration(ctx, "issuance", "license_sign", time.Since(start), status)

	return artifact, err
}

// Download records metrics for license download operations.
func (i *issuanceUseCaseWithMetrics) Download(
	ctx context.Context,
	token string,
) (*licenseDomain.SignedArtifact, error) {
	start := time.Now()
	artifact, err := i.next.Download(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "issuance", "license_download", status)
	i.metrics.RecordDuration(ctx, "issuance", "license_download", time.Since(start), status)

	return artifact, err
}

// signingUseCaseWithMetrics decorates SigningUseCase with metrics instrumentation.
type signingUseCaseWithMetrics struct {
	next    SigningUseCase
	metrics metrics.BusinessMetrics
}

// NewSigningUseCaseWithMetrics wraps a SigningUseCase with metrics recording.
func NewSigningUseCaseWithMetrics(useCase SigningUseCase, m metrics.BusinessMetrics) SigningUseCase {
	return &signingUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Sign records metrics for direct license signing.
func (s *signingUseCaseWithMetrics) Sign(
	ctx context.Context,
	licenseID uuid.UUID,
) (*licenseDomain.SignedArtifact, error) {
	start := time.Now()
	artifact, err := s.next.Sign(ctx, licenseID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "issuance", "license_sign", status)
	s.metrics.RecordDuration(ctx, "issuance", "license_sign", time.Since(start), status)

	return artifact, err
}
