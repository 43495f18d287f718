package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
	"github.com/allisson/license-manager/internal/metrics"
)

// productUseCaseWithMetrics decorates ProductUseCase with metrics instrumentation.
type productUseCaseWithMetrics struct {
	next    ProductUseCase
	metrics metrics.BusinessMetrics
}

// NewProductUseCaseWithMetrics wraps a ProductUseCase with metrics recording.
func NewProductUseCaseWithMetrics(useCase ProductUseCase, m metrics.BusinessMetrics) ProductUseCase {
	return &productUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *productUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "product", operation, status)
	p.metrics.RecordDuration(ctx, "product", operation, time.Since(start), status)
}

// Create records metrics for product creation, which includes key generation.
func (p *productUseCaseWithMetrics) Create(
	ctx context.Context,
	input *CreateProductInput,
) (*licenseDomain.Product, error) {
	start := time.Now()
	product, err := p.next.Create(ctx, input)
	p.record(ctx, "product_create", start, err)
	return product, err
}

// GetPublicKey records metrics for public key exports.
func (p *productUseCaseWithMetrics) GetPublicKey(ctx context.Context, productID uuid.UUID) (string, error) {
	start := time.Now()
	publicKey, err := p.next.GetPublicKey(ctx, productID)
	p.record(ctx, "product_public_key", start, err)
	return publicKey, err
}
