package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	cryptoService "github.com/allisson/license-manager/internal/crypto/service"
	apperrors "github.com/allisson/license-manager/internal/errors"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
	customValidation "github.com/allisson/license-manager/internal/validation"
)

type productUseCase struct {
	productRepo      ProductRepository
	vault            cryptoService.KeyPairVault
	secret           *cryptoDomain.DeploymentSecret
	defaultAlgorithm cryptoDomain.KeyAlgorithm
	logger           *slog.Logger
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(
	productRepo ProductRepository,
	vault cryptoService.KeyPairVault,
	secret *cryptoDomain.DeploymentSecret,
	defaultAlgorithm cryptoDomain.KeyAlgorithm,
	logger *slog.Logger,
) ProductUseCase {
	return &productUseCase{
		productRepo:      productRepo,
		vault:            vault,
		secret:           secret,
		defaultAlgorithm: defaultAlgorithm,
		logger:           logger,
	}
}

func (p *productUseCase) validate(input *CreateProductInput) error {
	return validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			customValidation.XMLText,
			validation.Length(1, 255),
		),
		validation.Field(&input.Description, customValidation.XMLText, validation.Length(0, 1024)),
	)
}

// Create generates the product key pair and persists the product.
func (p *productUseCase) Create(
	ctx context.Context,
	input *CreateProductInput,
) (*licenseDomain.Product, error) {
	if input == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "product input is required")
	}
	if err := p.validate(input); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	alg := input.Algorithm
	if alg == "" {
		alg = p.defaultAlgorithm
	}

	keyPair, err := p.vault.Generate(p.secret, alg)
	if err != nil {
		return nil, err
	}

	product := &licenseDomain.Product{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        input.Name,
		Description: input.Description,
		KeyPair:     *keyPair,
		CreatedAt:   time.Now().UTC(),
	}

	if err := p.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID.String()),
		slog.String("key_algorithm", string(keyPair.Algorithm)),
	)

	return product, nil
}

// GetPublicKey returns the product public key in PEM form.
func (p *productUseCase) GetPublicKey(ctx context.Context, productID uuid.UUID) (string, error) {
	product, err := p.productRepo.Get(ctx, productID)
	if err != nil {
		return "", err
	}
	return product.KeyPair.PublicKey, nil
}
