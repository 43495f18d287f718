package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	"github.com/allisson/license-manager/internal/database"
	issuanceDomain "github.com/allisson/license-manager/internal/issuance/domain"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

// issuanceUseCase implements IssuanceUseCase.
//
// Records are read inside one transaction so a license, its customer and its product
// are observed consistently. Signing happens after the transaction commits; the
// private key is never held while a database connection is.
type issuanceUseCase struct {
	txManager    database.TxManager
	licenseRepo  LicenseRepository
	customerRepo CustomerRepository
	productRepo  ProductRepository
	builder      DocumentBuilder
	signer       LicenseSigner
	store        TokenStore
	secret       *cryptoDomain.DeploymentSecret
	logger       *slog.Logger
}

type issuanceRecords struct {
	license  *licenseDomain.License
	customer *licenseDomain.Customer
	product  *licenseDomain.Product
}

// Sign builds and signs the license document without parking it.
func (u *issuanceUseCase) Sign(ctx context.Context, licenseID uuid.UUID) (*licenseDomain.SignedArtifact, error) {
	records, err := u.loadRecords(ctx, licenseID)
	if err != nil {
		return nil, err
	}

	doc, err := u.builder.Build(records.license, records.customer, records.product)
	if err != nil {
		return nil, err
	}

	artifact, err := u.signer.Sign(doc, &records.product.KeyPair, u.secret)
	if err != nil {
		u.logger.ErrorContext(ctx, "license signing failed",
			slog.String("license_id", licenseID.String()),
			slog.String("product_id", records.product.ID.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return artifact, nil
}

// Issue signs the license and parks the artifact under a token.
func (u *issuanceUseCase) Issue(ctx context.Context, licenseID uuid.UUID) (*issuanceDomain.IssueOutput, error) {
	artifact, err := u.Sign(ctx, licenseID)
	if err != nil {
		return nil, err
	}

	output, err := u.store.Put(ctx, artifact)
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "license issued",
		slog.String("license_id", licenseID.String()),
		slog.String("key_id", artifact.KeyID),
		slog.Time("expires_at", output.ExpiresAt),
	)

	return output, nil
}

func (u *issuanceUseCase) loadRecords(ctx context.Context, licenseID uuid.UUID) (*issuanceRecords, error) {
	records := &issuanceRecords{}

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		license, err := u.licenseRepo.Get(ctx, licenseID)
		if err != nil {
			return err
		}

		customer, err := u.customerRepo.Get(ctx, license.CustomerID)
		if err != nil {
			return err
		}

		product, err := u.productRepo.Get(ctx, license.ProductID)
		if err != nil {
			return err
		}

		records.license = license
		records.customer = customer
		records.product = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Download returns the artifact parked under token.
func (u *issuanceUseCase) Download(ctx context.Context, token string) (*licenseDomain.SignedArtifact, error) {
	return u.store.Get(ctx, token)
}

// NewSigningUseCase creates a SigningUseCase. It needs no token store, so offline
// signing works without the issuance backend.
func NewSigningUseCase(
	txManager database.TxManager,
	licenseRepo LicenseRepository,
	customerRepo CustomerRepository,
	productRepo ProductRepository,
	builder DocumentBuilder,
	signer LicenseSigner,
	secret *cryptoDomain.DeploymentSecret,
	logger *slog.Logger,
) SigningUseCase {
	return &issuanceUseCase{
		txManager:    txManager,
		licenseRepo:  licenseRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		builder:      builder,
		signer:       signer,
		secret:       secret,
		logger:       logger,
	}
}

// NewIssuanceUseCase creates a new IssuanceUseCase.
func NewIssuanceUseCase(
	txManager database.TxManager,
	licenseRepo LicenseRepository,
	customerRepo CustomerRepository,
	productRepo ProductRepository,
	builder DocumentBuilder,
	signer LicenseSigner,
	store TokenStore,
	secret *cryptoDomain.DeploymentSecret,
	logger *slog.Logger,
) IssuanceUseCase {
	return &issuanceUseCase{
		txManager:    txManager,
		licenseRepo:  licenseRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		builder:      builder,
		signer:       signer,
		store:        store,
		secret:       secret,
		logger:       logger,
	}
}
