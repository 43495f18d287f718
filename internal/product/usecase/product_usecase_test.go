package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	cryptoService "github.com/allisson/license-manager/internal/crypto/service"
	apperrors "github.com/allisson/license-manager/internal/errors"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *licenseDomain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Get(ctx context.Context, id uuid.UUID) (*licenseDomain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licenseDomain.Product), args.Error(1)
}

func newProductUseCase(t *testing.T, repo ProductRepository, secret *cryptoDomain.DeploymentSecret) ProductUseCase {
	t.Helper()
	vault := cryptoService.NewKeyPairVault(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProductUseCase(repo, vault, secret, cryptoDomain.Ed25519, logger)
}

func testSecret(t *testing.T) *cryptoDomain.DeploymentSecret {
	t.Helper()
	secret, err := cryptoDomain.NewDeploymentSecret(bytes.Repeat([]byte{0x33}, cryptoDomain.DeploymentSecretSize))
	require.NoError(t, err)
	return secret
}

func TestProductUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DefaultAlgorithm", func(t *testing.T) {
		repo := &mockProductRepository{}
		secret := testSecret(t)
		uc := newProductUseCase(t, repo, secret)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		product, err := uc.Create(ctx, &CreateProductInput{Name: "P", Description: "Flagship"})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, "P", product.Name)
		assert.Equal(t, cryptoDomain.Ed25519, product.KeyPair.Algorithm)
		assert.Contains(t, product.KeyPair.PublicKey, "BEGIN PUBLIC KEY")
		assert.NotContains(t, product.KeyPair.EncryptedPrivateKey, "PRIVATE KEY")

		// The stored key pair must be recoverable with the deployment secret.
		vault := cryptoService.NewKeyPairVault(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
		handle, err := vault.Decrypt(product.KeyPair.EncryptedPrivateKey, secret)
		require.NoError(t, err)
		handle.Destroy()

		repo.AssertExpectations(t)
	})

	t.Run("Success_ExplicitAlgorithm", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := newProductUseCase(t, repo, testSecret(t))

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		product, err := uc.Create(ctx, &CreateProductInput{Name: "P", Algorithm: cryptoDomain.ECDSAP256})
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.ECDSAP256, product.KeyPair.Algorithm)
	})

	t.Run("Error_InvalidName", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := newProductUseCase(t, repo, testSecret(t))

		for _, name := range []string{"", "   ", " padded ", "Widget\x01Server", "bad\xffutf8"} {
			_, err := uc.Create(ctx, &CreateProductInput{Name: name})
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "name %q", name)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_NilInput", func(t *testing.T) {
		uc := newProductUseCase(t, &mockProductRepository{}, testSecret(t))

		_, err := uc.Create(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_UnsupportedAlgorithm", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := newProductUseCase(t, repo, testSecret(t))

		_, err := uc.Create(ctx, &CreateProductInput{Name: "P", Algorithm: "rsa-1024"})
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedKeyAlgorithm)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_MissingSecret", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := newProductUseCase(t, repo, nil)

		_, err := uc.Create(ctx, &CreateProductInput{Name: "P"})
		assert.ErrorIs(t, err, cryptoDomain.ErrSecretNotConfigured)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_RepositoryConflict", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := newProductUseCase(t, repo, testSecret(t))

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).
			Return(licenseDomain.ErrProductAlreadyExists).
			Once()

		_, err := uc.Create(ctx, &CreateProductInput{Name: "P"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestProductUseCase_GetPublicKey(t *testing.T) {
	ctx := context.Background()
	productID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := newProductUseCase(t, repo, testSecret(t))
		product := &licenseDomain.Product{
			ID:      productID,
			KeyPair: cryptoDomain.KeyPair{PublicKey: "-----BEGIN PUBLIC KEY-----\n..."},
		}

		repo.On("Get", ctx, productID).Return(product, nil).Once()

		publicKey, err := uc.GetPublicKey(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, product.KeyPair.PublicKey, publicKey)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &mockProductRepository{}
		uc := newProductUseCase(t, repo, testSecret(t))

		repo.On("Get", ctx, productID).Return(nil, licenseDomain.ErrProductNotFound).Once()

		_, err := uc.GetPublicKey(ctx, productID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestProductUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	repo := &mockProductRepository{}
	metrics := &mockBusinessMetrics{}
	uc := NewProductUseCaseWithMetrics(newProductUseCase(t, repo, testSecret(t)), metrics)
	productID := uuid.Must(uuid.NewV7())

	repo.On("Get", ctx, productID).Return(nil, errors.New("db down")).Once()
	metrics.On("RecordOperation", ctx, "product", "product_public_key", "error").Return().Once()
	metrics.On("RecordDuration", ctx, "product", "product_public_key", mock.AnythingOfType("time.Duration"), "error").
		Return().
		Once()

	_, err := uc.GetPublicKey(ctx, productID)
	assert.Error(t, err)
	metrics.AssertExpectations(t)
}
