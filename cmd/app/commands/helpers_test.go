package commands

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	cryptoService "github.com/allisson/license-manager/internal/crypto/service"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
	licenseService "github.com/allisson/license-manager/internal/license/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signedFixture returns an artifact signed with a fresh Ed25519 product key and the
// product public key PEM.
func signedFixture(t *testing.T) (*licenseDomain.SignedArtifact, string) {
	t.Helper()

	vault := cryptoService.NewKeyPairVault(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
	secret, err := cryptoDomain.NewDeploymentSecret(bytes.Repeat([]byte{0x11}, cryptoDomain.DeploymentSecretSize))
	require.NoError(t, err)

	keyPair, err := vault.Generate(secret, cryptoDomain.Ed25519)
	require.NoError(t, err)

	customer := &licenseDomain.Customer{ID: uuid.Must(uuid.NewV7()), Name: "Acme", Email: "acme@acme.test"}
	product := &licenseDomain.Product{ID: uuid.Must(uuid.NewV7()), Name: "P", KeyPair: *keyPair}
	license := &licenseDomain.License{
		ID:         uuid.Must(uuid.NewV7()),
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Type:       licenseDomain.LicenseTypeStandard,
		Quantity:   5,
		Expiration: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	doc, err := licenseService.NewDocumentBuilder().Build(license, customer, product)
	require.NoError(t, err)

	artifact, err := licenseService.NewSigner(vault).Sign(doc, &product.KeyPair, secret)
	require.NoError(t, err)

	return artifact, keyPair.PublicKey
}
