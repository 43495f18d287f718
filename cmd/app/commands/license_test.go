package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	issuanceMocks "github.com/allisson/license-manager/internal/issuance/usecase/mocks"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
	licenseService "github.com/allisson/license-manager/internal/license/service"
)

func TestRunIssueLicense(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	artifact, publicKey := signedFixture(t)
	licenseID := artifact.Document.LicenseID

	t.Run("writes xml file", func(t *testing.T) {
		mockUseCase := &issuanceMocks.MockIssuanceUseCase{}
		mockUseCase.On("Sign", ctx, licenseID).Return(artifact, nil).Once()

		path := filepath.Join(t.TempDir(), "License.lic")
		err := RunIssueLicense(ctx, mockUseCase, logger, &bytes.Buffer{}, licenseID.String(), "xml", path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<License formatVersion=")

		decoded, err := licenseService.Decode(data)
		require.NoError(t, err)
		assert.NoError(t, licenseService.Verify(decoded, publicKey))

		mockUseCase.AssertExpectations(t)
		mockUseCase.AssertNotCalled(t, "Issue", ctx, licenseID)
	})

	t.Run("writes json to stdout", func(t *testing.T) {
		mockUseCase := &issuanceMocks.MockIssuanceUseCase{}
		mockUseCase.On("Sign", ctx, licenseID).Return(artifact, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunIssueLicense(ctx, mockUseCase, logger, &out, licenseID.String(), "json", "-"))
		assert.True(t, json.Valid(out.Bytes()))
	})

	t.Run("invalid license id", func(t *testing.T) {
		err := RunIssueLicense(ctx, &issuanceMocks.MockIssuanceUseCase{}, logger, &bytes.Buffer{}, "x", "xml", "-")
		assert.ErrorContains(t, err, "invalid license id")
	})

	t.Run("invalid format", func(t *testing.T) {
		err := RunIssueLicense(
			ctx,
			&issuanceMocks.MockIssuanceUseCase{},
			logger,
			&bytes.Buffer{},
			licenseID.String(),
			"yaml",
			"-",
		)
		assert.ErrorIs(t, err, licenseDomain.ErrInvalidArtifact)
	})

	t.Run("license not found", func(t *testing.T) {
		missing := uuid.Must(uuid.NewV7())
		mockUseCase := &issuanceMocks.MockIssuanceUseCase{}
		mockUseCase.On("Sign", ctx, missing).Return(nil, licenseDomain.ErrLicenseNotFound).Once()

		var out bytes.Buffer
		err := RunIssueLicense(ctx, mockUseCase, logger, &out, missing.String(), "xml", "-")
		assert.ErrorIs(t, err, licenseDomain.ErrLicenseNotFound)
		assert.Empty(t, out.String())
	})
}

func TestRunVerifyLicense(t *testing.T) {
	artifact, publicKey := signedFixture(t)
	dir := t.TempDir()

	writeFile := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}

	xmlData, err := licenseService.Encode(artifact, licenseService.FormatXML)
	require.NoError(t, err)
	licensePath := writeFile("License.lic", xmlData)
	keyPath := writeFile("product.pem", []byte(publicKey))

	t.Run("valid text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunVerifyLicense(&out, licensePath, keyPath, "text"))
		assert.Contains(t, out.String(), "valid")
		assert.Contains(t, out.String(), artifact.Document.LicenseID.String())
		assert.Contains(t, out.String(), "2030-01-01T00:00:00Z")
	})

	t.Run("valid json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunVerifyLicense(&out, licensePath, keyPath, "json"))

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, true, result["valid"])
		assert.Equal(t, float64(5), result["quantity"])
	})

	t.Run("tampered quantity", func(t *testing.T) {
		tampered := *artifact
		tampered.Document = artifact.Document.Clone()
		tampered.Document.Quantity = 500
		data, err := licenseService.Encode(&tampered, licenseService.FormatXML)
		require.NoError(t, err)

		err = RunVerifyLicense(&bytes.Buffer{}, writeFile("tampered.lic", data), keyPath, "text")
		assert.ErrorIs(t, err, licenseDomain.ErrSignatureInvalid)
	})

	t.Run("other product key", func(t *testing.T) {
		_, otherKey := signedFixture(t)
		err := RunVerifyLicense(&bytes.Buffer{}, licensePath, writeFile("other.pem", []byte(otherKey)), "text")
		assert.ErrorIs(t, err, licenseDomain.ErrSignatureInvalid)
	})

	t.Run("missing file", func(t *testing.T) {
		err := RunVerifyLicense(&bytes.Buffer{}, filepath.Join(dir, "missing.lic"), keyPath, "text")
		assert.ErrorContains(t, err, "failed to read license")
	})
}
