package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	issuanceUseCase "github.com/allisson/license-manager/internal/issuance/usecase"
	licenseService "github.com/allisson/license-manager/internal/license/service"
)

// RunIssueLicense signs a license and writes the artifact to outPath ("-" for writer).
// No download token is created.
func RunIssueLicense(
	ctx context.Context,
	useCase issuanceUseCase.SigningUseCase,
	logger *slog.Logger,
	writer io.Writer,
	licenseID, format, outPath string,
) error {
	id, err := uuid.Parse(licenseID)
	if err != nil {
		return fmt.Errorf("invalid license id: %w", err)
	}

	artifactFormat, err := licenseService.ParseFormat(format)
	if err != nil {
		return err
	}

	artifact, err := useCase.Sign(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to sign license: %w", err)
	}

	data, err := licenseService.Encode(artifact, artifactFormat)
	if err != nil {
		return err
	}

	if err := writeOutput(writer, outPath, data, 0o644); err != nil {
		return err
	}

	logger.Info("license signed",
		slog.String("license_id", id.String()),
		slog.String("key_id", artifact.KeyID),
		slog.String("output", outPath),
	)
	return nil
}

// RunVerifyLicense checks a license file against a product public key PEM file.
// An invalid signature is returned as an error so the command exits non-zero.
func RunVerifyLicense(writer io.Writer, licensePath, publicKeyPath, format string) error {
	if err := validateOutputFormat(format); err != nil {
		return err
	}

	data, err := os.ReadFile(licensePath)
	if err != nil {
		return fmt.Errorf("failed to read license: %w", err)
	}

	publicKey, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read public key: %w", err)
	}

	artifact, err := licenseService.Decode(data)
	if err != nil {
		return err
	}

	if err := licenseService.Verify(artifact, string(publicKey)); err != nil {
		return err
	}

	doc := artifact.Document
	if format == "json" {
		return writeJSON(writer, map[string]any{
			"valid":      true,
			"license_id": doc.LicenseID.String(),
			"product":    doc.ProductName,
			"customer":   doc.Customer.Name,
			"quantity":   doc.Quantity,
			"expiration": doc.Expiration.UTC().Format(time.RFC3339),
			"key_id":     artifact.KeyID,
		})
	}

	_, _ = fmt.Fprintln(writer, "License signature is valid.")
	_, _ = fmt.Fprintf(writer, "License ID: %s\n", doc.LicenseID.String())
	_, _ = fmt.Fprintf(writer, "Product: %s\n", doc.ProductName)
	_, _ = fmt.Fprintf(writer, "Customer: %s\n", doc.Customer.Name)
	_, _ = fmt.Fprintf(writer, "Quantity: %d\n", doc.Quantity)
	_, _ = fmt.Fprintf(writer, "Expiration: %s\n", doc.Expiration.UTC().Format(time.RFC3339))
	return nil
}
