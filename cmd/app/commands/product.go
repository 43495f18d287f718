package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	productUseCase "github.com/allisson/license-manager/internal/product/usecase"
)

// RunCreateProduct creates a product and its signing key pair. An empty algorithm
// uses KEY_ALGORITHM. The private key is stored encrypted and never printed.
//
// Requirements: Database must be migrated and LICENSE_SIGNING_SECRET must be set.
func RunCreateProduct(
	ctx context.Context,
	useCase productUseCase.ProductUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name, description, algorithm, format string,
) error {
	if err := validateOutputFormat(format); err != nil {
		return err
	}

	input := &productUseCase.CreateProductInput{Name: name, Description: description}
	if algorithm != "" {
		alg, err := cryptoDomain.ParseKeyAlgorithm(algorithm)
		if err != nil {
			return err
		}
		input.Algorithm = alg
	}

	product, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created",
		slog.String("product_id", product.ID.String()),
		slog.String("key_algorithm", string(product.KeyPair.Algorithm)),
	)

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"id":         product.ID.String(),
			"name":       product.Name,
			"algorithm":  string(product.KeyPair.Algorithm),
			"public_key": product.KeyPair.PublicKey,
		})
	}

	_, _ = fmt.Fprintln(writer, "Product created successfully!")
	_, _ = fmt.Fprintf(writer, "Product ID: %s\n", product.ID.String())
	_, _ = fmt.Fprintf(writer, "Algorithm: %s\n", product.KeyPair.Algorithm)
	_, _ = fmt.Fprintf(writer, "\n%s", product.KeyPair.PublicKey)
	return nil
}

// RunExportPublicKey writes the product public key PEM to outPath ("-" for writer).
func RunExportPublicKey(
	ctx context.Context,
	useCase productUseCase.ProductUseCase,
	writer io.Writer,
	productID, outPath string,
) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	publicKey, err := useCase.GetPublicKey(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get public key: %w", err)
	}

	return writeOutput(writer, outPath, []byte(publicKey), 0o644)
}
