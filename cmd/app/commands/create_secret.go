package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
)

// SecretWrapper encrypts a raw deployment secret with a KMS key.
type SecretWrapper interface {
	WrapSecret(ctx context.Context, keyURI string, secret []byte) (string, error)
}

// RunCreateSecret generates a fresh 32-byte license signing secret and prints it as
// environment variables. With a KMS provider the printed value is the base64 KMS
// ciphertext, which is what LICENSE_SIGNING_SECRET holds in KMS mode.
//
// Losing the secret makes every stored product private key unrecoverable.
func RunCreateSecret(
	ctx context.Context,
	wrapper SecretWrapper,
	writer io.Writer,
	kmsProvider, kmsKeyURI string,
) error {
	if kmsProvider != "" && kmsKeyURI == "" {
		return fmt.Errorf("--kms-key-uri is required when --kms-provider is set")
	}

	secret := make([]byte, cryptoDomain.DeploymentSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}
	defer cryptoDomain.Zero(secret)

	if kmsProvider == "" {
		_, _ = fmt.Fprintln(writer, "# License signing secret (plaintext mode)")
		_, _ = fmt.Fprintln(writer, "# Store it in a secrets manager; it is never written anywhere else.")
		_, _ = fmt.Fprintf(writer, "LICENSE_SIGNING_SECRET=\"%s\"\n", base64.StdEncoding.EncodeToString(secret))
		return nil
	}

	wrapped, err := wrapper.WrapSecret(ctx, kmsKeyURI, secret)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(writer, "# License signing secret (KMS mode)")
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "LICENSE_SIGNING_SECRET=\"%s\"\n", wrapped)
	return nil
}
