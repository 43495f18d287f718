package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	cryptoService "github.com/allisson/license-manager/internal/crypto/service"
	apperrors "github.com/allisson/license-manager/internal/errors"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

func newSecret(t *testing.T, fill byte) *cryptoDomain.DeploymentSecret {
	t.Helper()
	secret, err := cryptoDomain.NewDeploymentSecret(bytes.Repeat([]byte{fill}, cryptoDomain.DeploymentSecretSize))
	require.NoError(t, err)
	return secret
}

func newVault() *cryptoService.KeyPairVaultService {
	return cryptoService.NewKeyPairVault(cryptoService.NewAEADManager(), cryptoDomain.AESGCM)
}

func buildAcmeDocument(t *testing.T) *licenseDomain.Document {
	t.Helper()
	license, customer, product := acmeRecords()
	doc, err := NewDocumentBuilder().Build(license, customer, product)
	require.NoError(t, err)
	return doc
}

func TestSigner_SignAndVerify(t *testing.T) {
	secret := newSecret(t, 0x11)
	vault := newVault()
	signer := NewSigner(vault)

	for _, alg := range []cryptoDomain.KeyAlgorithm{cryptoDomain.RSA2048, cryptoDomain.ECDSAP256, cryptoDomain.Ed25519} {
		t.Run(string(alg), func(t *testing.T) {
			keyPair, err := vault.Generate(secret, alg)
			require.NoError(t, err)

			doc := buildAcmeDocument(t)
			artifact, err := signer.Sign(doc, keyPair, secret)
			require.NoError(t, err)

			wantAlg, err := alg.SignatureAlgorithm()
			require.NoError(t, err)
			assert.Equal(t, wantAlg, artifact.Algorithm)
			assert.Equal(t, licenseDomain.FormatVersion, artifact.FormatVersion)
			assert.Len(t, artifact.KeyID, 32)
			assert.Equal(t, CanonicalBytes(doc), CanonicalBytes(artifact.Document))

			assert.NoError(t, Verify(artifact, keyPair.PublicKey))
		})
	}
}

func TestVerify_Rejects(t *testing.T) {
	secret := newSecret(t, 0x12)
	vault := newVault()
	signer := NewSigner(vault)

	keyPair, err := vault.Generate(secret, cryptoDomain.Ed25519)
	require.NoError(t, err)
	otherPair, err := vault.Generate(secret, cryptoDomain.Ed25519)
	require.NoError(t, err)

	sign := func(t *testing.T) *licenseDomain.SignedArtifact {
		t.Helper()
		artifact, err := signer.Sign(buildAcmeDocument(t), keyPair, secret)
		require.NoError(t, err)
		return artifact
	}

	t.Run("altered quantity", func(t *testing.T) {
		artifact := sign(t)
		artifact.Document.Quantity = 500
		assert.ErrorIs(t, Verify(artifact, keyPair.PublicKey), licenseDomain.ErrSignatureInvalid)
	})

	t.Run("altered feature", func(t *testing.T) {
		artifact := sign(t)
		artifact.Document.ProductFeatures["Maximum Transactions"] = "unlimited"
		assert.ErrorIs(t, Verify(artifact, keyPair.PublicKey), licenseDomain.ErrSignatureInvalid)
	})

	t.Run("other product key", func(t *testing.T) {
		artifact := sign(t)
		assert.ErrorIs(t, Verify(artifact, otherPair.PublicKey), licenseDomain.ErrSignatureInvalid)
	})

	t.Run("truncated signature", func(t *testing.T) {
		artifact := sign(t)
		artifact.Signature = artifact.Signature[:10]
		assert.ErrorIs(t, Verify(artifact, keyPair.PublicKey), licenseDomain.ErrSignatureInvalid)
	})

	t.Run("unknown format version", func(t *testing.T) {
		artifact := sign(t)
		artifact.FormatVersion = "2"
		assert.ErrorIs(t, Verify(artifact, keyPair.PublicKey), licenseDomain.ErrSignatureInvalid)
	})

	t.Run("malformed public key", func(t *testing.T) {
		assert.ErrorIs(t, Verify(sign(t), "garbage"), licenseDomain.ErrSignatureInvalid)
	})

	t.Run("nil artifact", func(t *testing.T) {
		assert.ErrorIs(t, Verify(nil, keyPair.PublicKey), licenseDomain.ErrSignatureInvalid)
	})
}

func TestSigner_Sign_Errors(t *testing.T) {
	vault := newVault()
	signer := NewSigner(vault)
	secret := newSecret(t, 0x13)

	keyPair, err := vault.Generate(secret, cryptoDomain.Ed25519)
	require.NoError(t, err)

	t.Run("different deployment secret", func(t *testing.T) {
		artifact, err := signer.Sign(buildAcmeDocument(t), keyPair, newSecret(t, 0x14))
		assert.Nil(t, artifact)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyCustody)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("corrupted key pair", func(t *testing.T) {
		broken := *keyPair
		broken.EncryptedPrivateKey = "v1:aes-gcm:AAAA:AAAA:AAAA"

		_, err := signer.Sign(buildAcmeDocument(t), &broken, secret)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyCustody)
	})

	t.Run("missing secret is a configuration error", func(t *testing.T) {
		_, err := signer.Sign(buildAcmeDocument(t), keyPair, nil)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		assert.NotErrorIs(t, err, cryptoDomain.ErrKeyCustody)
	})

	t.Run("nil document", func(t *testing.T) {
		_, err := signer.Sign(nil, keyPair, secret)
		assert.ErrorIs(t, err, licenseDomain.ErrSigningFailed)
	})
}

func TestSigner_ConcurrentSigning(t *testing.T) {
	vault := newVault()
	signer := NewSigner(vault)
	secret := newSecret(t, 0x15)

	keyPair, err := vault.Generate(secret, cryptoDomain.ECDSAP256)
	require.NoError(t, err)
	doc := buildAcmeDocument(t)

	errs := make(chan error, 8)
	for range 8 {
		go func() {
			artifact, err := signer.Sign(doc, keyPair, secret)
			if err != nil {
				errs <- err
				return
			}
			errs <- Verify(artifact, keyPair.PublicKey)
		}()
	}
	for range 8 {
		assert.NoError(t, <-errs)
	}
}
