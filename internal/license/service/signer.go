package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	cryptoService "github.com/allisson/license-manager/internal/crypto/service"
	"github.com/allisson/license-manager/internal/errors"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

// Signer produces signed license artifacts with a product's key pair.
//
// The private key is decrypted for each call and destroyed before Sign returns.
// Sign never retries and never returns a partial artifact.
type Signer struct {
	vault cryptoService.KeyPairVault
}

// NewSigner creates a Signer that recovers private keys through vault.
func NewSigner(vault cryptoService.KeyPairVault) *Signer {
	return &Signer{vault: vault}
}

// Sign signs the canonical encoding of doc.
//
// Errors:
//   - the deployment secret is missing or malformed: errors.ErrConfiguration
//   - the private key cannot be recovered: ErrKeyCustody joined with ErrDecryptionFailed
//   - the signature operation fails: licenseDomain.ErrSigningFailed
func (s *Signer) Sign(
	doc *licenseDomain.Document,
	keyPair *cryptoDomain.KeyPair,
	secret *cryptoDomain.DeploymentSecret,
) (*licenseDomain.SignedArtifact, error) {
	if doc == nil || keyPair == nil {
		return nil, errors.Wrap(licenseDomain.ErrSigningFailed, "document and key pair are required")
	}

	handle, err := s.vault.Decrypt(keyPair.EncryptedPrivateKey, secret)
	if err != nil {
		if errors.Is(err, errors.ErrConfiguration) {
			return nil, err
		}
		return nil, errors.Join(cryptoDomain.ErrKeyCustody, err)
	}
	defer handle.Destroy()

	algorithm, err := handle.Algorithm().SignatureAlgorithm()
	if err != nil {
		return nil, errors.Join(licenseDomain.ErrSigningFailed, err)
	}

	keyID, err := cryptoService.KeyID(handle.Public())
	if err != nil {
		return nil, errors.Join(licenseDomain.ErrSigningFailed, err)
	}

	signature, err := handle.Sign(CanonicalBytes(doc))
	if err != nil {
		return nil, errors.Join(licenseDomain.ErrSigningFailed, err)
	}

	return &licenseDomain.SignedArtifact{
		Document:      doc.Clone(),
		FormatVersion: licenseDomain.FormatVersion,
		Algorithm:     algorithm,
		KeyID:         keyID,
		Signature:     signature,
	}, nil
}

// Verify checks artifact against a product public key in PEM form.
// Returns licenseDomain.ErrSignatureInvalid on any mismatch, including a key id
// that does not belong to the given public key.
func Verify(artifact *licenseDomain.SignedArtifact, publicKeyPEM string) error {
	if artifact == nil || artifact.Document == nil {
		return licenseDomain.ErrSignatureInvalid
	}
	if artifact.FormatVersion != licenseDomain.FormatVersion {
		return fmt.Errorf("%w: unsupported format version %q", licenseDomain.ErrSignatureInvalid, artifact.FormatVersion)
	}

	pub, err := cryptoService.ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return errors.Join(licenseDomain.ErrSignatureInvalid, err)
	}

	keyID, err := cryptoService.KeyID(pub)
	if err != nil || keyID != artifact.KeyID {
		return fmt.Errorf("%w: key id mismatch", licenseDomain.ErrSignatureInvalid)
	}

	if !cryptoService.VerifySignature(pub, artifact.Algorithm, CanonicalBytes(artifact.Document), artifact.Signature) {
		return licenseDomain.ErrSignatureInvalid
	}
	return nil
}
