package service

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/license-manager/internal/errors"
	"github.com/allisson/license-manager/internal/issuance/cache"
	issuanceDomain "github.com/allisson/license-manager/internal/issuance/domain"
	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
	licenseService "github.com/allisson/license-manager/internal/license/service"
	customValidation "github.com/allisson/license-manager/internal/validation"
)

// maxTokenRetries bounds regeneration after a token collision.
const maxTokenRetries = 3

// TokenStore parks signed artifacts under issuance tokens.
//
// Artifacts are stored JSON encoded, keyed by the token hash. With TokenPolicySingleUse
// the first successful Get removes the entry; otherwise it stays readable until the
// TTL elapses.
type TokenStore struct {
	cache  Cache
	tokens TokenGenerator
	ttl    time.Duration
	policy issuanceDomain.TokenPolicy
	now    func() time.Time
}

// NewTokenStore creates a TokenStore. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenStore(
	c Cache,
	tokens TokenGenerator,
	ttl time.Duration,
	policy issuanceDomain.TokenPolicy,
) *TokenStore {
	if ttl <= 0 {
		ttl = issuanceDomain.DefaultTokenTTL
	}
	return &TokenStore{
		cache:  c,
		tokens: tokens,
		ttl:    ttl,
		policy: policy,
		now:    time.Now,
	}
}

// TTL returns how long stored artifacts remain downloadable.
func (s *TokenStore) TTL() time.Duration {
	return s.ttl
}

// Put stores artifact under a fresh token.
func (s *TokenStore) Put(
	ctx context.Context,
	artifact *licenseDomain.SignedArtifact,
) (*issuanceDomain.IssueOutput, error) {
	payload, err := licenseService.Encode(artifact, licenseService.FormatJSON)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode artifact")
	}

	for attempt := 0; attempt <= maxTokenRetries; attempt++ {
		plainToken, tokenHash, err := s.tokens.GenerateToken()
		if err != nil {
			return nil, err
		}

		expiresAt := s.now().UTC().Add(s.ttl)
		stored, err := s.cache.SetNX(ctx, tokenHash, payload, s.ttl)
		if err != nil {
			return nil, errors.Wrap(err, "failed to store issuance token")
		}
		if stored {
			return &issuanceDomain.IssueOutput{Token: plainToken, ExpiresAt: expiresAt}, nil
		}
	}

	return nil, issuanceDomain.ErrTokenCollision
}

// Get returns the artifact stored under token. Malformed, unknown, expired and
// already consumed tokens all yield ErrIssuanceTokenNotFound.
func (s *TokenStore) Get(ctx context.Context, token string) (*licenseDomain.SignedArtifact, error) {
	if err := validation.Validate(token, validation.Required, customValidation.IssuanceToken); err != nil {
		return nil, issuanceDomain.ErrIssuanceTokenNotFound
	}

	tokenHash := s.tokens.HashToken(token)

	var (
		payload []byte
		err     error
	)
	if s.policy == issuanceDomain.TokenPolicySingleUse {
		payload, err = s.cache.GetDel(ctx, tokenHash)
	} else {
		payload, err = s.cache.Get(ctx, tokenHash)
	}
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, issuanceDomain.ErrIssuanceTokenNotFound
		}
		return nil, errors.Wrap(err, "failed to read issuance token")
	}

	artifact, err := licenseService.Decode(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode stored artifact")
	}
	return artifact, nil
}
