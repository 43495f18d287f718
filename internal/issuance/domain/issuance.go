// Package domain defines the issuance handoff: an issued license is parked under an
// opaque random token for a short window, and the token is exchanged for the signed
// artifact on download.
package domain

import (
	"time"

	"github.com/allisson/license-manager/internal/errors"
)

// DefaultTokenTTL is how long an issued license stays downloadable.
const DefaultTokenTTL = 5 * time.Minute

// TokenPolicy controls whether a token survives a successful download.
type TokenPolicy string

const (
	// TokenPolicyMultiUse keeps the artifact downloadable until the token expires.
	TokenPolicyMultiUse TokenPolicy = "multi-use"
	// TokenPolicySingleUse removes the artifact on the first successful download.
	TokenPolicySingleUse TokenPolicy = "single-use"
)

// IssueOutput is returned to the caller of an issuance.
type IssueOutput struct {
	// Token is the opaque download token. It reveals nothing about the license.
	Token     string
	ExpiresAt time.Time
}

var (
	// ErrIssuanceTokenNotFound covers malformed, unknown, expired and already used
	// tokens alike, so callers cannot tell which case applied.
	ErrIssuanceTokenNotFound = errors.Wrap(errors.ErrNotFound, "issuance token not found")

	// ErrTokenCollision indicates a fresh token could not be reserved after retries.
	ErrTokenCollision = errors.New("could not reserve a unique issuance token")
)
