package domain

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// FormatVersion is the version of the canonical document encoding and artifact layout.
const FormatVersion = "1"

// LicenseeInfo identifies the customer inside a document.
type LicenseeInfo struct {
	Name    string
	Email   string
	Company string
}

// Document is the license content covered by the signature.
//
// Documents are built once and treated as read-only; the builder copies every map so
// later changes to the source records do not leak into a document.
type Document struct {
	LicenseID            uuid.UUID
	Type                 LicenseType
	Quantity             int
	Expiration           time.Time
	Customer             LicenseeInfo
	ProductID            uuid.UUID
	ProductName          string
	ProductFeatures      map[string]string
	AdditionalAttributes map[string]string
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	clone := *d
	clone.ProductFeatures = maps.Clone(d.ProductFeatures)
	clone.AdditionalAttributes = maps.Clone(d.AdditionalAttributes)
	return &clone
}

// SignedArtifact is a document plus the signature over its canonical encoding.
type SignedArtifact struct {
	Document      *Document
	FormatVersion string
	// Algorithm names the signature scheme, e.g. "RSASSA-PSS-SHA256".
	Algorithm string
	// KeyID identifies the product public key that verifies Signature.
	KeyID     string
	Signature []byte
}
