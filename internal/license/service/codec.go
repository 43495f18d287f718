package service

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"

	licenseDomain "github.com/allisson/license-manager/internal/license/domain"
)

// Format is a serialization of a signed artifact.
type Format string

const (
	// FormatXML is the license file format handed to customers.
	FormatXML Format = "xml"
	// FormatJSON is used by API clients and as the issuance store payload.
	FormatJSON Format = "json"
)

// ParseFormat converts a query or flag value into a Format. Empty means XML.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatXML:
		return FormatXML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", licenseDomain.ErrInvalidArtifact, s)
	}
}

// ContentType returns the media type for the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "application/xml"
}

type xmlNamedValue struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlLicense struct {
	XMLName       xml.Name        `xml:"License"`
	FormatVersion string          `xml:"formatVersion,attr"`
	Algorithm     string          `xml:"algorithm,attr"`
	KeyID         string          `xml:"keyId,attr"`
	ID            string          `xml:"Id"`
	Type          string          `xml:"Type"`
	Quantity      int             `xml:"Quantity"`
	Expiration    string          `xml:"Expiration"`
	CustomerName  string          `xml:"Customer>Name"`
	CustomerEmail string          `xml:"Customer>Email"`
	CustomerCo    string          `xml:"Customer>Company"`
	ProductID     string          `xml:"Product>Id"`
	ProductName   string          `xml:"Product>Name"`
	Features      []xmlNamedValue `xml:"ProductFeatures>Feature"`
	Attributes    []xmlNamedValue `xml:"LicenseAttributes>Attribute"`
	Signature     string          `xml:"Signature"`
}

type jsonCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

type jsonLicense struct {
	FormatVersion        string            `json:"format_version"`
	Algorithm            string            `json:"algorithm"`
	KeyID                string            `json:"key_id"`
	ID                   uuid.UUID         `json:"id"`
	Type                 string            `json:"type"`
	Quantity             int               `json:"quantity"`
	Expiration           string            `json:"expiration"`
	Customer             jsonCustomer      `json:"customer"`
	ProductID            uuid.UUID         `json:"product_id"`
	ProductName          string            `json:"product_name"`
	ProductFeatures      map[string]string `json:"product_features"`
	AdditionalAttributes map[string]string `json:"additional_attributes"`
	Signature            []byte            `json:"signature"`
}

// Encode serializes artifact in the given format. Output is deterministic.
func Encode(artifact *licenseDomain.SignedArtifact, format Format) ([]byte, error) {
	if artifact == nil || artifact.Document == nil {
		return nil, licenseDomain.ErrInvalidArtifact
	}

	switch format {
	case FormatXML:
		return encodeXML(artifact)
	case FormatJSON:
		return encodeJSON(artifact)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", licenseDomain.ErrInvalidArtifact, format)
	}
}

// Decode parses an artifact produced by Encode, detecting the format from the
// first non-space byte.
func Decode(data []byte) (*licenseDomain.SignedArtifact, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, licenseDomain.ErrInvalidArtifact
	}

	switch trimmed[0] {
	case '<':
		return decodeXML(trimmed)
	case '{':
		return decodeJSON(trimmed)
	default:
		return nil, fmt.Errorf("%w: unrecognized encoding", licenseDomain.ErrInvalidArtifact)
	}
}

func encodeXML(artifact *licenseDomain.SignedArtifact) ([]byte, error) {
	doc := artifact.Document
	out := xmlLicense{
		FormatVersion: artifact.FormatVersion,
		Algorithm:     artifact.Algorithm,
		KeyID:         artifact.KeyID,
		ID:            doc.LicenseID.String(),
		Type:          string(doc.Type),
		Quantity:      doc.Quantity,
		Expiration:    doc.Expiration.UTC().Format(time.RFC3339Nano),
		CustomerName:  doc.Customer.Name,
		CustomerEmail: doc.Customer.Email,
		CustomerCo:    doc.Customer.Company,
		ProductID:     doc.ProductID.String(),
		ProductName:   doc.ProductName,
		Features:      namedValues(doc.ProductFeatures),
		Attributes:    namedValues(doc.AdditionalAttributes),
		Signature:     base64.StdEncoding.EncodeToString(artifact.Signature),
	}

	body, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode license: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func decodeXML(data []byte) (*licenseDomain.SignedArtifact, error) {
	var in xmlLicense
	if err := xml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", licenseDomain.ErrInvalidArtifact, err)
	}

	licenseID, err := uuid.Parse(in.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid license id", licenseDomain.ErrInvalidArtifact)
	}
	productID, err := uuid.Parse(in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", licenseDomain.ErrInvalidArtifact)
	}
	expiration, err := time.Parse(time.RFC3339Nano, in.Expiration)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expiration", licenseDomain.ErrInvalidArtifact)
	}
	signature, err := base64.StdEncoding.DecodeString(in.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid signature encoding", licenseDomain.ErrInvalidArtifact)
	}
	features, err := fromNamedValues(in.Features)
	if err != nil {
		return nil, err
	}
	attributes, err := fromNamedValues(in.Attributes)
	if err != nil {
		return nil, err
	}

	return &licenseDomain.SignedArtifact{
		Document: &licenseDomain.Document{
			LicenseID:  licenseID,
			Type:       licenseDomain.LicenseType(in.Type),
			Quantity:   in.Quantity,
			Expiration: expiration.UTC(),
			Customer: licenseDomain.LicenseeInfo{
				Name:    in.CustomerName,
				Email:   in.CustomerEmail,
				Company: in.CustomerCo,
			},
			ProductID:            productID,
			ProductName:          in.ProductName,
			ProductFeatures:      features,
			AdditionalAttributes: attributes,
		},
		FormatVersion: in.FormatVersion,
		Algorithm:     in.Algorithm,
		KeyID:         in.KeyID,
		Signature:     signature,
	}, nil
}

func encodeJSON(artifact *licenseDomain.SignedArtifact) ([]byte, error) {
	doc := artifact.Document
	body, err := json.Marshal(jsonLicense{
		FormatVersion: artifact.FormatVersion,
		Algorithm:     artifact.Algorithm,
		KeyID:         artifact.KeyID,
		ID:            doc.LicenseID,
		Type:          string(doc.Type),
		Quantity:      doc.Quantity,
		Expiration:    doc.Expiration.UTC().Format(time.RFC3339Nano),
		Customer: jsonCustomer{
			Name:    doc.Customer.Name,
			Email:   doc.Customer.Email,
			Company: doc.Customer.Company,
		},
		ProductID:            doc.ProductID,
		ProductName:          doc.ProductName,
		ProductFeatures:      copyMap(doc.ProductFeatures),
		AdditionalAttributes: copyMap(doc.AdditionalAttributes),
		Signature:            artifact.Signature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode license: %w", err)
	}
	return body, nil
}

func decodeJSON(data []byte) (*licenseDomain.SignedArtifact, error) {
	var in jsonLicense
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", licenseDomain.ErrInvalidArtifact, err)
	}

	expiration, err := time.Parse(time.RFC3339Nano, in.Expiration)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expiration", licenseDomain.ErrInvalidArtifact)
	}

	return &licenseDomain.SignedArtifact{
		Document: &licenseDomain.Document{
			LicenseID:  in.ID,
			Type:       licenseDomain.LicenseType(in.Type),
			Quantity:   in.Quantity,
			Expiration: expiration.UTC(),
			Customer: licenseDomain.LicenseeInfo{
				Name:    in.Customer.Name,
				Email:   in.Customer.Email,
				Company: in.Customer.Company,
			},
			ProductID:            in.ProductID,
			ProductName:          in.ProductName,
			ProductFeatures:      copyMap(in.ProductFeatures),
			AdditionalAttributes: copyMap(in.AdditionalAttributes),
		},
		FormatVersion: in.FormatVersion,
		Algorithm:     in.Algorithm,
		KeyID:         in.KeyID,
		Signature:     in.Signature,
	}, nil
}

func namedValues(m map[string]string) []xmlNamedValue {
	keys := sortedKeys(m)
	out := make([]xmlNamedValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, xmlNamedValue{Name: k, Value: m[k]})
	}
	return out
}

func fromNamedValues(values []xmlNamedValue) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		if _, ok := out[v.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate entry %q", licenseDomain.ErrInvalidArtifact, v.Name)
		}
		out[v.Name] = v.Value
	}
	return out, nil
}
