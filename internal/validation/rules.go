// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/license-manager/internal/errors"
)

// IssuanceTokenLength is the encoded length of a 32-byte token in unpadded base64url.
const IssuanceTokenLength = 43

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	return WrapValidationErrorAs(apperrors.ErrInvalidInput, err)
}

// WrapValidationErrorAs wraps validation errors under a domain-specific sentinel.
func WrapValidationErrorAs(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(sentinel, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// IssuanceToken validates the shape of an issuance token: 43 characters of
// unpadded base64url decoding to 32 bytes. Empty strings are left to Required.
var IssuanceToken = validation.NewStringRuleWithError(
	func(s string) bool {
		if len(s) != IssuanceTokenLength {
			return false
		}
		decoded, err := base64.RawURLEncoding.DecodeString(s)
		return err == nil && len(decoded) == 32
	},
	validation.NewError("validation_issuance_token", "must be a valid issuance token"),
)

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// isXMLText reports whether s is valid UTF-8 made only of XML characters.
func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

var errXMLText = validation.NewError("validation_xml_text", "must be valid UTF-8 without control characters")

// XMLText validates that a string can be carried by an XML document unchanged.
var XMLText = validation.NewStringRuleWithError(isXMLText, errXMLText)

// XMLTextMap validates every key and value of a map[string]string with XMLText.
// Use with validation.By.
func XMLTextMap(value any) error {
	m, _ := value.(map[string]string)
	for k, v := range m {
		if !isXMLText(k) {
			return validation.NewError("validation_xml_text", fmt.Sprintf("key %q %s", k, errXMLText.Message()))
		}
		if !isXMLText(v) {
			return validation.NewError("validation_xml_text", fmt.Sprintf("value of %q %s", k, errXMLText.Message()))
		}
	}
	return nil
}

// RFC3339Year validates that a time.Time falls in years 0000 through 9999 once
// converted to UTC, the range RFC 3339 timestamps can express. Zero times are left
// to Required. Use with validation.By.
func RFC3339Year(value any) error {
	t, ok := value.(time.Time)
	if !ok || t.IsZero() {
		return nil
	}
	if year := t.UTC().Year(); year < 0 || year > 9999 {
		return validation.NewError("validation_rfc3339_year", "must be between years 0000 and 9999")
	}
	return nil
}
