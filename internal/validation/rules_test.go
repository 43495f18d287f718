package validation

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/license-manager/internal/errors"
)

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "no whitespace",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "leading whitespace",
			input:     " validstring",
			shouldErr: true,
		},
		{
			name:      "trailing whitespace",
			input:     "validstring ",
			shouldErr: true,
		},
		{
			name:      "both leading and trailing",
			input:     " validstring ",
			shouldErr: true,
		},
		{
			name:      "internal spaces allowed",
			input:     "valid string",
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NoWhitespace.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid string",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "only spaces",
			input:     "   ",
			shouldErr: true,
		},
		{
			name:      "only tabs",
			input:     "\t\t",
			shouldErr: true,
		},
		{
			name:      "only newlines",
			input:     "\n\n",
			shouldErr: true,
		},
		{
			name:      "mixed whitespace",
			input:     " \t\n ",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error returns nil",
			err:      nil,
			expected: false,
		},
		{
			name:     "wraps validation error",
			err:      assert.AnError,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapValidationError(tt.err)
			if tt.expected {
				assert.Error(t, result)
				assert.Contains(t, result.Error(), "invalid input")
			} else {
				assert.NoError(t, result)
			}
		})
	}
}

func TestWrapValidationErrorAs(t *testing.T) {
	sentinel := apperrors.Wrap(apperrors.ErrInvalidInput, "invalid license")

	err := WrapValidationErrorAs(sentinel, assert.AnError)
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.NoError(t, WrapValidationErrorAs(sentinel, nil))
}

func TestIssuanceToken(t *testing.T) {
	valid := base64.RawURLEncoding.EncodeToString(make([]byte, 32))

	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{name: "valid token", input: valid},
		{name: "empty is left to required", input: ""},
		{name: "too short", input: valid[:42], shouldErr: true},
		{name: "padded", input: base64.URLEncoding.EncodeToString(make([]byte, 32)), shouldErr: true},
		{name: "standard alphabet", input: strings.Repeat("+", 43), shouldErr: true},
		{name: "uuid", input: "0b2e7f5c-4d0a-4a43-9d61-4ab0d3cdfb10", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := IssuanceToken.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestXMLText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{name: "ascii", input: "Acme Corp"},
		{name: "tab and line breaks", input: "a\tb\r\nc"},
		{name: "markup characters", input: `<a href="x">&amp;</a>`},
		{name: "non-ascii", input: "São Paulo 🚀"},
		{name: "empty", input: ""},
		{name: "nul", input: "a\x00b", shouldErr: true},
		{name: "start of heading", input: "line\x01one", shouldErr: true},
		{name: "vertical tab", input: "a\x0bb", shouldErr: true},
		{name: "unit separator", input: "Acme\x1fInc", shouldErr: true},
		{name: "noncharacter", input: "a\ufffeb", shouldErr: true},
		{name: "invalid utf-8", input: "a\xffb", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := XMLText.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestXMLTextMap(t *testing.T) {
	assert.NoError(t, XMLTextMap(map[string]string{"Sales Module": "yes", "Módulo": "sim"}))
	assert.NoError(t, XMLTextMap(map[string]string(nil)))
	assert.Error(t, XMLTextMap(map[string]string{"bad\x01key": "yes"}))
	assert.Error(t, XMLTextMap(map[string]string{"note": "a\x0bb"}))
}

func TestRFC3339Year(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		shouldErr bool
	}{
		{name: "zero is left to required", input: time.Time{}},
		{name: "typical", input: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "year 0000", input: time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "last instant of 9999", input: time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)},
		{name: "year 10000", input: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), shouldErr: true},
		{name: "negative year", input: time.Date(-1, 6, 1, 0, 0, 0, 0, time.UTC), shouldErr: true},
		{
			name:      "offset crossing into 10000",
			input:     time.Date(9999, 12, 31, 22, 0, 0, 0, time.FixedZone("BRT", -3*60*60)),
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RFC3339Year(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
