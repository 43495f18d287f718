package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	issuanceDomain "github.com/allisson/license-manager/internal/issuance/domain"
)

func TestDownloadLicenseRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "default format", format: ""},
		{name: "xml", format: "xml"},
		{name: "json", format: "json"},
		{name: "unknown", format: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := DownloadLicenseRequest{Token: "anything", Format: tt.format}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMapIssueOutputToResponse(t *testing.T) {
	expiresAt := time.Date(2029, 6, 1, 12, 5, 0, 0, time.UTC)

	resp := MapIssueOutputToResponse(&issuanceDomain.IssueOutput{Token: "tok", ExpiresAt: expiresAt})

	assert.Equal(t, IssueLicenseResponse{Token: "tok", ExpiresAt: expiresAt}, resp)
}
