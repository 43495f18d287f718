// Package http provides the HTTP handlers for license issuance and download.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/license-manager/internal/httputil"
	"github.com/allisson/license-manager/internal/issuance/http/dto"
	issuanceUseCase "github.com/allisson/license-manager/internal/issuance/usecase"
	licenseService "github.com/allisson/license-manager/internal/license/service"
	customValidation "github.com/allisson/license-manager/internal/validation"
)

// LicenseFileName is the attachment name of a downloaded license.
const LicenseFileName = "License.lic"

// IssuanceHandler handles license issuance and download requests.
type IssuanceHandler struct {
	issuanceUseCase issuanceUseCase.IssuanceUseCase
	logger          *slog.Logger
}

// NewIssuanceHandler creates a new issuance handler.
func NewIssuanceHandler(issuanceUseCase issuanceUseCase.IssuanceUseCase, logger *slog.Logger) *IssuanceHandler {
	return &IssuanceHandler{
		issuanceUseCase: issuanceUseCase,
		logger:          logger,
	}
}

// IssueHandler signs a license and returns a short-lived download token.
// POST /v1/licenses/:id/issue - Returns 201 Created with the token and its expiry.
func (h *IssuanceHandler) IssueHandler(c *gin.Context) {
	licenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid license id: %w", err), h.logger)
		return
	}

	output, err := h.issuanceUseCase.Issue(c.Request.Context(), licenseID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Location", "/v1/licenses/download?token="+url.QueryEscape(output.Token))
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, dto.MapIssueOutputToResponse(output))
}

// DownloadHandler exchanges a token for the signed license file.
// GET /v1/licenses/download?token=...&format=xml|json - Returns the artifact as an
// attachment, or 404 for any token that is not currently valid.
func (h *IssuanceHandler) DownloadHandler(c *gin.Context) {
	var req dto.DownloadLicenseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	format, err := licenseService.ParseFormat(req.Format)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	artifact, err := h.issuanceUseCase.Download(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	body, err := licenseService.Encode(artifact, format)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", LicenseFileName))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, format.ContentType(), body)
}
