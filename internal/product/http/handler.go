// Package http provides the HTTP handlers for product onboarding and public key export.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	"github.com/allisson/license-manager/internal/httputil"
	"github.com/allisson/license-manager/internal/product/http/dto"
	productUseCase "github.com/allisson/license-manager/internal/product/usecase"
	customValidation "github.com/allisson/license-manager/internal/validation"
)

// PublicKeyContentType is the media type of an exported public key.
const PublicKeyContentType = "application/x-pem-file"

// ProductHandler handles product requests.
type ProductHandler struct {
	productUseCase productUseCase.ProductUseCase
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productUseCase productUseCase.ProductUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a product and its signing key pair.
// POST /v1/products - Returns 201 Created with the product and its public key.
func (h *ProductHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	product, err := h.productUseCase.Create(c.Request.Context(), &productUseCase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Algorithm:   cryptoDomain.KeyAlgorithm(req.Algorithm),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProductToResponse(product))
}

// PublicKeyHandler exports the PEM public key that verifies the product's licenses.
// GET /v1/products/:id/public-key
func (h *ProductHandler) PublicKeyHandler(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid product id: %w", err), h.logger)
		return
	}

	publicKey, err := h.productUseCase.GetPublicKey(c.Request.Context(), productID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, PublicKeyContentType, []byte(publicKey))
}
