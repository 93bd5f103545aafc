package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/e-signature-api/internal/dto"
	apierrors "github.com/yukikurage/e-signature-api/internal/errors"
	"github.com/yukikurage/e-signature-api/internal/middleware"
	"github.com/yukikurage/e-signature-api/internal/models"
	"github.com/yukikurage/e-signature-api/internal/render"
	"github.com/yukikurage/e-signature-api/internal/services"
)

// SignatureHandler coordinates signature HTTP handlers.
type SignatureHandler struct {
	signatureService *services.SignatureService
}

// NewSignatureHandler creates a new SignatureHandler.
func NewSignatureHandler(signatureService *services.SignatureService) *SignatureHandler {
	return &SignatureHandler{
		signatureService: signatureService,
	}
}

// Create decodes a submitted signature image and stores it.
func (h *SignatureHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateRequest struct {
		SignatureData string `json:"signature_data" binding:"required"`
		SignatureType string `json:"signature_type" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sig, err := h.signatureService.Create(services.CreateSignatureInput{
		UserID:        userID,
		Data:          req.SignatureData,
		SignatureType: models.SignatureType(req.SignatureType),
	})
	if err != nil {
		respondSignatureError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSignatureDTO(*sig))
}

// List returns the current user's signatures, newest first.
func (h *SignatureHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	signatures, err := h.signatureService.List(userID)
	if err != nil {
		respondSignatureError(c, err)
		return
	}

	items := make([]dto.SignatureDTO, len(signatures))
	for i, sig := range signatures {
		items[i] = dto.ToSignatureDTO(sig)
	}

	c.JSON(http.StatusOK, items)
}

// Get returns one signature by ID.
func (h *SignatureHandler) Get(c *gin.Context) {
	userID, id, ok := requestedResource(c)
	if !ok {
		return
	}

	sig, err := h.signatureService.Get(id, userID)
	if err != nil {
		respondSignatureError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSignatureDTO(*sig))
}

// Delete removes a signature and the signed versions produced with it.
func (h *SignatureHandler) Delete(c *gin.Context) {
	userID, id, ok := requestedResource(c)
	if !ok {
		return
	}

	if err := h.signatureService.Delete(id, userID); err != nil {
		respondSignatureError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signature deleted successfully",
	})
}

func respondSignatureError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSignatureType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, render.ErrInvalidSignatureData):
		apierrors.InvalidSignatureData(c, err.Error())
	case errors.Is(err, services.ErrSignatureNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToStoreSignature):
		apierrors.StorageFailure(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
