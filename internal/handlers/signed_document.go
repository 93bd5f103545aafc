package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/e-signature-api/internal/dto"
	apierrors "github.com/yukikurage/e-signature-api/internal/errors"
	"github.com/yukikurage/e-signature-api/internal/middleware"
	"github.com/yukikurage/e-signature-api/internal/render"
	"github.com/yukikurage/e-signature-api/internal/services"
)

// SignedDocumentHandler coordinates signing and signed-version handlers.
type SignedDocumentHandler struct {
	signingService *services.SigningService
}

// NewSignedDocumentHandler creates a new SignedDocumentHandler.
func NewSignedDocumentHandler(signingService *services.SigningService) *SignedDocumentHandler {
	return &SignedDocumentHandler{
		signingService: signingService,
	}
}

// Apply composites a signature onto a document and records the result as
// a new signed version.
func (h *SignedDocumentHandler) Apply(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ApplyRequest struct {
		DocumentID         uint64 `json:"document_id" binding:"required"`
		SignatureID        uint64 `json:"signature_id" binding:"required"`
		SignaturePositionX int    `json:"signature_position_x"`
		SignaturePositionY int    `json:"signature_position_y"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	signedDoc, err := h.signingService.Apply(services.ApplyInput{
		UserID:      userID,
		DocumentID:  req.DocumentID,
		SignatureID: req.SignatureID,
		PositionX:   req.SignaturePositionX,
		PositionY:   req.SignaturePositionY,
	})
	if err != nil {
		respondSigningError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSignedDocumentDTO(*signedDoc))
}

// Get returns one signed document by ID.
func (h *SignedDocumentHandler) Get(c *gin.Context) {
	userID, id, ok := requestedResource(c)
	if !ok {
		return
	}

	signedDoc, err := h.signingService.Get(id, userID)
	if err != nil {
		respondSigningError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSignedDocumentDTO(*signedDoc))
}

// Download streams the signed output file.
func (h *SignedDocumentHandler) Download(c *gin.Context) {
	userID, id, ok := requestedResource(c)
	if !ok {
		return
	}

	data, filename, err := h.signingService.ReadFile(id, userID)
	if err != nil {
		respondSigningError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// ListVersions lists all signed versions of a document.
func (h *SignedDocumentHandler) ListVersions(c *gin.Context) {
	userID, documentID, ok := requestedResource(c)
	if !ok {
		return
	}

	versions, err := h.signingService.ListVersions(documentID, userID)
	if err != nil {
		respondSigningError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSignedDocumentListDTO(versions))
}

func respondSigningError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDocumentNotFound),
		errors.Is(err, services.ErrSignatureNotFound),
		errors.Is(err, services.ErrSignedDocumentNotFound),
		errors.Is(err, services.ErrSignatureAssetMissing):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, render.ErrUnsupportedDocumentType):
		apierrors.UnsupportedDocumentType(c, err.Error())
	case errors.Is(err, render.ErrInvalidSignatureData):
		apierrors.InvalidSignatureData(c, err.Error())
	case errors.Is(err, services.ErrCompositionFailed):
		apierrors.InternalError(c, err.Error())
	case errors.Is(err, services.ErrFailedToPersistSignedDocument):
		apierrors.StorageFailure(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
