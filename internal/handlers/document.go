package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/e-signature-api/internal/dto"
	apierrors "github.com/yukikurage/e-signature-api/internal/errors"
	"github.com/yukikurage/e-signature-api/internal/middleware"
	"github.com/yukikurage/e-signature-api/internal/services"
	"github.com/yukikurage/e-signature-api/internal/utils"
)

// DocumentHandler coordinates document HTTP handlers.
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// Upload accepts a multipart document upload.
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}

	doc, err := h.documentService.Upload(services.UploadInput{
		UserID:           userID,
		OriginalFilename: fileHeader.Filename,
		Data:             data,
	})
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentDTO(*doc))
}

// List returns the current user's documents.
func (h *DocumentHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	documents, total, err := h.documentService.List(userID, params.Offset, params.Limit)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentListResponse(documents, params, total))
}

// Get returns one document by ID.
func (h *DocumentHandler) Get(c *gin.Context) {
	userID, id, ok := requestedResource(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Get(id, userID)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*doc))
}

// Download streams the original document back to its owner.
func (h *DocumentHandler) Download(c *gin.Context) {
	userID, id, ok := requestedResource(c)
	if !ok {
		return
	}

	doc, data, err := h.documentService.ReadFile(id, userID)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// Delete removes a document and its signed versions.
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, id, ok := requestedResource(c)
	if !ok {
		return
	}

	if err := h.documentService.Delete(id, userID); err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document deleted successfully",
	})
}

// requestedResource pulls the authenticated user and the :id path param.
// On failure it has already written the error response.
func requestedResource(c *gin.Context) (userID, id uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		return 0, 0, false
	}

	return userID, id, true
}

func respondDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDocumentTypeNotAllowed),
		errors.Is(err, services.ErrDocumentTooLarge):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToStoreDocument):
		apierrors.StorageFailure(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
