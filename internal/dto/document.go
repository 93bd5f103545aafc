package dto

import (
	"time"

	"github.com/yukikurage/e-signature-api/internal/models"
	"github.com/yukikurage/e-signature-api/internal/utils"
)

// DocumentDTO represents a document in API responses
type DocumentDTO struct {
	ID               uint64              `json:"id"`
	UserID           uint64              `json:"user_id"`
	Filename         string              `json:"filename"`
	OriginalFilename string              `json:"original_filename"`
	FileType         string              `json:"file_type"`
	Kind             models.DocumentKind `json:"kind"`
	FileSize         int64               `json:"file_size"`
	IsSigned         bool                `json:"is_signed"`
	CreatedAt        time.Time           `json:"created_at"`
}

// DocumentListResponse represents a paginated list of documents
type DocumentListResponse struct {
	Documents  []DocumentDTO            `json:"documents"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToDocumentDTO converts a Document model to DocumentDTO
func ToDocumentDTO(doc models.Document) DocumentDTO {
	return DocumentDTO{
		ID:               doc.ID,
		UserID:           doc.UserID,
		Filename:         doc.Filename,
		OriginalFilename: doc.OriginalFilename,
		FileType:         doc.FileType,
		Kind:             doc.Kind,
		FileSize:         doc.FileSize,
		IsSigned:         doc.IsSigned,
		CreatedAt:        doc.CreatedAt,
	}
}

// ToDocumentListResponse converts a slice of documents to DocumentListResponse
func ToDocumentListResponse(documents []models.Document, params utils.PaginationParams, total int64) DocumentListResponse {
	items := make([]DocumentDTO, len(documents))
	for i, doc := range documents {
		items[i] = ToDocumentDTO(doc)
	}

	return DocumentListResponse{
		Documents: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
