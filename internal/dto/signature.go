package dto

import (
	"time"

	"github.com/yukikurage/e-signature-api/internal/models"
)

// SignatureDTO represents a signature in API responses. The image itself
// is never inlined, only the storage reference.
type SignatureDTO struct {
	ID            uint64               `json:"id"`
	UserID        uint64               `json:"user_id"`
	FilePath      string               `json:"file_path"`
	SignatureType models.SignatureType `json:"signature_type"`
	CreatedAt     time.Time            `json:"created_at"`
}

// SignedDocumentDTO represents a signed document version in API responses
type SignedDocumentDTO struct {
	ID                 uint64    `json:"id"`
	DocumentID         uint64    `json:"document_id"`
	SignatureID        uint64    `json:"signature_id"`
	SignedFilePath     string    `json:"signed_file_path"`
	SignaturePositionX int       `json:"signature_position_x"`
	SignaturePositionY int       `json:"signature_position_y"`
	SignedAt           time.Time `json:"signed_at"`
}

// ToSignatureDTO converts a Signature model to SignatureDTO
func ToSignatureDTO(sig models.Signature) SignatureDTO {
	return SignatureDTO{
		ID:            sig.ID,
		UserID:        sig.UserID,
		FilePath:      sig.FilePath,
		SignatureType: sig.SignatureType,
		CreatedAt:     sig.CreatedAt,
	}
}

// ToSignedDocumentDTO converts a SignedDocument model to SignedDocumentDTO
func ToSignedDocumentDTO(sd models.SignedDocument) SignedDocumentDTO {
	return SignedDocumentDTO{
		ID:                 sd.ID,
		DocumentID:         sd.DocumentID,
		SignatureID:        sd.SignatureID,
		SignedFilePath:     sd.SignedFilePath,
		SignaturePositionX: sd.SignaturePositionX,
		SignaturePositionY: sd.SignaturePositionY,
		SignedAt:           sd.SignedAt,
	}
}

// ToSignedDocumentListDTO converts a slice of signed documents
func ToSignedDocumentListDTO(signed []models.SignedDocument) []SignedDocumentDTO {
	items := make([]SignedDocumentDTO, len(signed))
	for i, sd := range signed {
		items[i] = ToSignedDocumentDTO(sd)
	}
	return items
}
