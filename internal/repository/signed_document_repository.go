package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/e-signature-api/internal/models"
	"gorm.io/gorm"
)

// GormSignedDocumentRepository is a GORM implementation of SignedDocumentRepository
type GormSignedDocumentRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateSignedDocument is returned when inserting the signed document row fails inside the signing transaction.
	ErrCreateSignedDocument = errors.New("signed document repository: create signed document failed")
	// ErrFlagDocumentSigned is returned when flipping the source document's signed flag fails inside the signing transaction.
	ErrFlagDocumentSigned = errors.New("signed document repository: flag document signed failed")
)

// NewSignedDocumentRepository creates a new SignedDocumentRepository
func NewSignedDocumentRepository(db *gorm.DB) SignedDocumentRepository {
	return &GormSignedDocumentRepository{db: db}
}

// CreateWithDocumentFlag inserts the signed document row and sets the
// source document's is_signed flag atomically. Setting the flag is a plain
// UPDATE to true, so concurrent signers against the same document are safe
// without locking.
func (r *GormSignedDocumentRepository) CreateWithDocumentFlag(sd *models.SignedDocument) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sd).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateSignedDocument, err)
		}

		if err := tx.Model(&models.Document{}).
			Where("id = ?", sd.DocumentID).
			Update("is_signed", true).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrFlagDocumentSigned, err)
		}

		return nil
	})
}

// FindByIDForUser finds a signed document whose parent document belongs to
// the given user. The join is the ownership proof: zero rows means not
// found, whether the row is absent or owned by someone else.
func (r *GormSignedDocumentRepository) FindByIDForUser(id, userID uint64) (*models.SignedDocument, error) {
	var sd models.SignedDocument
	err := r.db.Joins("JOIN documents ON documents.id = signed_documents.document_id").
		Where("signed_documents.id = ? AND documents.user_id = ?", id, userID).
		First(&sd).Error
	if err != nil {
		return nil, err
	}
	return &sd, nil
}

// ListByDocument lists all signed versions of a document
func (r *GormSignedDocumentRepository) ListByDocument(documentID uint64) ([]models.SignedDocument, error) {
	var signed []models.SignedDocument
	if err := r.db.Where("document_id = ?", documentID).
		Order("signed_at ASC").
		Find(&signed).Error; err != nil {
		return nil, err
	}
	return signed, nil
}
