package repository

import (
	"github.com/yukikurage/e-signature-api/internal/database"
	"github.com/yukikurage/e-signature-api/internal/models"
	"gorm.io/gorm"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create creates a new document
func (r *GormDocumentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

// FindByIDForUser finds a document by ID, scoped to its owner.
func (r *GormDocumentRepository) FindByIDForUser(id, userID uint64) (*models.Document, error) {
	var doc models.Document
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByUser lists documents owned by the given user with pagination
func (r *GormDocumentRepository) ListByUser(userID uint64, offset, limit int) ([]models.Document, int64, error) {
	query := r.db.Model(&models.Document{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []models.Document
	if err := query.Order("created_at DESC").Scopes(database.Paginate(offset, limit)).Find(&documents).Error; err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

// DeleteCascade removes the document and all its signed versions in a
// transaction. Returned paths cover the document file and every signed
// output file, for best-effort filesystem cleanup by the caller.
func (r *GormDocumentRepository) DeleteCascade(doc *models.Document) ([]string, error) {
	paths := []string{doc.FilePath}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var signed []models.SignedDocument
		if err := tx.Where("document_id = ?", doc.ID).Find(&signed).Error; err != nil {
			return err
		}
		for _, sd := range signed {
			paths = append(paths, sd.SignedFilePath)
		}

		if err := tx.Where("document_id = ?", doc.ID).Delete(&models.SignedDocument{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Document{}, doc.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}
