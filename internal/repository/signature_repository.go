package repository

import (
	"github.com/yukikurage/e-signature-api/internal/models"
	"gorm.io/gorm"
)

// GormSignatureRepository is a GORM implementation of SignatureRepository
type GormSignatureRepository struct {
	db *gorm.DB
}

// NewSignatureRepository creates a new SignatureRepository
func NewSignatureRepository(db *gorm.DB) SignatureRepository {
	return &GormSignatureRepository{db: db}
}

// Create creates a new signature
func (r *GormSignatureRepository) Create(sig *models.Signature) error {
	return r.db.Create(sig).Error
}

// FindByIDForUser finds a signature by ID, scoped to its owner.
func (r *GormSignatureRepository) FindByIDForUser(id, userID uint64) (*models.Signature, error) {
	var sig models.Signature
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&sig).Error; err != nil {
		return nil, err
	}
	return &sig, nil
}

// ListByUser lists signatures owned by the given user, newest first
func (r *GormSignatureRepository) ListByUser(userID uint64) ([]models.Signature, error) {
	var signatures []models.Signature
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&signatures).Error; err != nil {
		return nil, err
	}
	return signatures, nil
}

// DeleteCascade removes the signature and all signed documents produced
// with it in a transaction, returning the backing file paths.
func (r *GormSignatureRepository) DeleteCascade(sig *models.Signature) ([]string, error) {
	paths := []string{sig.FilePath}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var signed []models.SignedDocument
		if err := tx.Where("signature_id = ?", sig.ID).Find(&signed).Error; err != nil {
			return err
		}
		for _, sd := range signed {
			paths = append(paths, sd.SignedFilePath)
		}

		if err := tx.Where("signature_id = ?", sig.ID).Delete(&models.SignedDocument{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Signature{}, sig.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}
