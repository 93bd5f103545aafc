package repository

import (
	"github.com/yukikurage/e-signature-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteCascade removes a user and everything the user owns in a single
// transaction. Backing file paths of the removed rows are collected before
// deletion so the caller can clean the filesystem best effort afterwards.
func (r *GormUserRepository) DeleteCascade(id uint64) ([]string, error) {
	var paths []string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var documents []models.Document
		if err := tx.Where("user_id = ?", id).Find(&documents).Error; err != nil {
			return err
		}
		var signatures []models.Signature
		if err := tx.Where("user_id = ?", id).Find(&signatures).Error; err != nil {
			return err
		}

		docIDs := make([]uint64, 0, len(documents))
		for _, doc := range documents {
			docIDs = append(docIDs, doc.ID)
			paths = append(paths, doc.FilePath)
		}
		sigIDs := make([]uint64, 0, len(signatures))
		for _, sig := range signatures {
			sigIDs = append(sigIDs, sig.ID)
			paths = append(paths, sig.FilePath)
		}

		if len(docIDs) > 0 {
			var signed []models.SignedDocument
			if err := tx.Where("document_id IN ?", docIDs).Find(&signed).Error; err != nil {
				return err
			}
			for _, sd := range signed {
				paths = append(paths, sd.SignedFilePath)
			}
			if err := tx.Where("document_id IN ?", docIDs).Delete(&models.SignedDocument{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", docIDs).Delete(&models.Document{}).Error; err != nil {
				return err
			}
		}

		if len(sigIDs) > 0 {
			if err := tx.Where("signature_id IN ?", sigIDs).Delete(&models.SignedDocument{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", sigIDs).Delete(&models.Signature{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}
