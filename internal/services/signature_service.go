package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/e-signature-api/internal/models"
	"github.com/yukikurage/e-signature-api/internal/render"
	"github.com/yukikurage/e-signature-api/internal/repository"
	"github.com/yukikurage/e-signature-api/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrInvalidSignatureType   = errors.New("signature type must be 'drawn' or 'typed'")
	ErrSignatureNotFound      = errors.New("signature not found")
	ErrFailedToStoreSignature = errors.New("failed to store signature")
)

// SignatureService handles signature asset creation and lifecycle.
type SignatureService struct {
	sigRepo repository.SignatureRepository
	store   *storage.Store
}

// NewSignatureService creates a new SignatureService.
func NewSignatureService(sigRepo repository.SignatureRepository, store *storage.Store) *SignatureService {
	return &SignatureService{
		sigRepo: sigRepo,
		store:   store,
	}
}

// CreateSignatureInput represents a submitted signature.
type CreateSignatureInput struct {
	UserID        uint64
	Data          string
	SignatureType models.SignatureType
}

// Create decodes the transmitted image payload and persists it to the
// artifact store as PNG. The record only ever references the stored file,
// the image is never kept inline. Undecodable payloads surface
// render.ErrInvalidSignatureData.
func (s *SignatureService) Create(input CreateSignatureInput) (*models.Signature, error) {
	if !input.SignatureType.Valid() {
		return nil, ErrInvalidSignatureType
	}

	img, err := render.DecodeSignatureString(input.Data)
	if err != nil {
		return nil, err
	}

	pngData, err := render.Encode(img, ".png")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToStoreSignature, err)
	}

	path, _, err := s.store.Save(storage.BucketSignatures, ".png", pngData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToStoreSignature, err)
	}

	sig := &models.Signature{
		UserID:        input.UserID,
		FilePath:      path,
		SignatureType: input.SignatureType,
	}

	if err := s.sigRepo.Create(sig); err != nil {
		s.store.Delete(path)
		return nil, fmt.Errorf("%w: %v", ErrFailedToStoreSignature, err)
	}

	return sig, nil
}

// Get retrieves a signature owned by the given user.
func (s *SignatureService) Get(id, userID uint64) (*models.Signature, error) {
	sig, err := s.sigRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignatureNotFound
		}
		return nil, fmt.Errorf("failed to find signature: %w", err)
	}
	return sig, nil
}

// List returns the user's signatures, newest first.
func (s *SignatureService) List(userID uint64) ([]models.Signature, error) {
	signatures, err := s.sigRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}
	return signatures, nil
}

// Delete removes a signature, its dependent signed versions, and their
// backing files (best effort).
func (s *SignatureService) Delete(id, userID uint64) error {
	sig, err := s.Get(id, userID)
	if err != nil {
		return err
	}

	paths, err := s.sigRepo.DeleteCascade(sig)
	if err != nil {
		return fmt.Errorf("failed to delete signature: %w", err)
	}

	for _, path := range paths {
		s.store.Delete(path)
	}

	return nil
}
