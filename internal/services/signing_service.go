package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yukikurage/e-signature-api/internal/models"
	"github.com/yukikurage/e-signature-api/internal/render"
	"github.com/yukikurage/e-signature-api/internal/repository"
	"github.com/yukikurage/e-signature-api/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrSignatureAssetMissing         = errors.New("signature file not found")
	ErrSignedDocumentNotFound        = errors.New("signed document not found")
	ErrCompositionFailed             = errors.New("failed to composite signature onto document")
	ErrFailedToPersistSignedDocument = errors.New("failed to persist signed document")
)

// SigningService orchestrates the signing operation: ownership checks,
// rasterization, compositing, and the atomic persistence of the result.
type SigningService struct {
	docRepo    repository.DocumentRepository
	sigRepo    repository.SignatureRepository
	signedRepo repository.SignedDocumentRepository
	store      *storage.Store
	log        zerolog.Logger
}

// NewSigningService creates a new SigningService.
func NewSigningService(
	docRepo repository.DocumentRepository,
	sigRepo repository.SignatureRepository,
	signedRepo repository.SignedDocumentRepository,
	store *storage.Store,
	log zerolog.Logger,
) *SigningService {
	return &SigningService{
		docRepo:    docRepo,
		sigRepo:    sigRepo,
		signedRepo: signedRepo,
		store:      store,
		log:        log,
	}
}

// ApplyInput represents one signing request.
type ApplyInput struct {
	UserID      uint64
	DocumentID  uint64
	SignatureID uint64
	PositionX   int
	PositionY   int
}

// Apply composites the signature onto the document at the requested pixel
// offset and records the result as a new signed version. Every failure is
// terminal; nothing is persisted unless the whole operation succeeds.
//
// The output file is written before the relational transaction that
// inserts the row and flips is_signed. A crash in between leaves at worst
// an orphaned file, never a committed row pointing at a missing one.
func (s *SigningService) Apply(input ApplyInput) (*models.SignedDocument, error) {
	doc, err := s.docRepo.FindByIDForUser(input.DocumentID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to resolve document: %w", err)
	}

	sig, err := s.sigRepo.FindByIDForUser(input.SignatureID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignatureNotFound
		}
		return nil, fmt.Errorf("failed to resolve signature: %w", err)
	}

	if !s.store.Exists(sig.FilePath) {
		return nil, ErrSignatureAssetMissing
	}
	sigData, err := s.store.Read(sig.FilePath)
	if err != nil {
		return nil, ErrSignatureAssetMissing
	}

	output, ext, err := s.renderSigned(doc, sigData, input.PositionX, input.PositionY)
	if err != nil {
		return nil, err
	}

	path, _, err := s.store.Save(storage.BucketSigned, ext, output)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToPersistSignedDocument, err)
	}

	signedDoc := &models.SignedDocument{
		DocumentID:         doc.ID,
		SignatureID:        sig.ID,
		SignedFilePath:     path,
		SignaturePositionX: input.PositionX,
		SignaturePositionY: input.PositionY,
	}

	if err := s.signedRepo.CreateWithDocumentFlag(signedDoc); err != nil {
		s.store.Delete(path)
		return nil, fmt.Errorf("%w: %v", ErrFailedToPersistSignedDocument, err)
	}

	return signedDoc, nil
}

// renderSigned produces the signed output bytes and their extension.
// When PDF rendering is unavailable the original document is passed
// through unchanged: a lossy but usable signed artifact beats failing the
// whole operation.
func (s *SigningService) renderSigned(doc *models.Document, sigData []byte, x, y int) ([]byte, string, error) {
	base, err := render.Rasterize(doc.FilePath, doc.Kind)
	if err != nil {
		if errors.Is(err, render.ErrRenderFailed) {
			s.log.Warn().
				Err(err).
				Uint64("document_id", doc.ID).
				Msg("pdf rendering unavailable, copying original as signed output")

			original, readErr := s.store.Read(doc.FilePath)
			if readErr != nil {
				return nil, "", fmt.Errorf("%w: %v", ErrFailedToPersistSignedDocument, readErr)
			}
			return original, doc.FileType, nil
		}
		return nil, "", err
	}

	overlay, err := render.DecodeSignatureBytes(sigData)
	if err != nil {
		return nil, "", err
	}

	composited := render.Composite(base, overlay, x, y)

	switch doc.Kind {
	case models.KindPDF:
		output, err := render.EncodePDF(composited)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrCompositionFailed, err)
		}
		return output, ".pdf", nil
	default:
		output, err := render.Encode(composited, doc.FileType)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrCompositionFailed, err)
		}
		return output, doc.FileType, nil
	}
}

// Get retrieves a signed document whose parent document belongs to the user.
func (s *SigningService) Get(id, userID uint64) (*models.SignedDocument, error) {
	signedDoc, err := s.signedRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignedDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find signed document: %w", err)
	}
	return signedDoc, nil
}

// ListVersions lists all signed versions of a document owned by the user.
func (s *SigningService) ListVersions(documentID, userID uint64) ([]models.SignedDocument, error) {
	if _, err := s.docRepo.FindByIDForUser(documentID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to resolve document: %w", err)
	}

	versions, err := s.signedRepo.ListByDocument(documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signed versions: %w", err)
	}
	return versions, nil
}

// ReadFile returns the signed output bytes along with the download name,
// derived from the source document's original filename.
func (s *SigningService) ReadFile(id, userID uint64) ([]byte, string, error) {
	signedDoc, err := s.Get(id, userID)
	if err != nil {
		return nil, "", err
	}

	doc, err := s.docRepo.FindByIDForUser(signedDoc.DocumentID, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve document: %w", err)
	}

	data, err := s.store.Read(signedDoc.SignedFilePath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFailedToPersistSignedDocument, err)
	}

	return data, "signed_" + doc.OriginalFilename, nil
}
