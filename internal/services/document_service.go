package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yukikurage/e-signature-api/internal/config"
	"github.com/yukikurage/e-signature-api/internal/models"
	"github.com/yukikurage/e-signature-api/internal/repository"
	"github.com/yukikurage/e-signature-api/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrDocumentTypeNotAllowed = errors.New("file type not allowed")
	ErrDocumentTooLarge       = errors.New("file too large")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrFailedToStoreDocument  = errors.New("failed to store document")
)

// DocumentService handles document upload and lifecycle.
type DocumentService struct {
	docRepo repository.DocumentRepository
	store   *storage.Store
	cfg     *config.Config
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(docRepo repository.DocumentRepository, store *storage.Store, cfg *config.Config) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		store:   store,
		cfg:     cfg,
	}
}

// UploadInput represents a document upload.
type UploadInput struct {
	UserID           uint64
	OriginalFilename string
	Data             []byte
}

// Upload validates and persists an uploaded document. The file is written
// to the artifact store first; if the record insert fails afterwards the
// file is removed again so nothing dangles.
func (s *DocumentService) Upload(input UploadInput) (*models.Document, error) {
	ext := strings.ToLower(filepath.Ext(input.OriginalFilename))

	if !s.extensionAllowed(ext) {
		return nil, fmt.Errorf("%w: %q (allowed: %s)", ErrDocumentTypeNotAllowed, ext, strings.Join(s.cfg.AllowedDocumentTypes, ", "))
	}

	kind, ok := models.KindForExtension(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDocumentTypeNotAllowed, ext)
	}

	if int64(len(input.Data)) > s.cfg.MaxUploadSize {
		return nil, fmt.Errorf("%w: max size %d bytes", ErrDocumentTooLarge, s.cfg.MaxUploadSize)
	}

	path, name, err := s.store.Save(storage.BucketDocuments, ext, input.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToStoreDocument, err)
	}

	doc := &models.Document{
		UserID:           input.UserID,
		Filename:         name,
		OriginalFilename: input.OriginalFilename,
		FilePath:         path,
		FileType:         ext,
		Kind:             kind,
		FileSize:         int64(len(input.Data)),
	}

	if err := s.docRepo.Create(doc); err != nil {
		s.store.Delete(path)
		return nil, fmt.Errorf("%w: %v", ErrFailedToStoreDocument, err)
	}

	return doc, nil
}

// Get retrieves a document owned by the given user.
func (s *DocumentService) Get(id, userID uint64) (*models.Document, error) {
	doc, err := s.docRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return doc, nil
}

// List returns the user's documents with pagination.
func (s *DocumentService) List(userID uint64, offset, limit int) ([]models.Document, int64, error) {
	documents, total, err := s.docRepo.ListByUser(userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, total, nil
}

// ReadFile returns the stored bytes of a document owned by the user.
func (s *DocumentService) ReadFile(id, userID uint64) (*models.Document, []byte, error) {
	doc, err := s.Get(id, userID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.store.Read(doc.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToStoreDocument, err)
	}

	return doc, data, nil
}

// Delete removes a document, its signed versions, and their backing files.
// Row deletion is transactional; file deletion afterwards is best effort
// and never fails the operation.
func (s *DocumentService) Delete(id, userID uint64) error {
	doc, err := s.Get(id, userID)
	if err != nil {
		return err
	}

	paths, err := s.docRepo.DeleteCascade(doc)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	for _, path := range paths {
		s.store.Delete(path)
	}

	return nil
}

func (s *DocumentService) extensionAllowed(ext string) bool {
	for _, allowed := range s.cfg.AllowedDocumentTypes {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
