package repository

import (
	"github.com/yukikurage/e-signature-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// DeleteCascade removes a user together with all owned documents,
	// signatures, and their signed versions in one transaction. The
	// returned paths are the backing files of everything removed.
	DeleteCascade(id uint64) ([]string, error)
}

// DocumentRepository defines the interface for document data access.
// Every lookup is scoped to the owning user: a document that exists but
// belongs to someone else is indistinguishable from one that does not
// exist at all.
type DocumentRepository interface {
	// Create creates a new document
	Create(doc *models.Document) error

	// FindByIDForUser finds a document owned by the given user
	FindByIDForUser(id, userID uint64) (*models.Document, error)

	// ListByUser lists documents owned by the given user with pagination
	ListByUser(userID uint64, offset, limit int) ([]models.Document, int64, error)

	// DeleteCascade removes the document and its signed versions in one
	// transaction and returns the backing file paths of the removed rows.
	DeleteCascade(doc *models.Document) ([]string, error)
}

// SignatureRepository defines the interface for signature data access,
// owner-scoped like DocumentRepository.
type SignatureRepository interface {
	// Create creates a new signature
	Create(sig *models.Signature) error

	// FindByIDForUser finds a signature owned by the given user
	FindByIDForUser(id, userID uint64) (*models.Signature, error)

	// ListByUser lists signatures owned by the given user, newest first
	ListByUser(userID uint64) ([]models.Signature, error)

	// DeleteCascade removes the signature and its signed versions in one
	// transaction and returns the backing file paths of the removed rows.
	DeleteCascade(sig *models.Signature) ([]string, error)
}

// SignedDocumentRepository defines the interface for signed document data
// access. Ownership is established transitively through the parent
// document's owner.
type SignedDocumentRepository interface {
	// CreateWithDocumentFlag inserts the signed document row and marks the
	// source document signed within a single transaction.
	CreateWithDocumentFlag(sd *models.SignedDocument) error

	// FindByIDForUser finds a signed document whose parent document is
	// owned by the given user
	FindByIDForUser(id, userID uint64) (*models.SignedDocument, error)

	// ListByDocument lists all signed versions of a document
	ListByDocument(documentID uint64) ([]models.SignedDocument, error)
}
