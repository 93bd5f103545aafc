package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Bucket is one of the three logical artifact classes the store manages.
type Bucket string

const (
	BucketDocuments  Bucket = "documents"
	BucketSignatures Bucket = "signatures"
	BucketSigned     Bucket = "signed_documents"
)

// Store places artifacts on disk under a configured root, one directory
// per bucket. Generated names are collision resistant, so concurrent
// writers never need locking.
type Store struct {
	root string
	log  zerolog.Logger
}

func NewStore(root string, log zerolog.Logger) *Store {
	return &Store{
		root: root,
		log:  log,
	}
}

// Save writes data into the bucket under a generated name and returns the
// full reference path along with the name. Bucket directories are created
// lazily on first use.
func (s *Store) Save(bucket Bucket, ext string, data []byte) (string, string, error) {
	dir := filepath.Join(s.root, string(bucket))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}

	name := s.generateName(bucket, ext)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}

	return path, name, nil
}

// Read returns the artifact bytes at the given reference path.
func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether the reference path is backed by a file.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Delete removes the artifact at the reference path. It is idempotent:
// a missing file reports false, and no failure ever propagates to the
// caller, so record deletion is never blocked by the filesystem.
func (s *Store) Delete(path string) bool {
	if path == "" {
		return false
	}
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", path).Msg("failed to delete artifact")
		}
		return false
	}
	return true
}

// generateName builds a collision-resistant file name. Signature uploads
// are always persisted as PNG regardless of the submitted format, and
// signed outputs carry a signed_ prefix like every other version they sit
// next to.
func (s *Store) generateName(bucket Bucket, ext string) string {
	id := uuid.New().String()
	ext = strings.ToLower(ext)

	switch bucket {
	case BucketSignatures:
		return id + ".png"
	case BucketSigned:
		return "signed_" + id + ext
	default:
		return id + ext
	}
}
