package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the listing/lookup indexes the AutoMigrate tags do not
// cover. Postgres only; other drivers get by on the single-column indexes.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Owner-scoped listing
		{"documents", "idx_documents_user_created", "user_id, created_at"},
		{"signatures", "idx_signatures_user_created", "user_id, created_at"},

		// Signed version lookups
		{"signed_documents", "idx_signed_documents_document_id", "document_id"},
		{"signed_documents", "idx_signed_documents_signature_id", "signature_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
