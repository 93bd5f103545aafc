package models

import (
	"strings"
	"time"
)

// DocumentKind is the raster dispatch class of a document, resolved once
// from the file extension at upload time and stored with the record.
type DocumentKind string

const (
	KindImage DocumentKind = "image"
	KindPDF   DocumentKind = "pdf"
)

// KindForExtension maps an allow-listed extension to its DocumentKind.
// Extensions outside the allow-list return false.
func KindForExtension(ext string) (DocumentKind, bool) {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg":
		return KindImage, true
	case ".pdf":
		return KindPDF, true
	default:
		return "", false
	}
}

type Document struct {
	ID               uint64       `gorm:"primarykey" json:"id"`
	UserID           uint64       `gorm:"not null;index" json:"user_id"`
	Filename         string       `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalFilename string       `gorm:"type:varchar(255);not null" json:"original_filename"`
	FilePath         string       `gorm:"type:varchar(500);not null" json:"file_path"`
	FileType         string       `gorm:"type:varchar(50);not null" json:"file_type"`
	Kind             DocumentKind `gorm:"type:varchar(20);not null" json:"kind"`
	FileSize         int64        `gorm:"not null" json:"file_size"`
	IsSigned         bool         `gorm:"default:false" json:"is_signed"`
	CreatedAt        time.Time    `json:"created_at"`

	// Relations
	User            User             `gorm:"foreignKey:UserID" json:"-"`
	SignedDocuments []SignedDocument `gorm:"foreignKey:DocumentID" json:"signed_documents,omitempty"`
}
