package models

import "time"

type SignatureType string

const (
	SignatureTypeDrawn SignatureType = "drawn"
	SignatureTypeTyped SignatureType = "typed"
)

// Valid reports whether t is one of the closed set of signature types.
func (t SignatureType) Valid() bool {
	return t == SignatureTypeDrawn || t == SignatureTypeTyped
}

// Signature is a reusable signature asset. The image itself lives in the
// artifact store as a PNG, only the path is recorded here.
type Signature struct {
	ID            uint64        `gorm:"primarykey" json:"id"`
	UserID        uint64        `gorm:"not null;index" json:"user_id"`
	FilePath      string        `gorm:"type:varchar(500);not null" json:"file_path"`
	SignatureType SignatureType `gorm:"type:varchar(20);not null" json:"signature_type"`
	CreatedAt     time.Time     `json:"created_at"`

	// Relations
	User            User             `gorm:"foreignKey:UserID" json:"-"`
	SignedDocuments []SignedDocument `gorm:"foreignKey:SignatureID" json:"-"`
}
