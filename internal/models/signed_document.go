package models

import "time"

// SignedDocument is one signed version of a Document. Successive signing
// operations append new rows, they never overwrite existing ones.
type SignedDocument struct {
	ID                 uint64    `gorm:"primarykey" json:"id"`
	DocumentID         uint64    `gorm:"not null;index" json:"document_id"`
	SignatureID        uint64    `gorm:"not null;index" json:"signature_id"`
	SignedFilePath     string    `gorm:"type:varchar(500);not null" json:"signed_file_path"`
	SignaturePositionX int       `gorm:"default:0" json:"signature_position_x"`
	SignaturePositionY int       `gorm:"default:0" json:"signature_position_y"`
	SignedAt           time.Time `gorm:"autoCreateTime" json:"signed_at"`

	// Relations
	Document  Document  `gorm:"foreignKey:DocumentID" json:"-"`
	Signature Signature `gorm:"foreignKey:SignatureID" json:"-"`
}
