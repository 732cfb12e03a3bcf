package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is the stored resume artifact. The most recently uploaded row is
// the current one; uploading a replacement removes the previous row and
// its binary.
type Resume struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FileURL       string    `json:"file_url" db:"file_url" gorm:"type:text;not null"`
	Filename      string    `json:"filename" db:"filename" gorm:"type:text;not null"`
	DownloadCount int       `json:"download_count" db:"download_count" gorm:"not null;default:0"`
	UploadedAt    time.Time `json:"uploaded_at" db:"uploaded_at" gorm:"not null;index"`
}
