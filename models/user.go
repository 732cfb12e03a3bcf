package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated identity issued by the identity provider.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AdminUser is one allow-list entry. Presence of a row grants admin
// capability; absence means non-admin.
type AdminUser struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
