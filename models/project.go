package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio project with its display metadata
type Project struct {
	ID           uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string     `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string     `json:"description" db:"description" gorm:"type:text;not null"`
	StartDate    *time.Time `json:"start_date,omitempty" db:"start_date"`
	FinishDate   *time.Time `json:"finish_date,omitempty" db:"finish_date"`
	GithubURL    *string    `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	LiveURL      *string    `json:"live_url,omitempty" db:"live_url" gorm:"type:text"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty" db:"thumbnail_url" gorm:"type:text"`
	IsFeatured   bool       `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	IsArchived   bool       `json:"is_archived" db:"is_archived" gorm:"not null;default:false"`
	DisplayOrder int        `json:"display_order" db:"display_order" gorm:"not null;index"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`

	Technologies []ProjectTechnology `json:"technologies,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// TechnologyValues returns the technology tag values in stored order.
func (p *Project) TechnologyValues() []string {
	values := make([]string, 0, len(p.Technologies))
	for _, tech := range p.Technologies {
		values = append(values, tech.Value)
	}
	return values
}
