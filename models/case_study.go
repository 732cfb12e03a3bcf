package models

import (
	"time"

	"github.com/google/uuid"
)

// CaseStudy is long-form writing that may point at a project. The project
// reference is a lookup key only: deleting the project leaves the case
// study in place with an unresolvable reference.
type CaseStudy struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title      string     `json:"title" db:"title" gorm:"type:text;not null"`
	Overview   string     `json:"overview" db:"overview" gorm:"type:text;not null"`
	Challenges *string    `json:"challenges,omitempty" db:"challenges" gorm:"type:text"`
	Solutions  *string    `json:"solutions,omitempty" db:"solutions" gorm:"type:text"`
	Results    *string    `json:"results,omitempty" db:"results" gorm:"type:text"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty" db:"project_id" gorm:"type:uuid;index"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}
