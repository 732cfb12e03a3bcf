package models

import "github.com/google/uuid"

// ProjectTechnology represents a technology tag attached to a project.
// The pair (project, value) is unique so duplicate tags cannot be stored.
type ProjectTechnology struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_technology_project_id;uniqueIndex:idx_project_technology_unique"`
	Value     string    `json:"value" db:"value" gorm:"type:text;not null;uniqueIndex:idx_project_technology_unique"`
}
