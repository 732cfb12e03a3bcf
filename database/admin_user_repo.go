package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-admin-backend/models"
)

// AdminUserRepo manages the admin allow-list. It gates nothing itself; it
// only answers membership questions and records promotions.
type AdminUserRepo struct {
	db *gorm.DB
}

func NewAdminUserRepo(db *gorm.DB) *AdminUserRepo {
	return &AdminUserRepo{db}
}

// IsAdmin reports whether the identity is on the allow-list. Absence is
// not an error.
func (r *AdminUserRepo) IsAdmin(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.AdminUser{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Promote inserts the identity into the allow-list. It is idempotent:
// promoting an existing admin succeeds with created=false so a caller can
// tell "already admin" apart from a storage failure.
func (r *AdminUserRepo) Promote(id uuid.UUID, email string) (created bool, err error) {
	var existing models.AdminUser
	err = r.db.First(&existing, "id = ?", id).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	adminUser := models.AdminUser{ID: id, Email: email}
	if err := r.db.Create(&adminUser).Error; err != nil {
		return false, err
	}
	return true, nil
}
