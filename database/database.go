package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo      *ProjectRepo
	caseStudyRepo    *CaseStudyRepo
	resumeRepo       *ResumeRepo
	analyticsRepo    *AnalyticsRepo
	adminUserRepo    *AdminUserRepo
	userRepo         *UserRepo
	siteSettingsRepo *SiteSettingsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:      NewProjectRepo(db),
		caseStudyRepo:    NewCaseStudyRepo(db),
		resumeRepo:       NewResumeRepo(db),
		analyticsRepo:    NewAnalyticsRepo(db),
		adminUserRepo:    NewAdminUserRepo(db),
		userRepo:         NewUserRepo(db),
		siteSettingsRepo: NewSiteSettingsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CaseStudyRepo() *CaseStudyRepo {
	return d.caseStudyRepo
}

func (d Database) ResumeRepo() *ResumeRepo {
	return d.resumeRepo
}

func (d Database) AnalyticsRepo() *AnalyticsRepo {
	return d.analyticsRepo
}

func (d Database) AdminUserRepo() *AdminUserRepo {
	return d.adminUserRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SiteSettingsRepo() *SiteSettingsRepo {
	return d.siteSettingsRepo
}
