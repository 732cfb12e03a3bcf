package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

const (
	topPagesLimit    = 5
	topProjectsLimit = 5
	recentEventsSize = 20
)

// Analytics aggregates the raw event log at read time. There are no
// materialized rollups; every summary walks the log.
type Analytics struct {
	analyticsRepo *database.AnalyticsRepo
	projectRepo   *database.ProjectRepo
	caseStudyRepo *database.CaseStudyRepo
	resumeRepo    *database.ResumeRepo
	logger        zerolog.Logger
}

func NewAnalytics(db database.Database) *Analytics {
	logger := log.With().Str("serviceName", "analytics").Logger()

	return &Analytics{
		analyticsRepo: db.AnalyticsRepo(),
		projectRepo:   db.ProjectRepo(),
		caseStudyRepo: db.CaseStudyRepo(),
		resumeRepo:    db.ResumeRepo(),
		logger:        logger,
	}
}

// PageCount is one row of the top-pages ranking
type PageCount struct {
	PagePath string `json:"page_path"`
	Views    int    `json:"views"`
}

// ProjectCount is one row of the top-projects ranking, keyed by the
// resolved project title
type ProjectCount struct {
	ProjectTitle string `json:"project_title"`
	Views        int    `json:"views"`
}

// RecentEvent is a log row annotated with the resolved project title when
// the reference resolves; unresolved references leave the annotation out
type RecentEvent struct {
	ID           uuid.UUID `json:"id"`
	EventType    string    `json:"event_type"`
	PagePath     *string   `json:"page_path,omitempty"`
	ProjectTitle *string   `json:"project_title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary is the analytics dashboard payload
type Summary struct {
	TotalPageViews       int64          `json:"total_page_views"`
	TotalProjectViews    int64          `json:"total_project_views"`
	TotalResumeDownloads int64          `json:"total_resume_downloads"`
	TopPages             []PageCount    `json:"top_pages"`
	TopProjects          []ProjectCount `json:"top_projects"`
	RecentEvents         []RecentEvent  `json:"recent_events"`
}

// Summary computes the full analytics view over the event log.
func (a *Analytics) Summary() (*Summary, error) {
	summary := &Summary{
		TopPages:     []PageCount{},
		TopProjects:  []ProjectCount{},
		RecentEvents: []RecentEvent{},
	}

	var err error
	if summary.TotalPageViews, err = a.analyticsRepo.CountByType(models.EventPageView); err != nil {
		return nil, errs.NewDatabaseError("count", "page views", err)
	}
	if summary.TotalProjectViews, err = a.analyticsRepo.CountByType(models.EventProjectView); err != nil {
		return nil, errs.NewDatabaseError("count", "project views", err)
	}
	if summary.TotalResumeDownloads, err = a.analyticsRepo.CountByType(models.EventResumeDownload); err != nil {
		return nil, errs.NewDatabaseError("count", "resume downloads", err)
	}

	if summary.TopPages, err = a.topPages(); err != nil {
		return nil, err
	}
	if summary.TopProjects, err = a.topProjects(); err != nil {
		return nil, err
	}
	if summary.RecentEvents, err = a.recentEvents(); err != nil {
		return nil, err
	}

	return summary, nil
}

func (a *Analytics) topPages() ([]PageCount, error) {
	events, err := a.analyticsRepo.FindByType(models.EventPageView)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "page views", err)
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, event := range events {
		if event.PagePath == nil || *event.PagePath == "" {
			continue
		}
		if _, seen := counts[*event.PagePath]; !seen {
			order = append(order, *event.PagePath)
		}
		counts[*event.PagePath]++
	}

	pages := make([]PageCount, 0, len(order))
	for _, pagePath := range order {
		pages = append(pages, PageCount{PagePath: pagePath, Views: counts[pagePath]})
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Views > pages[j].Views
	})
	if len(pages) > topPagesLimit {
		pages = pages[:topPagesLimit]
	}
	return pages, nil
}

func (a *Analytics) topProjects() ([]ProjectCount, error) {
	events, err := a.analyticsRepo.FindByType(models.EventProjectView)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project views", err)
	}

	titles, err := a.resolveTitles(events)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, event := range events {
		if event.ProjectID == nil {
			continue
		}
		title, ok := titles[*event.ProjectID]
		if !ok {
			// dangling reference, the project was deleted
			continue
		}
		if _, seen := counts[title]; !seen {
			order = append(order, title)
		}
		counts[title]++
	}

	projects := make([]ProjectCount, 0, len(order))
	for _, title := range order {
		projects = append(projects, ProjectCount{ProjectTitle: title, Views: counts[title]})
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Views > projects[j].Views
	})
	if len(projects) > topProjectsLimit {
		projects = projects[:topProjectsLimit]
	}
	return projects, nil
}

func (a *Analytics) recentEvents() ([]RecentEvent, error) {
	events, err := a.analyticsRepo.Recent(recentEventsSize)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "recent events", err)
	}

	titles, err := a.resolveTitles(events)
	if err != nil {
		return nil, err
	}

	recent := make([]RecentEvent, 0, len(events))
	for _, event := range events {
		annotated := RecentEvent{
			ID:        event.ID,
			EventType: event.EventType,
			PagePath:  event.PagePath,
			CreatedAt: event.CreatedAt,
		}
		if event.ProjectID != nil {
			if title, ok := titles[*event.ProjectID]; ok {
				annotated.ProjectTitle = &title
			}
		}
		recent = append(recent, annotated)
	}
	return recent, nil
}

func (a *Analytics) resolveTitles(events []*models.AnalyticsEvent) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, event := range events {
		if event.ProjectID != nil && !seen[*event.ProjectID] {
			seen[*event.ProjectID] = true
			ids = append(ids, *event.ProjectID)
		}
	}

	titles, err := a.projectRepo.TitlesByID(ids)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project titles", err)
	}
	return titles, nil
}

// DashboardStats is the admin landing-page payload
type DashboardStats struct {
	TotalProjects    int   `json:"total_projects"`
	FeaturedProjects int   `json:"featured_projects"`
	TotalCaseStudies int   `json:"total_case_studies"`
	ResumeDownloads  int64 `json:"resume_downloads"`
	PageViews        int64 `json:"page_views"`
	ProjectViews     int64 `json:"project_views"`
}

// DashboardStats aggregates the content and analytics counts shown on the
// admin dashboard. Project counts exclude archived projects.
func (a *Analytics) DashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	projects, err := a.projectRepo.FindVisible()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	stats.TotalProjects = len(projects)
	for _, project := range projects {
		if project.IsFeatured {
			stats.FeaturedProjects++
		}
	}

	caseStudies, err := a.caseStudyRepo.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "case studies", err)
	}
	stats.TotalCaseStudies = len(caseStudies)

	if stats.ResumeDownloads, err = a.analyticsRepo.CountByType(models.EventResumeDownload); err != nil {
		return nil, errs.NewDatabaseError("count", "resume downloads", err)
	}
	if stats.PageViews, err = a.analyticsRepo.CountByType(models.EventPageView); err != nil {
		return nil, errs.NewDatabaseError("count", "page views", err)
	}
	if stats.ProjectViews, err = a.analyticsRepo.CountByType(models.EventProjectView); err != nil {
		return nil, errs.NewDatabaseError("count", "project views", err)
	}

	return stats, nil
}
