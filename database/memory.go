package database

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

// MemoryProjectStore is the simulation layer behind demo sessions. It is
// seeded from the durable store at session start and then diverges
// privately; nothing it does ever reaches persistent storage.
type MemoryProjectStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*models.Project
}

func NewMemoryProjectStore(seed []*models.Project) *MemoryProjectStore {
	store := &MemoryProjectStore{projects: make(map[uuid.UUID]*models.Project, len(seed))}
	for _, project := range seed {
		store.projects[project.ID] = cloneProject(project)
	}
	return store
}

func (s *MemoryProjectStore) FindAll() ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ordered(true), nil
}

func (s *MemoryProjectStore) FindVisible() ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ordered(false), nil
}

func (s *MemoryProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return cloneProject(project), nil
}

func (s *MemoryProjectStore) Add(project *models.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return errs.NewValidationError("title")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.Technologies = dedupeTechnologies(project.ID, project.Technologies)

	maxOrder := 0
	for _, existing := range s.projects {
		if existing.DisplayOrder > maxOrder {
			maxOrder = existing.DisplayOrder
		}
	}
	project.DisplayOrder = maxOrder + 1
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	s.projects[project.ID] = cloneProject(project)
	return nil
}

func (s *MemoryProjectStore) Update(project *models.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return errs.NewValidationError("title")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[project.ID]; !ok {
		return errs.NewNotFound("project")
	}
	project.Technologies = dedupeTechnologies(project.ID, project.Technologies)
	project.UpdatedAt = time.Now()
	s.projects[project.ID] = cloneProject(project)
	return nil
}

func (s *MemoryProjectStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

func (s *MemoryProjectStore) SetFeatured(id uuid.UUID, featured bool) error {
	return s.setFlag(id, func(project *models.Project) { project.IsFeatured = featured })
}

func (s *MemoryProjectStore) SetArchived(id uuid.UUID, archived bool) error {
	return s.setFlag(id, func(project *models.Project) { project.IsArchived = archived })
}

func (s *MemoryProjectStore) setFlag(id uuid.UUID, apply func(*models.Project)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return errs.NewNotFound("project")
	}
	apply(project)
	project.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryProjectStore) Reorder(ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) != len(s.projects) {
		return errs.NewInvalidFieldError("order", "must include every project exactly once")
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.projects[id]; !ok || seen[id] {
			return errs.NewInvalidFieldError("order", "must include every project exactly once")
		}
		seen[id] = true
	}

	for position, id := range ids {
		s.projects[id].DisplayOrder = position + 1
	}
	return nil
}

// ordered returns clones sorted by display order, filtered by archived
// state when includeArchived is false.
func (s *MemoryProjectStore) ordered(includeArchived bool) []*models.Project {
	projects := make([]*models.Project, 0, len(s.projects))
	for _, project := range s.projects {
		if !includeArchived && project.IsArchived {
			continue
		}
		projects = append(projects, cloneProject(project))
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].DisplayOrder < projects[j].DisplayOrder
	})
	return projects
}

func cloneProject(project *models.Project) *models.Project {
	clone := *project
	clone.Technologies = make([]models.ProjectTechnology, len(project.Technologies))
	copy(clone.Technologies, project.Technologies)
	return &clone
}

// MemoryCaseStudyStore is the case-study half of the demo simulation layer.
type MemoryCaseStudyStore struct {
	mu          sync.Mutex
	caseStudies map[uuid.UUID]*models.CaseStudy
}

func NewMemoryCaseStudyStore(seed []*models.CaseStudy) *MemoryCaseStudyStore {
	store := &MemoryCaseStudyStore{caseStudies: make(map[uuid.UUID]*models.CaseStudy, len(seed))}
	for _, caseStudy := range seed {
		clone := *caseStudy
		store.caseStudies[caseStudy.ID] = &clone
	}
	return store
}

func (s *MemoryCaseStudyStore) FindAll() ([]*models.CaseStudy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caseStudies := make([]*models.CaseStudy, 0, len(s.caseStudies))
	for _, caseStudy := range s.caseStudies {
		clone := *caseStudy
		caseStudies = append(caseStudies, &clone)
	}
	sort.Slice(caseStudies, func(i, j int) bool {
		return caseStudies[i].CreatedAt.After(caseStudies[j].CreatedAt)
	})
	return caseStudies, nil
}

func (s *MemoryCaseStudyStore) FindByID(id uuid.UUID) (*models.CaseStudy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	caseStudy, ok := s.caseStudies[id]
	if !ok {
		return nil, nil
	}
	clone := *caseStudy
	return &clone, nil
}

func (s *MemoryCaseStudyStore) Add(caseStudy *models.CaseStudy) error {
	if err := validateCaseStudy(caseStudy); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if caseStudy.ID == uuid.Nil {
		caseStudy.ID = uuid.New()
	}
	now := time.Now()
	caseStudy.CreatedAt = now
	caseStudy.UpdatedAt = now
	clone := *caseStudy
	s.caseStudies[caseStudy.ID] = &clone
	return nil
}

func (s *MemoryCaseStudyStore) Update(caseStudy *models.CaseStudy) error {
	if err := validateCaseStudy(caseStudy); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.caseStudies[caseStudy.ID]; !ok {
		return errs.NewNotFound("case study")
	}
	caseStudy.UpdatedAt = time.Now()
	clone := *caseStudy
	s.caseStudies[caseStudy.ID] = &clone
	return nil
}

func (s *MemoryCaseStudyStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.caseStudies, id)
	return nil
}
