package database

import (
	"testing"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

func TestMemoryProjectStore_MutationsNeverReachDurableStore(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	seeded := addProject(t, repo, "Alpha")
	addProject(t, repo, "Beta")

	durable, err := repo.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	memory := NewMemoryProjectStore(durable)

	// Mutate the session copy every way we can
	if err := memory.Delete(seeded.ID); err != nil {
		t.Fatalf("delete in memory: %v", err)
	}
	if err := memory.Add(&models.Project{Title: "Demo Only", Description: "d"}); err != nil {
		t.Fatalf("add in memory: %v", err)
	}

	// The durable store is untouched
	after, err := repo.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("durable count = %d, expected 2", len(after))
	}
	for _, project := range after {
		if project.Title == "Demo Only" {
			t.Error("demo addition leaked into the durable store")
		}
	}
	found, err := repo.FindByID(seeded.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found == nil {
		t.Error("demo deletion leaked into the durable store")
	}
}

func TestMemoryProjectStore_SeedIsDeepCopied(t *testing.T) {
	seed := []*models.Project{{
		ID:           uuid.New(),
		Title:        "Alpha",
		DisplayOrder: 1,
		Technologies: []models.ProjectTechnology{{ID: uuid.New(), Value: "Go"}},
	}}
	memory := NewMemoryProjectStore(seed)

	got, err := memory.FindByID(seed[0].ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	got.Title = "Mutated"
	got.Technologies[0].Value = "Mutated"

	again, err := memory.FindByID(seed[0].ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if again.Title != "Alpha" || again.Technologies[0].Value != "Go" {
		t.Error("returned projects should be clones, not shared references")
	}
}

func TestMemoryProjectStore_AddAppendsToOrder(t *testing.T) {
	memory := NewMemoryProjectStore([]*models.Project{
		{ID: uuid.New(), Title: "Alpha", DisplayOrder: 1},
		{ID: uuid.New(), Title: "Beta", DisplayOrder: 2},
	})

	project := &models.Project{Title: "Gamma"}
	if err := memory.Add(project); err != nil {
		t.Fatalf("add: %v", err)
	}
	if project.DisplayOrder != 3 {
		t.Errorf("DisplayOrder = %d, expected 3", project.DisplayOrder)
	}
}

func TestMemoryProjectStore_ReorderValidatesSet(t *testing.T) {
	a := &models.Project{ID: uuid.New(), Title: "Alpha", DisplayOrder: 1}
	b := &models.Project{ID: uuid.New(), Title: "Beta", DisplayOrder: 2}
	memory := NewMemoryProjectStore([]*models.Project{a, b})

	if err := memory.Reorder([]uuid.UUID{b.ID}); !errs.IsValidation(err) {
		t.Errorf("partial list: expected validation error, got %v", err)
	}

	if err := memory.Reorder([]uuid.UUID{b.ID, a.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	ordered, err := memory.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if ordered[0].Title != "Beta" || ordered[1].Title != "Alpha" {
		t.Errorf("order after reorder = [%s, %s], expected [Beta, Alpha]", ordered[0].Title, ordered[1].Title)
	}
}

func TestMemoryProjectStore_FindVisibleSkipsArchived(t *testing.T) {
	a := &models.Project{ID: uuid.New(), Title: "Alpha", DisplayOrder: 1}
	b := &models.Project{ID: uuid.New(), Title: "Beta", DisplayOrder: 2}
	memory := NewMemoryProjectStore([]*models.Project{a, b})

	if err := memory.SetArchived(a.ID, true); err != nil {
		t.Fatalf("archive: %v", err)
	}
	visible, err := memory.FindVisible()
	if err != nil {
		t.Fatalf("find visible: %v", err)
	}
	if len(visible) != 1 || visible[0].Title != "Beta" {
		t.Errorf("visible = %d projects, expected only Beta", len(visible))
	}
}

func TestMemoryCaseStudyStore_IsolatedFromSeed(t *testing.T) {
	seed := []*models.CaseStudy{{ID: uuid.New(), Title: "Study", Overview: "o"}}
	memory := NewMemoryCaseStudyStore(seed)

	if err := memory.Delete(seed[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if seed[0].Title != "Study" {
		t.Error("seed slice should be untouched")
	}

	if err := memory.Add(&models.CaseStudy{Title: "New", Overview: "n"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	all, err := memory.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 1 || all[0].Title != "New" {
		t.Errorf("expected only the added case study, got %d", len(all))
	}
}

func TestMemoryCaseStudyStore_ValidatesRequiredFields(t *testing.T) {
	memory := NewMemoryCaseStudyStore(nil)

	if err := memory.Add(&models.CaseStudy{Overview: "o"}); !errs.IsValidation(err) {
		t.Errorf("missing title: expected validation error, got %v", err)
	}
	if err := memory.Add(&models.CaseStudy{Title: "t"}); !errs.IsValidation(err) {
		t.Errorf("missing overview: expected validation error, got %v", err)
	}
}
