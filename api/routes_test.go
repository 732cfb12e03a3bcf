package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

type testServer struct {
	router    *chi.Mux
	db        database.Database
	gormDB    *gorm.DB
	auth      *services.AuthService
	uploadDir string
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(t.TempDir()+"/portfolio.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := models.AutoMigrate(gormDB); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	db := database.New(gormDB)
	auth := services.NewAuthService(db, []byte("test-secret"), time.Hour)
	uploadDir := t.TempDir()
	storage := services.NewLocalStorage(uploadDir, "/uploads")

	return testServer{
		router:    newRouter(db, auth, storage),
		db:        db,
		gormDB:    gormDB,
		auth:      auth,
		uploadDir: uploadDir,
	}
}

func (s testServer) adminToken(t *testing.T) string {
	t.Helper()

	token, _, err := s.auth.SignUp(fmt.Sprintf("admin-%d@example.com", time.Now().UnixNano()), "hunter22")
	if err != nil {
		t.Fatalf("sign up admin: %v", err)
	}
	return token
}

func (s testServer) do(t *testing.T, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range header {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(recorder.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
	return out
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// startDemo mints a demo session and returns the header that resumes it
func (s testServer) startDemo(t *testing.T) map[string]string {
	t.Helper()

	recorder := s.do(t, http.MethodGet, "/admin/projects?demo=true", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("start demo status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	demoID := recorder.Header().Get("X-Demo-Session")
	if demoID == "" {
		t.Fatal("demo session marker header missing")
	}
	return map[string]string{"X-Demo-Session": demoID}
}

// uploadPDF posts a small PDF to /admin/resume as a multipart form
func (s testServer) uploadPDF(t *testing.T, filename string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 test resume")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for key, value := range header {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func TestAdminRoutesRedirectWithoutSession(t *testing.T) {
	server := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/projects"},
		{http.MethodGet, "/admin/analytics"},
		{http.MethodGet, "/admin/dashboard"},
		{http.MethodPut, "/admin/settings"},
	}
	for _, tc := range paths {
		recorder := server.do(t, tc.method, tc.path, nil, nil)
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, expected 401", tc.method, tc.path, recorder.Code)
			continue
		}
		body := decodeBody[map[string]string](t, recorder)
		if body["redirect"] != "/admin/login" {
			t.Errorf("%s %s redirect = %q, expected /admin/login", tc.method, tc.path, body["redirect"])
		}
	}
}

func TestAdminRoutesRejectForgedToken(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodGet, "/admin/projects", nil, bearer("forged"))
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, expected 401", recorder.Code)
	}
}

func TestProjectLifecycleThroughAPI(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	// Create
	recorder := server.do(t, http.MethodPost, "/admin/projects", map[string]any{
		"title":        "Alpha",
		"description":  "A project",
		"technologies": []string{"Go", "Postgres"},
	}, bearer(token))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	created := decodeBody[models.Project](t, recorder)
	if created.DisplayOrder != 1 {
		t.Errorf("DisplayOrder = %d, expected 1", created.DisplayOrder)
	}

	// Visible publicly
	recorder = server.do(t, http.MethodGet, "/projects", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("public list status = %d", recorder.Code)
	}
	collection := decodeBody[ProjectCollection](t, recorder)
	if collection.Total != 1 {
		t.Fatalf("public total = %d, expected 1", collection.Total)
	}

	// Archive hides it from the public list, not the admin list
	recorder = server.do(t, http.MethodPut, fmt.Sprintf("/admin/projects/%s/archive", created.ID),
		map[string]bool{"is_archived": true}, bearer(token))
	if recorder.Code != http.StatusOK {
		t.Fatalf("archive status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	recorder = server.do(t, http.MethodGet, "/projects", nil, nil)
	collection = decodeBody[ProjectCollection](t, recorder)
	if collection.Total != 0 {
		t.Errorf("public total after archive = %d, expected 0", collection.Total)
	}
	recorder = server.do(t, http.MethodGet, "/admin/projects", nil, bearer(token))
	collection = decodeBody[ProjectCollection](t, recorder)
	if collection.Total != 1 {
		t.Errorf("admin total after archive = %d, expected 1", collection.Total)
	}

	// Delete
	recorder = server.do(t, http.MethodDelete, "/admin/projects/"+created.ID.String(), nil, bearer(token))
	if recorder.Code != http.StatusOK {
		t.Fatalf("delete status = %d", recorder.Code)
	}
	recorder = server.do(t, http.MethodGet, "/projects/"+created.ID.String(), nil, nil)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("get deleted project status = %d, expected 404", recorder.Code)
	}
}

func TestCreateProjectWithoutTitle(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	recorder := server.do(t, http.MethodPost, "/admin/projects", map[string]any{
		"description": "no title",
	}, bearer(token))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400, body %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody[map[string]any](t, recorder)
	if body["field"] != "title" {
		t.Errorf("field = %v, expected title", body["field"])
	}
}

func TestDemoSessionIsolation(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	// Seed one durable project
	recorder := server.do(t, http.MethodPost, "/admin/projects", map[string]any{
		"title": "Durable", "description": "d",
	}, bearer(token))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("seed status = %d", recorder.Code)
	}

	// Starting a demo session announces the marker
	recorder = server.do(t, http.MethodGet, "/admin/projects?demo=true", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("demo list status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	demoID := recorder.Header().Get("X-Demo-Session")
	if demoID == "" {
		t.Fatal("demo session marker header missing")
	}
	collection := decodeBody[ProjectCollection](t, recorder)
	if collection.Total != 1 {
		t.Errorf("demo view seeded with %d projects, expected 1", collection.Total)
	}

	// Mutations in the demo session stay in the demo session
	demoHeader := map[string]string{"X-Demo-Session": demoID}
	recorder = server.do(t, http.MethodPost, "/admin/projects", map[string]any{
		"title": "Demo Only", "description": "d",
	}, demoHeader)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("demo create status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	recorder = server.do(t, http.MethodGet, "/admin/projects", nil, demoHeader)
	collection = decodeBody[ProjectCollection](t, recorder)
	if collection.Total != 2 {
		t.Errorf("demo total = %d, expected 2", collection.Total)
	}

	// The durable store and the public surface are untouched
	recorder = server.do(t, http.MethodGet, "/admin/projects", nil, bearer(token))
	collection = decodeBody[ProjectCollection](t, recorder)
	if collection.Total != 1 {
		t.Errorf("durable total = %d, demo mutation leaked", collection.Total)
	}
	recorder = server.do(t, http.MethodGet, "/projects", nil, nil)
	collection = decodeBody[ProjectCollection](t, recorder)
	if collection.Total != 1 {
		t.Errorf("public total = %d, demo mutation leaked", collection.Total)
	}
}

func TestUnknownDemoMarkerIsNotASession(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodGet, "/admin/projects", nil,
		map[string]string{"X-Demo-Session": "11111111-2222-3333-4444-555555555555"})
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, expected 401 for an unknown marker", recorder.Code)
	}
}

func TestMoveProjectGesture(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		recorder := server.do(t, http.MethodPost, "/admin/projects", map[string]any{
			"title": title, "description": "d",
		}, bearer(token))
		if recorder.Code != http.StatusCreated {
			t.Fatalf("seed %s status = %d", title, recorder.Code)
		}
	}

	recorder := server.do(t, http.MethodPost, "/admin/projects/move",
		map[string]int{"from": 0, "to": 2}, bearer(token))
	if recorder.Code != http.StatusOK {
		t.Fatalf("move status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	result := decodeBody[MoveResult](t, recorder)
	if result.State != "committed" {
		t.Errorf("state = %q, expected committed", result.State)
	}
	wantTitles := []string{"Beta", "Gamma", "Alpha"}
	for i, want := range wantTitles {
		if result.Projects[i].Title != want {
			t.Fatalf("position %d = %q, expected %q", i, result.Projects[i].Title, want)
		}
	}

	// Out-of-range gestures are rejected before anything moves
	recorder = server.do(t, http.MethodPost, "/admin/projects/move",
		map[string]int{"from": 0, "to": 9}, bearer(token))
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("out-of-range move status = %d, expected 400", recorder.Code)
	}
}

func TestEventEndpointsAccept(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodPost, "/events/page-view",
		map[string]string{"page_path": "/about"}, nil)
	if recorder.Code != http.StatusAccepted {
		t.Errorf("page view status = %d, expected 202", recorder.Code)
	}

	recorder = server.do(t, http.MethodPost, "/events/page-view", map[string]string{}, nil)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("empty page view status = %d, expected 400", recorder.Code)
	}

	recorder = server.do(t, http.MethodPost, "/events/resume-download", nil, nil)
	if recorder.Code != http.StatusAccepted {
		t.Errorf("resume download status = %d, expected 202", recorder.Code)
	}

	// Recorded events surface in the admin summary
	token := server.adminToken(t)
	summaryRecorder := server.do(t, http.MethodGet, "/admin/analytics", nil, bearer(token))
	if summaryRecorder.Code != http.StatusOK {
		t.Fatalf("analytics status = %d", summaryRecorder.Code)
	}
	summary := decodeBody[services.Summary](t, summaryRecorder)
	if summary.TotalPageViews != 1 {
		t.Errorf("TotalPageViews = %d, expected 1", summary.TotalPageViews)
	}
	if summary.TotalResumeDownloads != 1 {
		t.Errorf("TotalResumeDownloads = %d, expected 1", summary.TotalResumeDownloads)
	}
}

func TestResumeAbsenceIsEmptyState(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodGet, "/resume", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200 when no resume exists", recorder.Code)
	}
	body := decodeBody[map[string]*models.Resume](t, recorder)
	if body["resume"] != nil {
		t.Errorf("resume = %+v, expected null", body["resume"])
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	recorder := server.do(t, http.MethodPut, "/admin/settings", map[string]string{
		"github_url": "https://github.com/rpupo63",
		"email":      "owner@example.com",
	}, bearer(token))
	if recorder.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	recorder = server.do(t, http.MethodGet, "/settings", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("get status = %d", recorder.Code)
	}
	settings := decodeBody[models.SiteSettings](t, recorder)
	if settings.GithubURL != "https://github.com/rpupo63" {
		t.Errorf("GithubURL = %q", settings.GithubURL)
	}
	if settings.Email != "owner@example.com" {
		t.Errorf("Email = %q", settings.Email)
	}
}

func TestSelfPromotionIsIdempotent(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	// Sign-up already promoted, so this is the no-op path
	recorder := server.do(t, http.MethodPost, "/admin/promote",
		map[string]string{"email": "owner@example.com"}, bearer(token))
	if recorder.Code != http.StatusOK {
		t.Fatalf("promote status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody[map[string]any](t, recorder)
	if created, ok := body["created"].(bool); !ok || created {
		t.Errorf("created = %v, expected false for an existing admin", body["created"])
	}

	// Without a token the request is rejected, not redirected
	recorder = server.do(t, http.MethodPost, "/admin/promote",
		map[string]string{"email": "owner@example.com"}, nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated promote status = %d, expected 401", recorder.Code)
	}
}

func TestCaseStudyWeakReference(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	recorder := server.do(t, http.MethodPost, "/admin/projects", map[string]any{
		"title": "Alpha", "description": "d",
	}, bearer(token))
	project := decodeBody[models.Project](t, recorder)

	recorder = server.do(t, http.MethodPost, "/admin/case-studies", map[string]any{
		"title":      "Building Alpha",
		"overview":   "How it went",
		"project_id": project.ID,
	}, bearer(token))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create case study status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	caseStudy := decodeBody[models.CaseStudy](t, recorder)

	// While the project exists, the reference resolves to its title
	recorder = server.do(t, http.MethodGet, "/case-studies/"+caseStudy.ID.String(), nil, nil)
	annotated := decodeBody[CaseStudyWithProject](t, recorder)
	if annotated.ProjectTitle == nil || *annotated.ProjectTitle != "Alpha" {
		t.Error("expected the project title annotation")
	}

	// Deleting the project leaves the case study with an unresolved reference
	recorder = server.do(t, http.MethodDelete, "/admin/projects/"+project.ID.String(), nil, bearer(token))
	if recorder.Code != http.StatusOK {
		t.Fatalf("delete project status = %d", recorder.Code)
	}
	recorder = server.do(t, http.MethodGet, "/case-studies/"+caseStudy.ID.String(), nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("get case study status = %d, a dangling reference is not an error", recorder.Code)
	}
	annotated = decodeBody[CaseStudyWithProject](t, recorder)
	if annotated.ProjectTitle != nil {
		t.Errorf("ProjectTitle = %q, expected the annotation omitted", *annotated.ProjectTitle)
	}
}

func TestDemoMoveSurvivesRelist(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		recorder := server.do(t, http.MethodPost, "/admin/projects", map[string]any{
			"title": title, "description": "d",
		}, bearer(token))
		if recorder.Code != http.StatusCreated {
			t.Fatalf("seed %s status = %d", title, recorder.Code)
		}
	}

	demoHeader := server.startDemo(t)

	recorder := server.do(t, http.MethodPost, "/admin/projects/move",
		map[string]int{"from": 0, "to": 2}, demoHeader)
	if recorder.Code != http.StatusOK {
		t.Fatalf("demo move status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	result := decodeBody[MoveResult](t, recorder)
	if result.State != "committed" {
		t.Fatalf("state = %q, expected committed", result.State)
	}

	// The gesture is visible on the next request in the same session
	recorder = server.do(t, http.MethodGet, "/admin/projects", nil, demoHeader)
	collection := decodeBody[ProjectCollection](t, recorder)
	wantTitles := []string{"Beta", "Gamma", "Alpha"}
	for i, want := range wantTitles {
		if collection.Projects[i].Title != want {
			t.Errorf("demo position %d = %q, expected %q", i, collection.Projects[i].Title, want)
		}
	}

	// The durable order never moved
	recorder = server.do(t, http.MethodGet, "/admin/projects", nil, bearer(token))
	collection = decodeBody[ProjectCollection](t, recorder)
	wantTitles = []string{"Alpha", "Beta", "Gamma"}
	for i, want := range wantTitles {
		if collection.Projects[i].Title != want {
			t.Errorf("durable position %d = %q, expected %q", i, collection.Projects[i].Title, want)
		}
	}
}

func TestDemoResumeLifecycle(t *testing.T) {
	server := newTestServer(t)
	demoHeader := server.startDemo(t)

	recorder := server.uploadPDF(t, "demo.pdf", demoHeader)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("demo upload status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody[map[string]any](t, recorder)
	if simulated, ok := body["simulated"].(bool); !ok || !simulated {
		t.Errorf("simulated = %v, expected true", body["simulated"])
	}

	// The simulated upload is visible within the session
	recorder = server.do(t, http.MethodGet, "/resume", nil, demoHeader)
	resumeBody := decodeBody[map[string]*models.Resume](t, recorder)
	if resumeBody["resume"] == nil || resumeBody["resume"].Filename != "demo.pdf" {
		t.Fatalf("demo resume = %+v, expected demo.pdf", resumeBody["resume"])
	}

	// Nothing landed durably: no binary and no row
	entries, err := os.ReadDir(filepath.Join(server.uploadDir, "resumes"))
	if err == nil && len(entries) > 0 {
		t.Errorf("demo upload wrote %d binaries durably", len(entries))
	}
	recorder = server.do(t, http.MethodGet, "/resume", nil, nil)
	resumeBody = decodeBody[map[string]*models.Resume](t, recorder)
	if resumeBody["resume"] != nil {
		t.Errorf("durable resume = %+v, demo upload leaked", resumeBody["resume"])
	}

	// Deleting clears the session record, and a second delete is a 404
	recorder = server.do(t, http.MethodDelete, "/admin/resume", nil, demoHeader)
	if recorder.Code != http.StatusOK {
		t.Fatalf("demo delete status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	recorder = server.do(t, http.MethodGet, "/resume", nil, demoHeader)
	resumeBody = decodeBody[map[string]*models.Resume](t, recorder)
	if resumeBody["resume"] != nil {
		t.Errorf("demo resume after delete = %+v, expected null", resumeBody["resume"])
	}
	recorder = server.do(t, http.MethodDelete, "/admin/resume", nil, demoHeader)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("second demo delete status = %d, expected 404", recorder.Code)
	}
}

func TestDemoSettingsStayInSession(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	recorder := server.do(t, http.MethodPut, "/admin/settings", map[string]string{
		"email": "owner@example.com",
	}, bearer(token))
	if recorder.Code != http.StatusOK {
		t.Fatalf("durable update status = %d", recorder.Code)
	}

	// The demo session starts from the durable snapshot
	demoHeader := server.startDemo(t)
	recorder = server.do(t, http.MethodGet, "/settings", nil, demoHeader)
	settings := decodeBody[models.SiteSettings](t, recorder)
	if settings.Email != "owner@example.com" {
		t.Errorf("seeded demo email = %q, expected owner@example.com", settings.Email)
	}

	// A demo write diverges the session copy, last write wins
	recorder = server.do(t, http.MethodPut, "/admin/settings", map[string]string{
		"email": "demo@example.com",
	}, demoHeader)
	if recorder.Code != http.StatusOK {
		t.Fatalf("demo update status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody[map[string]any](t, recorder)
	if simulated, ok := body["simulated"].(bool); !ok || !simulated {
		t.Errorf("simulated = %v, expected true", body["simulated"])
	}

	recorder = server.do(t, http.MethodGet, "/settings", nil, demoHeader)
	settings = decodeBody[models.SiteSettings](t, recorder)
	if settings.Email != "demo@example.com" {
		t.Errorf("demo email = %q, expected demo@example.com", settings.Email)
	}

	// The durable row is untouched
	recorder = server.do(t, http.MethodGet, "/settings", nil, nil)
	settings = decodeBody[models.SiteSettings](t, recorder)
	if settings.Email != "owner@example.com" {
		t.Errorf("durable email = %q, demo write leaked", settings.Email)
	}
}

func TestFailedResumeReplaceRemovesBinary(t *testing.T) {
	server := newTestServer(t)
	token := server.adminToken(t)

	// Block the insert so the replacement fails after the binary is stored
	err := server.gormDB.Exec(`CREATE TRIGGER block_resume_insert BEFORE INSERT ON resumes
		BEGIN SELECT RAISE(ABORT, 'insert blocked'); END`).Error
	if err != nil {
		t.Fatalf("install trigger: %v", err)
	}

	recorder := server.uploadPDF(t, "resume.pdf", bearer(token))
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("upload status = %d, expected 500, body %s", recorder.Code, recorder.Body.String())
	}

	// The freshly stored binary must not be left orphaned
	entries, err := os.ReadDir(filepath.Join(server.uploadDir, "resumes"))
	if err == nil && len(entries) > 0 {
		t.Errorf("found %d orphaned binaries after a failed replacement", len(entries))
	}
}
