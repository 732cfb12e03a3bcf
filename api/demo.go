package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

const (
	// demoSessionTTL is how long an idle demo session survives before
	// the registry reclaims it.
	demoSessionTTL = 2 * time.Hour
	// maxDemoSessions caps the registry; at the cap the stalest session
	// is evicted to admit a new one.
	maxDemoSessions = 512
)

// demoSession holds the simulation state for one demo browsing session.
// Mutations land here and never reach persistent storage.
type demoSession struct {
	projects    *database.MemoryProjectStore
	caseStudies *database.MemoryCaseStudyStore

	mu       sync.Mutex
	resume   *models.Resume
	settings models.SiteSettings
	lastSeen time.Time
}

func (s *demoSession) currentResume() *models.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resume == nil {
		return nil
	}
	clone := *s.resume
	return &clone
}

func (s *demoSession) setResume(resume *models.Resume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resume == nil {
		s.resume = nil
		return
	}
	clone := *resume
	s.resume = &clone
}

func (s *demoSession) currentSettings() models.SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *demoSession) setSettings(settings models.SiteSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

type demoSessions struct {
	mu       sync.Mutex
	sessions map[string]*demoSession
}

func newDemoSessions() *demoSessions {
	return &demoSessions{sessions: make(map[string]*demoSession)}
}

// get resumes a demo session by its marker and refreshes its idle timer
func (d *demoSessions) get(id string) (*demoSession, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweep(time.Now())

	session, ok := d.sessions[id]
	if ok {
		session.mu.Lock()
		session.lastSeen = time.Now()
		session.mu.Unlock()
	}
	return session, ok
}

// demoSeed is the durable snapshot a new session starts from.
type demoSeed struct {
	projects    []*models.Project
	caseStudies []*models.CaseStudy
	resume      *models.Resume
	settings    models.SiteSettings
}

// create starts a demo session seeded with the current durable content so
// the demo view begins from real data, then diverges privately.
func (d *demoSessions) create(seed demoSeed) (string, *demoSession) {
	session := &demoSession{
		projects:    database.NewMemoryProjectStore(seed.projects),
		caseStudies: database.NewMemoryCaseStudyStore(seed.caseStudies),
		settings:    seed.settings,
		lastSeen:    time.Now(),
	}
	if seed.resume != nil {
		clone := *seed.resume
		session.resume = &clone
	}

	id := uuid.NewString()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweep(time.Now())
	d.evictStalest()
	d.sessions[id] = session
	return id, session
}

// fromRequest resolves the demo session for a request: the session
// context placed by the admin gate, or the bare session header on
// ungated routes.
func (d *demoSessions) fromRequest(r *http.Request) (*demoSession, bool) {
	if session, ok := sessionFromCtx(r.Context()); ok && session.Demo {
		if demo, found := d.get(session.DemoID); found {
			return demo, true
		}
	}
	if demoID := r.Header.Get(demoSessionHeader); demoID != "" {
		return d.get(demoID)
	}
	return nil, false
}

// sweep drops sessions idle past the TTL. Callers hold d.mu.
func (d *demoSessions) sweep(now time.Time) {
	for id, session := range d.sessions {
		session.mu.Lock()
		expired := now.Sub(session.lastSeen) > demoSessionTTL
		session.mu.Unlock()
		if expired {
			delete(d.sessions, id)
		}
	}
}

// evictStalest makes room at the cap by dropping the least recently
// used session. Callers hold d.mu.
func (d *demoSessions) evictStalest() {
	if len(d.sessions) < maxDemoSessions {
		return
	}

	var stalestID string
	var stalestSeen time.Time
	for id, session := range d.sessions {
		session.mu.Lock()
		seen := session.lastSeen
		session.mu.Unlock()
		if stalestID == "" || seen.Before(stalestSeen) {
			stalestID = id
			stalestSeen = seen
		}
	}
	delete(d.sessions, stalestID)
}
