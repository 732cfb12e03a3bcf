package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-admin-backend/models"
)

func backdate(session *demoSession, age time.Duration) {
	session.mu.Lock()
	session.lastSeen = time.Now().Add(-age)
	session.mu.Unlock()
}

func TestDemoSessionExpiresWhenIdle(t *testing.T) {
	demos := newDemoSessions()

	id, session := demos.create(demoSeed{})
	if _, ok := demos.get(id); !ok {
		t.Fatal("fresh session not resumable")
	}

	backdate(session, demoSessionTTL+time.Minute)
	if _, ok := demos.get(id); ok {
		t.Error("idle session survived past its TTL")
	}
	if len(demos.sessions) != 0 {
		t.Errorf("registry holds %d sessions after the sweep, expected 0", len(demos.sessions))
	}
}

func TestDemoSessionUseRefreshesIdleTimer(t *testing.T) {
	demos := newDemoSessions()

	id, session := demos.create(demoSeed{})
	backdate(session, demoSessionTTL-time.Minute)

	// Resuming the session resets the timer, so it outlives the original TTL
	if _, ok := demos.get(id); !ok {
		t.Fatal("session expired before its TTL")
	}
	if _, ok := demos.get(id); !ok {
		t.Error("refreshed session expired")
	}
}

func TestDemoRegistryEvictsStalestAtCap(t *testing.T) {
	demos := newDemoSessions()

	stalestID, stalest := demos.create(demoSeed{})
	backdate(stalest, time.Hour)
	for i := 1; i < maxDemoSessions; i++ {
		demos.create(demoSeed{})
	}
	if len(demos.sessions) != maxDemoSessions {
		t.Fatalf("registry holds %d sessions, expected %d", len(demos.sessions), maxDemoSessions)
	}

	// Admitting one more displaces the least recently used session
	freshID, _ := demos.create(demoSeed{})
	if len(demos.sessions) != maxDemoSessions {
		t.Errorf("registry holds %d sessions after eviction, expected %d", len(demos.sessions), maxDemoSessions)
	}
	if _, ok := demos.get(stalestID); ok {
		t.Error("stalest session survived the eviction")
	}
	if _, ok := demos.get(freshID); !ok {
		t.Error("fresh session missing after eviction")
	}
}

func TestDemoSessionResumeIsCopied(t *testing.T) {
	demos := newDemoSessions()
	_, session := demos.create(demoSeed{})

	if session.currentResume() != nil {
		t.Fatal("unseeded session has a resume")
	}

	original := sampleResume("first.pdf")
	session.setResume(original)
	original.Filename = "mutated.pdf"

	got := session.currentResume()
	if got == nil || got.Filename != "first.pdf" {
		t.Errorf("resume = %+v, expected the stored copy unaffected by caller mutation", got)
	}

	session.setResume(nil)
	if session.currentResume() != nil {
		t.Error("resume survived being cleared")
	}
}

func sampleResume(filename string) *models.Resume {
	return &models.Resume{
		Filename: filename,
		FileURL:  fmt.Sprintf("/demo/resumes/%s", filename),
	}
}
