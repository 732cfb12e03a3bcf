package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/services"
)

// demoSessionHeader carries the marker that resumes a demo session.
const demoSessionHeader = "X-Demo-Session"

type authMiddleware struct {
	auth      *services.AuthService
	database  database.Database
	demos     *demoSessions
	responder Responder
}

func newAuthMiddleware(auth *services.AuthService, db database.Database, demos *demoSessions) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()

	return authMiddleware{
		auth:      auth,
		database:  db,
		demos:     demos,
		responder: NewResponder(logger),
	}
}

// requireAdmin resolves the session context once per request. A bearer
// token must identify an allow-listed admin; a demo marker (or demo=true
// on the initiating request) grants the demo capability instead. With
// neither, the response is a login redirect, not an error.
func (m authMiddleware) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, ok := m.resolveDemo(w, r); ok {
			next.ServeHTTP(w, r.WithContext(ctxWithSession(r.Context(), session)))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.writeLoginRedirect(w)
			return
		}

		userID, err := m.auth.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			m.writeLoginRedirect(w)
			return
		}

		isAdmin, err := m.auth.IsAdmin(userID)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}
		if !isAdmin {
			m.writeLoginRedirect(w)
			return
		}

		session := SessionContext{UserID: userID, IsAdmin: true}
		next.ServeHTTP(w, r.WithContext(ctxWithSession(r.Context(), session)))
	})
}

// resolveDemo resumes an existing demo session or starts a new one when
// the request carries demo=true. New sessions are seeded from the durable
// store and announced via the demo session header.
func (m authMiddleware) resolveDemo(w http.ResponseWriter, r *http.Request) (SessionContext, bool) {
	if demoID := r.Header.Get(demoSessionHeader); demoID != "" {
		if _, ok := m.demos.get(demoID); ok {
			return SessionContext{Demo: true, DemoID: demoID}, true
		}
	}

	if r.URL.Query().Get("demo") != "true" {
		return SessionContext{}, false
	}

	var seed demoSeed
	var err error
	if seed.projects, err = m.database.ProjectRepo().FindAll(); err != nil {
		log.Error().Err(err).Msg("Failed to seed demo session with projects")
	}
	if seed.caseStudies, err = m.database.CaseStudyRepo().FindAll(); err != nil {
		log.Error().Err(err).Msg("Failed to seed demo session with case studies")
	}
	if seed.resume, err = m.database.ResumeRepo().Current(); err != nil {
		log.Error().Err(err).Msg("Failed to seed demo session with resume")
	}
	if settings, err := m.database.SiteSettingsRepo().Get(); err != nil {
		log.Error().Err(err).Msg("Failed to seed demo session with settings")
	} else {
		seed.settings = *settings
	}

	demoID, _ := m.demos.create(seed)
	w.Header().Set(demoSessionHeader, demoID)
	return SessionContext{Demo: true, DemoID: demoID}, true
}

// writeLoginRedirect is the navigation decision for unauthenticated or
// non-admin callers: point the client at the login surface.
func (m authMiddleware) writeLoginRedirect(w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
	m.responder.WriteJSON(w, map[string]string{
		"redirect": "/admin/login",
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
