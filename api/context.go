package api

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const sessionKey keyType = "session"

// SessionContext carries one request's identity decision: who the caller
// is, whether they hold admin capability, and whether this is a demo
// session whose content mutations go to the simulation layer instead of
// the durable store. It is resolved once by the auth middleware and
// threaded through the request context; nothing reads an ambient flag.
type SessionContext struct {
	UserID  uuid.UUID
	IsAdmin bool
	Demo    bool
	DemoID  string
}

// ctxWithSession adds a session context to the request context
func ctxWithSession(ctx context.Context, session SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// sessionFromCtx retrieves the session context placed by the middleware
func sessionFromCtx(ctx context.Context) (SessionContext, bool) {
	session, ok := ctx.Value(sessionKey).(SessionContext)
	return session, ok
}
