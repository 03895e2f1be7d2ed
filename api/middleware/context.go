package middleware

import (
	"context"

	"github.com/kamalsite/backend/internal/sessions"
	"github.com/kamalsite/backend/pkg/auth"
)

type contextKey string

const (
	ctxIdentity contextKey = "identity"
	ctxSession  contextKey = "session"
)

// Session is the per-request view of the shopper's session. Controllers
// that mutate State must MarkDirty so the middleware writes it back.
type Session struct {
	ID    string
	State *sessions.State
	dirty bool
}

func (s *Session) MarkDirty() {
	s.dirty = true
}

// IdentityFromContext returns the verified shopper, or nil for anonymous.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*auth.Identity); ok {
		return v
	}
	return nil
}

func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}

func SessionFromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*Session); ok {
		return v
	}
	return nil
}

func WithSession(ctx context.Context, session *Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, session)
}
