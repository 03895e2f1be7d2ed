package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kamalsite/backend/internal/sessions"
	"github.com/kamalsite/backend/pkg/logger"
)

// SessionMiddleware loads the shopper's session state before the handler
// runs and writes it back afterwards when a controller marked it dirty.
func SessionMiddleware(store *sessions.Store, cookieName string, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			state, err := store.Load(ctx, sessionID)
			if err != nil {
				// A Redis hiccup should not take down the page; the shopper
				// just loses their saved settings for this request.
				if logg != nil {
					logg.Error(ctx, "session.load_failed", err)
				}
				state = &sessions.State{}
			}

			session := &Session{ID: sessionID, State: state}
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			ctx = WithSession(ctx, session)

			next.ServeHTTP(w, r.WithContext(ctx))

			if session.dirty {
				if err := store.Save(ctx, sessionID, session.State); err != nil && logg != nil {
					logg.Error(ctx, "session.save_failed", err)
				}
			}
		})
	}
}
