package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"mobimart-storefront/config"
	"mobimart-storefront/internal/domain"
	"mobimart-storefront/internal/store"
)

// SessionMiddleware identifies the visitor through an anonymous cookie and
// attaches their session stores to the request context. The cookie is the
// server-side equivalent of the browsing origin: it scopes cart, favorites
// and preferences to one visitor without any authentication.
type SessionMiddleware struct {
	manager *store.Manager
	cfg     *config.Config
}

func NewSessionMiddleware(manager *store.Manager, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{manager: manager, cfg: cfg}
}

// Handler wraps next so it always sees a session in context.
func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := m.sessionID(r)
		if sid == "" {
			sid = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cfg.SessionCookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(m.cfg.SessionCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   m.cfg.SessionCookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess := m.manager.Session(sid)
		ctx := context.WithValue(r.Context(), domain.SessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(m.cfg.SessionCookieName)
	if err != nil {
		return ""
	}
	// Only accept well-formed IDs; anything else gets a fresh session.
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}
