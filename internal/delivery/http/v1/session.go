package v1

import (
	"net/http"

	"mobimart-storefront/internal/domain"
	"mobimart-storefront/internal/store"
)

// sessionFrom pulls the visitor's session out of the request context. The
// session middleware guarantees it is present on session-scoped routes.
func sessionFrom(r *http.Request) (*store.Session, bool) {
	sess, ok := r.Context().Value(domain.SessionContextKey).(*store.Session)
	return sess, ok
}
