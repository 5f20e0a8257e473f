package middleware

import (
	"context"
	"net/http"

	"quickcourt/pkg/model"
)

const ActorKey contextKey = "actor"

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// ActorInjection lifts the gateway-authenticated caller identity out of
// request headers into an explicit Actor on the request context. Requests
// without an identity pass through with no actor; services reject those on
// operations that require one.
func ActorInjection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(HeaderUserID)
			if userID != "" {
				role := r.Header.Get(HeaderUserRole)
				switch role {
				case model.RoleOwner, model.RoleAdmin:
				default:
					role = model.RoleUser
				}
				ctx := context.WithValue(r.Context(), ActorKey, model.Actor{
					UserID: userID,
					Role:   role,
				})
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ActorFromContext returns the request actor, if any.
func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(model.Actor)
	return actor, ok
}
