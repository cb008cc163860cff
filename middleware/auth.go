package middleware

import (
	"context"
	"net/http"
	"strings"

	"vidtube_server/services"
	"vidtube_server/utils"
)

// Private context key type avoids collisions with other packages.
type contextKey struct{ name string }

var actorCtxKey = &contextKey{"actor_id"}

// Auth resolves the acting user from a bearer header or the accessToken
// cookie. Requests without credentials pass through anonymous — read
// endpoints accept them and write endpoints reject the empty actor
// explicitly. A credential that is present but invalid is a hard 401.
func Auth(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ""

			header := r.Header.Get("Authorization")
			if header != "" {
				if !strings.HasPrefix(header, "Bearer ") {
					utils.WriteError(w, utils.NewApiError(http.StatusUnauthorized, "invalid token format"))
					return
				}
				tokenStr = strings.TrimPrefix(header, "Bearer ")
			} else if cookie, err := r.Cookie("accessToken"); err == nil {
				tokenStr = cookie.Value
			}

			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			actorID, err := tokens.ValidateAccessToken(tokenStr)
			if err != nil {
				utils.WriteError(w, utils.NewApiError(http.StatusUnauthorized, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), actorCtxKey, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorID returns the authenticated user ID, or "" for anonymous requests.
// Handlers pass this explicitly into the services; nothing below the HTTP
// boundary reads it from context.
func ActorID(ctx context.Context) string {
	raw, _ := ctx.Value(actorCtxKey).(string)
	return raw
}

// WithActor injects an actor ID directly. Used by tests.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorCtxKey, actorID)
}
