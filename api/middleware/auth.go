package middleware

import (
	"errors"
	"net/http"

	"github.com/adirahmanto/craftline-backend/api/responses"
	"github.com/adirahmanto/craftline-backend/pkg/auth/session"
	"github.com/adirahmanto/craftline-backend/pkg/config"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
)

// Auth resolves the session cookie and seeds the request context with the
// authenticated principal.
func Auth(cfg config.SessionConfig, resolver session.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			sess, err := resolver.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrSessionNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}

			ctx := WithPrincipal(r.Context(), sess.UserID, sess.Role, cookie.Value)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    sess.UserID.String(),
					"actor_role": string(sess.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
