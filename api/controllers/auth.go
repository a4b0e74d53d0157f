package controllers

import (
	"net/http"
	"time"

	"github.com/adirahmanto/craftline-backend/api/middleware"
	"github.com/adirahmanto/craftline-backend/api/responses"
	"github.com/adirahmanto/craftline-backend/api/validators"
	authsvc "github.com/adirahmanto/craftline-backend/internal/auth"
	"github.com/adirahmanto/craftline-backend/pkg/config"
	"github.com/adirahmanto/craftline-backend/pkg/enums"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
)

// Login exchanges an identity-provider token for a session cookie.
func Login(svc authsvc.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(cfg, result.SessionID, cfg.TTL))
		responses.WriteSuccess(w, result)
	}
}

// Logout revokes the session and clears the cookie.
func Logout(svc authsvc.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(cfg, "", -time.Hour))
		responses.WriteSuccess(w, map[string]string{"status": "logged out"})
	}
}

type roleRequest struct {
	Role enums.Role `json:"role" validate:"required"`
}

// UpdateUserRole changes another user's authorization level.
func UpdateUserRole(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload roleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.SetRole(r.Context(), userID, payload.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// Me returns the authenticated application user.
func Me(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func sessionCookie(cfg config.SessionConfig, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	} else {
		cookie.MaxAge = -1
	}
	return cookie
}
