package controllers

import (
	"net/http"
	"time"

	"github.com/hiddenspringfield/shop-backend/api/middleware"
	"github.com/hiddenspringfield/shop-backend/api/responses"
	"github.com/hiddenspringfield/shop-backend/api/validators"
	"github.com/hiddenspringfield/shop-backend/internal/auth"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
	"github.com/hiddenspringfield/shop-backend/pkg/logger"
)

// CookiePolicy controls the admin token cookie.
type CookiePolicy struct {
	Name   string
	Secure bool
}

func (p CookiePolicy) set(w http.ResponseWriter, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	http.SetCookie(w, &http.Cookie{
		Name:     p.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (p CookiePolicy) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// AuthLogin wires the login endpoint into the HTTP layer and sets the admin cookie.
func AuthLogin(svc auth.Service, cookie CookiePolicy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if cookie.Name != "" {
			cookie.set(w, result.Token, result.ExpiresAt)
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthSetup creates the first database admin.
func AuthSetup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SetupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		admin, err := svc.Setup(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, admin)
	}
}

func AuthLogout(cookie CookiePolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie.Name != "" {
			cookie.clear(w)
		}
		responses.WriteSuccess(w, map[string]bool{"loggedOut": true})
	}
}

// AuthMe echoes the admin identity resolved by the auth middleware.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middleware.AdminFromContext(r.Context())
		if username == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
			return
		}
		responses.WriteSuccess(w, auth.AdminDTO{
			Username: username,
			Source:   middleware.AdminSourceFromContext(r.Context()),
		})
	}
}
