package webserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coverlane/coverlane/internal/session"
)

type authMode int

const (
	authModeJSON authMode = iota
	authModeRedirect
)

// AuthGate wraps admin operations. A missing, malformed, expired or
// forged session cookie rejects the request before any handler side
// effect; JSON routes get 401, page routes a login redirect. Valid
// sessions are not refreshed, sessions do not slide.
func (s *WebServer) AuthGate(mode authMode) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return s.rejectAuth(c, mode)
			}
			if !s.codec.Validate(cookie.Value, time.Now(), s.appCtx.Config().Admin.Username) {
				return s.rejectAuth(c, mode)
			}
			return next(c)
		}
	}
}

func (s *WebServer) rejectAuth(c echo.Context, mode authMode) error {
	if mode == authModeRedirect {
		return c.Redirect(http.StatusFound, "/admin/login")
	}
	return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
}

// SetSessionCookie writes the signed session token with the cookie
// attributes the admin contract requires.
func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.MaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie expires the cookie. The token value itself stays
// valid until natural expiry; this only removes it from the browser.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
