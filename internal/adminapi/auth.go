package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/internal/session"
	"github.com/coverlane/coverlane/internal/webserver"
	"github.com/coverlane/coverlane/pkg/common"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// registerAuthRoutes registers login and logout outside the auth gate;
// everything else under /admin/api passes through it.
func registerAuthRoutes() {
	webserver.NoAuthPOST("/admin/api/auth/login", adminLogin)
	webserver.NoAuthPOST("/admin/api/auth/logout", adminLogout)
	webserver.ApiGET("/auth/session", adminSession)
}

func adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	cfg := GetApp(c).Config()
	if payload.Username != cfg.Admin.Username {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}

	var opr domain.SysOpr
	if err := GetDB(c).Where("username = ? and status = ?", payload.Username, common.ENABLED).First(&opr).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}
	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if !common.SecureEqual(hashed, opr.Password) {
		zap.S().Warnf("failed admin login for %s from %s", payload.Username, c.RealIP())
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
	}

	token, err := webserver.Instance().Codec().Issue(payload.Username, time.Now())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed", err.Error())
	}
	webserver.SetSessionCookie(c, token)

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).Update("last_login", time.Now())
	zap.S().Infof("admin %s logged in from %s", payload.Username, c.RealIP())
	return ok(c, map[string]interface{}{"username": payload.Username})
}

// adminLogout clears the cookie; the token stays valid until natural
// expiry since there is no server-side session store.
func adminLogout(c echo.Context) error {
	webserver.ClearSessionCookie(c)
	return ok(c, nil)
}

// adminSession reports the authenticated identity; reaching it at all
// means the gate accepted the cookie.
func adminSession(c echo.Context) error {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
	}
	username, issuedAt, err := webserver.Instance().Codec().Decode(cookie.Value)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
	}
	return ok(c, map[string]interface{}{
		"username":   username,
		"issued_at":  issuedAt.Format(time.RFC3339),
		"expires_at": issuedAt.Add(session.MaxAge).Format(time.RFC3339),
	})
}
