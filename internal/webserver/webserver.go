package webserver

import (
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/coverlane/coverlane/internal/app"
	"github.com/coverlane/coverlane/internal/session"
)

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	codec  *session.Codec
	api    *echo.Group
	admin  *echo.Group
}

var server *WebServer

// Init builds the echo server with logging, recovery, body limits and the
// admin auth gate. Call before registering any routes.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = &jsoniterSerializer{}
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("16M"))
	e.Use(requestLogger())

	server = &WebServer{
		appCtx: appCtx,
		root:   e,
		codec:  session.NewCodec(appCtx.Config().Web.Secret),
	}
	e.Use(server.injectContext)

	server.api = e.Group("/api")
	server.admin = e.Group("/admin/api", server.AuthGate(authModeJSON))
	return server
}

// Instance returns the initialized server.
func Instance() *WebServer {
	return server
}

func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Codec() *session.Codec {
	return s.codec
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.appCtx.Config().Web.Host, s.appCtx.Config().Web.Port)
	zap.S().Infof("starting web server on %s", addr)
	return s.root.Start(addr)
}

const (
	ctxAppKey = "coverlane_app"
)

func (s *WebServer) injectContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(ctxAppKey, s.appCtx)
		return next(c)
	}
}

// GetApp returns the application context stashed on the request.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(ctxAppKey).(app.AppContext)
}

// Public API route helpers.

func PubGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// Admin API route helpers; all pass through the auth gate except the
// auth endpoints themselves, registered with NoAuth variants.

func ApiGET(path string, h echo.HandlerFunc) {
	server.admin.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.admin.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.admin.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.admin.DELETE(path, h)
}

func NoAuthPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// PageGET registers an HTML page route; failed auth on gated pages
// redirects to the login view instead of returning JSON.
func PageGET(path string, h echo.HandlerFunc, gated bool) {
	if gated {
		server.root.GET(path, h, server.AuthGate(authModeRedirect))
		return
	}
	server.root.GET(path, h)
}

// SetRenderer installs the HTML template renderer.
func SetRenderer(r echo.Renderer) {
	server.root.Renderer = r
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				zap.L().Warn("http request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Error(v.Error))
				return nil
			}
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	})
}

// jsoniterSerializer swaps echo's JSON codec for jsoniter.
type jsoniterSerializer struct{}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (jsoniterSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsoniterSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if err == io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, "empty request body").SetInternal(err)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("malformed request body: %v", err)).SetInternal(err)
	}
	return nil
}
