package adminapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/coverlane/coverlane/internal/app"
	"github.com/coverlane/coverlane/internal/webserver"
)

// GetApp returns the application context for the request
func GetApp(c echo.Context) app.AppContext {
	return webserver.GetApp(c)
}

// GetDB returns the database handle for the request
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetApp(c).DB()
}

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return webserver.Fail(c, status, code, message, detail)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return webserver.Paged(c, rows, total, page, pageSize)
}

// parsePagination reads page and pageSize query params with sane bounds
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

// InitRouter registers all admin API routes
func InitRouter() {
	registerAuthRoutes()
	registerFlyerRoutes()
	registerProductRoutes()
	registerExportRoutes()
	registerSystemRoutes()
	registerOprLogRoutes()
}
