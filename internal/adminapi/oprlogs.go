package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/internal/webserver"
)

// registerOprLogRoutes registers the operator audit trail listing
func registerOprLogRoutes() {
	webserver.ApiGET("/oprlogs", listOprLogs)
}

func listOprLogs(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.SysOprLog{})
	if action := c.QueryParam("action"); action != "" {
		db = db.Where("opt_action = ?", action)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query logs", err.Error())
	}

	var rows []domain.SysOprLog
	err := db.Order("opt_time DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query logs", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}
