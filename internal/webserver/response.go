package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Response is the structured envelope every JSON endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PagedResponse wraps list endpoints with pagination info.
type PagedResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// OK returns a success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Fail converts an operation failure to a structured error payload. The
// detail is logged server-side and never returned to the caller.
func Fail(c echo.Context, status int, code, message string, detail interface{}) error {
	if detail != nil {
		zap.L().Error("request failed",
			zap.String("uri", c.Request().RequestURI),
			zap.String("code", code),
			zap.Any("detail", detail))
	}
	return c.JSON(status, Response{Success: false, Code: code, Message: message})
}

// Paged returns a page of rows with totals.
func Paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, PagedResponse{
		Success:  true,
		Data:     rows,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
