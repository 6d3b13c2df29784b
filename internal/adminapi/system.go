package adminapi

import (
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/coverlane/coverlane/internal/webserver"
	"github.com/coverlane/coverlane/pkg/metrics"
)

// registerSystemRoutes registers the dashboard status endpoints
func registerSystemRoutes() {
	webserver.ApiGET("/system/info", systemInfo)
	webserver.ApiGET("/system/metrics", systemMetrics)
}

func systemInfo(c echo.Context) error {
	uptime, _ := host.Uptime()
	info := map[string]interface{}{
		"go_version":  runtime.Version(),
		"goroutines":  runtime.NumGoroutine(),
		"num_cpu":     runtime.NumCPU(),
		"host_uptime": uptime,
		"server_time": time.Now().Format(time.RFC3339),
		"cpu_percent": metrics.Last(metrics.SystemCPUUse, time.Minute*5) / 100,
		"mem_used_mb": metrics.Last(metrics.SystemMemUse, time.Minute*5),
		"app_cpu":     metrics.Last(metrics.AppCPUUse, time.Minute*5) / 100,
		"app_mem_mb":  metrics.Last(metrics.AppMemUse, time.Minute*5),
	}
	return ok(c, info)
}

// systemMetrics summarizes traffic counters over the last 24 hours
func systemMetrics(c echo.Context) error {
	window := 24 * time.Hour
	return ok(c, []metrics.Summary{
		metrics.Query(metrics.PageView, window),
		metrics.Query(metrics.QuoteSubmit, window),
		metrics.Query(metrics.ContactSubmit, window),
		metrics.Query(metrics.FlyerUpload, window),
		metrics.Query(metrics.FlyerDelete, window),
	})
}
