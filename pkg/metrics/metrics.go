// Package metrics records lightweight operational counters in an embedded
// time-series store under the application workdir.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/nakabonne/tstorage"
)

const (
	PageView      = "page_view"
	QuoteSubmit   = "quote_submit"
	ContactSubmit = "contact_submit"
	FlyerUpload   = "flyer_upload"
	FlyerDelete   = "flyer_delete"
	SystemCPUUse  = "system_cpuuse"
	SystemMemUse  = "system_memuse"
	AppCPUUse     = "coverlane_cpuuse"
	AppMemUse     = "coverlane_memuse"
)

var (
	storage tstorage.Storage
	mu      sync.Mutex
)

// InitMetrics opens the metrics store under workdir/metrics.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(24*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// Incr records a single occurrence of the named counter.
func Incr(name string) {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: 1},
		},
	})
}

// SetGauge records a sampled value for the named gauge.
func SetGauge(name string, value int64) {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: float64(value)},
		},
	})
}

// Last returns the most recent sample of a gauge within the window, or 0.
func Last(name string, window time.Duration) float64 {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return 0
	}
	end := time.Now().Unix() + 1
	points, err := storage.Select(name, nil, end-int64(window.Seconds()), end)
	if err != nil || len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Value
}

// Summary holds aggregate counter values for a metric over a window.
type Summary struct {
	Metric string  `json:"metric"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
}

// Query summarizes a counter over the given window.
func Query(name string, window time.Duration) Summary {
	mu.Lock()
	defer mu.Unlock()
	out := Summary{Metric: name}
	if storage == nil {
		return out
	}
	end := time.Now().Unix() + 1
	points, err := storage.Select(name, nil, end-int64(window.Seconds()), end)
	if err != nil {
		return out
	}
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
	}
	out.Count = len(values)
	out.Total, _ = stats.Sum(values)
	if len(values) > 0 {
		out.Mean, _ = stats.Mean(values)
	}
	return out
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
