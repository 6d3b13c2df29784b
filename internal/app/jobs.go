package app

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/pkg/metrics"
)

// initJob registers the background maintenance schedule.
func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("failed to schedule system monitor: %v", err)
	}

	// nightly blob orphan sweep
	_, err = a.sched.AddFunc("0 3 * * *", func() {
		if !a.GetSettingsBoolValue("flyer", "OrphanSweepEnabled") {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		removed, err := a.flyers.SweepOrphans(ctx)
		if err != nil {
			zap.S().Errorf("orphan sweep failed: %v", err)
			return
		}
		if removed > 0 {
			zap.S().Infof("orphan sweep removed %d blobs", removed)
		}
	})
	if err != nil {
		zap.S().Errorf("failed to schedule orphan sweep: %v", err)
	}

	// prune aged operator logs
	_, err = a.sched.AddFunc("30 4 * * *", func() {
		days := a.GetSettingsInt64Value("system", "OprLogKeepDays")
		if days <= 0 {
			days = 90
		}
		cutoff := time.Now().AddDate(0, 0, -int(days))
		result := a.gormDB.Where("opt_time < ?", cutoff).Delete(&domain.SysOprLog{})
		if result.Error != nil {
			zap.S().Errorf("operator log prune failed: %v", result.Error)
			return
		}
		if result.RowsAffected > 0 {
			zap.S().Infof("pruned %d operator log rows", result.RowsAffected)
		}
	})
	if err != nil {
		zap.S().Errorf("failed to schedule log prune: %v", err)
	}

	a.sched.Start()
}

// SchedSystemMonitorTask samples host CPU and memory usage.
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(cpuuse) > 0 {
		metrics.SetGauge(metrics.SystemCPUUse, int64(cpuuse[0]*100))
	}

	meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge(metrics.SystemMemUse, int64(meminfo.Used/1024/1024))
	}
}

// SchedProcessMonitorTask samples this process's CPU and memory usage.
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge(metrics.AppCPUUse, int64(cpuuse*100))
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge(metrics.AppMemUse, int64(meminfo.RSS/1024/1024))
	}
}
