package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/internal/flyerstore"
	"github.com/coverlane/coverlane/pkg/common"
	"github.com/coverlane/coverlane/pkg/metrics"
)

// subscribeEvents wires audit logging and counters to flyer lifecycle
// events published by the asset adapter.
func (a *Application) subscribeEvents() {
	err := a.bus.Subscribe(flyerstore.EventUploaded, func(productType string, flyerIndex int, filename string) {
		metrics.Incr(metrics.FlyerUpload)
		a.writeOprLog("flyer_upload", fmt.Sprintf("%s slot %d file %s", productType, flyerIndex, filename))
	})
	if err != nil {
		zap.S().Errorf("failed to subscribe upload events: %v", err)
	}

	err = a.bus.Subscribe(flyerstore.EventDeleted, func(productType string, flyerIndex int, filename string) {
		metrics.Incr(metrics.FlyerDelete)
		a.writeOprLog("flyer_delete", fmt.Sprintf("%s slot %d file %s", productType, flyerIndex, filename))
	})
	if err != nil {
		zap.S().Errorf("failed to subscribe delete events: %v", err)
	}
}

func (a *Application) writeOprLog(action, desc string) {
	err := a.gormDB.Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   a.appConfig.Admin.Username,
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}).Error
	if err != nil {
		zap.S().Errorf("failed to write operator log: %v", err)
	}
}
