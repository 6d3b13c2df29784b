package app

import (
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/coverlane/coverlane/config"
	"github.com/coverlane/coverlane/internal/domain"
	"github.com/coverlane/coverlane/pkg/common"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	loglevel := gormlogger.Silent
	if cfg.Debug {
		loglevel = gormlogger.Info
	}
	switch cfg.Type {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(path.Join(workdir, "data", "coverlane.db")), &gorm.Config{
			Logger: gormlogger.Default.LogMode(loglevel),
		})
		if err != nil {
			panic(err)
		}
		return db
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=Asia/Shanghai",
			cfg.Host, cfg.User, cfg.Passwd, cfg.Name, cfg.Port)
		pgdb, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			Logger: gormlogger.Default.LogMode(loglevel),
		})
		if err != nil {
			panic(err)
		}
		sqlDB, err := pgdb.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
		sqlDB.SetConnMaxLifetime(time.Hour)
		return pgdb
	}
}

// checkSuper seeds the administrator account from configuration when the
// operator table is empty.
func (a *Application) checkSuper() {
	var count int64
	a.gormDB.Model(&domain.SysOpr{}).Count(&count)
	if count > 0 {
		return
	}
	err := a.gormDB.Create(&domain.SysOpr{
		ID:        common.UUIDint64(),
		Realname:  "administrator",
		Email:     "",
		Username:  a.appConfig.Admin.Username,
		Password:  common.Sha256HashWithSalt(a.appConfig.Admin.Password, common.GetSecretSalt()),
		Level:     "super",
		Status:    common.ENABLED,
		Remark:    "super admin",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}).Error
	if err != nil {
		zap.S().Errorf("failed to seed administrator: %v", err)
		return
	}
	zap.S().Info("administrator account created")
}

type settingItem struct {
	ctype  string
	name   string
	value  string
	remark string
}

var defaultSettings = []settingItem{
	{"system", "SystemTitle", "Coverlane Insurance Agency", "site title"},
	{"system", "OprLogKeepDays", "90", "operator log retention days"},
	{"flyer", "OrphanSweepEnabled", "true", "enable nightly blob orphan sweep"},
}

// checkSettings inserts default system settings that are missing.
func (a *Application) checkSettings() {
	for _, item := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", item.ctype, item.name).Count(&count)
		if count > 0 {
			continue
		}
		a.gormDB.Create(&domain.SysConfig{
			ID:        common.UUIDint64(),
			Type:      item.ctype,
			Name:      item.name,
			Value:     item.value,
			Remark:    item.remark,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	}
}
