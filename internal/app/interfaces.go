package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/coverlane/coverlane/config"
	"github.com/coverlane/coverlane/internal/flyerstore"
	"github.com/coverlane/coverlane/internal/quote"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BusProvider provides the in-process event bus
type BusProvider interface {
	Publish(topic string, args ...interface{})
	Subscribe(topic string, fn interface{}) error
}

// FlyersProvider provides the flyer asset adapter
type FlyersProvider interface {
	Flyers() *flyerstore.Adapter
}

// QuoteProvider provides the quote intake service
type QuoteProvider interface {
	QuoteIntake() *quote.Intake
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	BusProvider
	FlyersProvider
	QuoteProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
