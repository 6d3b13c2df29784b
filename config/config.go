package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// StorageConfig describes the external object store holding flyer blobs.
// Endpoint and Apikey drive the REST calls, PublicURL is the base under
// which uploaded blobs are publicly reachable.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Apikey    string `yaml:"apikey"`
	PublicURL string `yaml:"public_url"`
}

type SmtpConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	NotifyTo string `yaml:"notify_to"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Admin    AdminConfig   `yaml:"admin"`
	Database DBConfig      `yaml:"database"`
	Storage  StorageConfig `yaml:"storage"`
	Smtp     SmtpConfig    `yaml:"smtp"`
	Logger   LoggerConfig  `yaml:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "coverlane",
		Location: "America/New_York",
		Workdir:  "/var/coverlane",
		Debug:    false,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1820,
		Secret: "9b6de5cc-0001-1203-xxtt-0f568ac9da37",
	},
	Admin: AdminConfig{
		Username: "admin",
		Password: "coverlane",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "coverlane",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Storage: StorageConfig{
		Endpoint:  "http://127.0.0.1:9000",
		Bucket:    "flyers",
		PublicURL: "http://127.0.0.1:9000/flyers",
	},
	Smtp: SmtpConfig{
		Host: "smtp-relay.brevo.com",
		Port: 587,
		From: "noreply@coverlane.example",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/coverlane/coverlane.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "metrics"), 0755)
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

// LoadConfig loads the yaml configuration from cfile and applies
// COVERLANE_* environment overrides on top. A missing or empty cfile
// falls back to the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			fcfg := new(AppConfig)
			if err := yaml.Unmarshal(data, fcfg); err == nil {
				cfg = fcfg
			}
		}
	}

	setEnvValue("COVERLANE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBoolValue("COVERLANE_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("COVERLANE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("COVERLANE_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvIntValue("COVERLANE_WEB_PORT", func(v int) { cfg.Web.Port = v })

	setEnvValue("COVERLANE_ADMIN_USERNAME", func(v string) { cfg.Admin.Username = v })
	setEnvValue("COVERLANE_ADMIN_PASSWORD", func(v string) { cfg.Admin.Password = v })

	setEnvValue("COVERLANE_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("COVERLANE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("COVERLANE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("COVERLANE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("COVERLANE_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvIntValue("COVERLANE_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvBoolValue("COVERLANE_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("COVERLANE_STORAGE_ENDPOINT", func(v string) { cfg.Storage.Endpoint = v })
	setEnvValue("COVERLANE_STORAGE_BUCKET", func(v string) { cfg.Storage.Bucket = v })
	setEnvValue("COVERLANE_STORAGE_APIKEY", func(v string) { cfg.Storage.Apikey = v })
	setEnvValue("COVERLANE_STORAGE_PUBLIC_URL", func(v string) { cfg.Storage.PublicURL = v })

	setEnvValue("COVERLANE_SMTP_HOST", func(v string) { cfg.Smtp.Host = v })
	setEnvIntValue("COVERLANE_SMTP_PORT", func(v int) { cfg.Smtp.Port = v })
	setEnvValue("COVERLANE_SMTP_USERNAME", func(v string) { cfg.Smtp.Username = v })
	setEnvValue("COVERLANE_SMTP_PASSWORD", func(v string) { cfg.Smtp.Password = v })
	setEnvValue("COVERLANE_SMTP_FROM", func(v string) { cfg.Smtp.From = v })
	setEnvValue("COVERLANE_SMTP_NOTIFY_TO", func(v string) { cfg.Smtp.NotifyTo = v })

	setEnvValue("COVERLANE_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	cfg.initDirs()
	return cfg
}
