package structures

import (
	"fmt"
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// WorkraveConfig locates the two Workrave exports. Empty paths are filled in from
// Workrave's data directory when a valid export is found there.
type WorkraveConfig struct {
	HistoryStatsPath string        `yaml:"historyStatsPath"`
	TodayStatsPath   string        `yaml:"todayStatsPath"`
	ReloadInterval   time.Duration `yaml:"reloadInterval" validate:"required|min:1"`
	Location         string        `yaml:"location"`
}

// TimeLocation resolves Location; empty means the host's local zone.
func (w WorkraveConfig) TimeLocation() (*time.Location, error) {
	if w.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(w.Location)
	if err != nil {
		return nil, fmt.Errorf("unknown location %q: %w", w.Location, err)
	}
	return loc, nil
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Workrave    WorkraveConfig `yaml:"workrave"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}
