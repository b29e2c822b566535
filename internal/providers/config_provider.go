package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"informant/internal/structures"
	"informant/internal/workrave"

	"github.com/spf13/viper"
)

const (
	historyStatsFile = "historystats"
	todayStatsFile   = "todaystats"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config
	v := viper.New()

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "INFORMANT_LOG_LEVEL")
	v.BindEnv("workrave.historyStatsPath", "INFORMANT_HISTORYSTATS_PATH")
	v.BindEnv("workrave.todayStatsPath", "INFORMANT_TODAYSTATS_PATH")
	v.BindEnv("workrave.reloadInterval", "INFORMANT_RELOAD_INTERVAL")
	v.BindEnv("cache.enabled", "INFORMANT_CACHE_ENABLED")
	v.BindEnv("cache.size", "INFORMANT_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	DiscoverWorkraveFiles(&conf.Workrave, WorkraveDataDir())

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Informant"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// WorkraveDataDir is where Workrave keeps its exports on this platform, or "" when unknown.
func WorkraveDataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Workrave")
		}
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".workrave")
}

// DiscoverWorkraveFiles fills empty export paths from dir, adopting only files with a valid header.
func DiscoverWorkraveFiles(wc *structures.WorkraveConfig, dir string) {
	if dir == "" {
		return
	}
	if wc.HistoryStatsPath == "" {
		if path := filepath.Join(dir, historyStatsFile); workrave.IsFileValid(path) {
			wc.HistoryStatsPath = path
		}
	}
	if wc.TodayStatsPath == "" {
		if path := filepath.Join(dir, todayStatsFile); workrave.IsFileValid(path) {
			wc.TodayStatsPath = path
		}
	}
}
