package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"informant/internal/structures"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypeLoad
)

var logFiles = map[TypeEnum]string{
	TypeApp:  "app.log",
	TypeGet:  "get.log",
	TypePost: "post.log",
	TypeLoad: "load.log",
}

func (t TypeEnum) String() string {
	switch t {
	case TypeGet:
		return "get"
	case TypePost:
		return "post"
	case TypeLoad:
		return "load"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

// GetLogTypeByRequestType picks the request log for an HTTP method.
func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

// NewLogProvider opens one log file per TypeEnum under conf.Logger.Dir.
// In debug mode every record is mirrored to stderr.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(logFiles))}
	for t, name := range logFiles {
		path := filepath.Join(conf.Logger.Dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
		if err != nil {
			lp.Close()
			return nil, fmt.Errorf("unable to open log file %s: %w", path, err)
		}
		lp.files = append(lp.files, f)

		var w io.Writer = f
		if conf.Debug {
			w = zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		}
		lp.loggers[t] = zerolog.New(w).Level(level).With().Timestamp().Str("type", t.String()).Logger()
	}
	return lp, nil
}

// NewConsoleLogger logs every type to stderr. Used by CLI commands that have no log directory.
func NewConsoleLogger(level string) Logger {
	return NewWriterLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, level)
}

// NewWriterLogger logs every type to w.
func NewWriterLogger(w io.Writer, level string) Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	base := zerolog.New(w).Level(lvl).With().Timestamp().Logger()

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(logFiles))}
	for t := range logFiles {
		lp.loggers[t] = base.With().Str("type", t.String()).Logger()
	}
	return lp
}

func (lp *LogProvider) logger(t TypeEnum) *zerolog.Logger {
	l, ok := lp.loggers[t]
	if !ok {
		l = lp.loggers[TypeApp]
	}
	return &l
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
	lp.files = nil
}
