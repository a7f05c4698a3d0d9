// Package logger writes structured logs to a rotating file under the config
// directory. Nothing is logged until Init runs.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/stride/internal/constants"
)

const (
	maxSizeMB   = 10
	maxBackups  = 3
	maxAgeDays  = 28
	componentKV = "component"
)

// Logger is nil until Init.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
}

// Path is where Init writes the log for a config directory.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init opens the rotating log file. Debug lowers the level to debug and
// mirrors output to stderr; otherwise only warnings and errors reach the
// file and the terminal stays free for the TUI.
func Init(cfg Config) error {
	file := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		out = io.MultiWriter(os.Stderr, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Component returns a logger tagged with the component name, or a discarding
// one before Init.
func Component(name string) *log.Logger {
	if Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return Logger.With(componentKV, name)
}

func Debug(msg string, keyvals ...any) { logAt(log.DebugLevel, msg, keyvals...) }
func Info(msg string, keyvals ...any)  { logAt(log.InfoLevel, msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { logAt(log.WarnLevel, msg, keyvals...) }
func Error(msg string, keyvals ...any) { logAt(log.ErrorLevel, msg, keyvals...) }

func logAt(level log.Level, msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}
