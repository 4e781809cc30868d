package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *logrus.Logger

// InitLoggerWithConfig initializes the logger with the provided configuration
// Logs are written to ~/.config/llmoverlay/llmoverlay.log
func InitLoggerWithConfig(cfg LogConfig) error {
	log = logrus.New()

	// Create log directory if needed
	logDir := ConfigDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Configure lumberjack for log rotation
	lj := &lumberjack.Logger{
		Filename:   GetLogPath(),
		MaxSize:    cfg.MaxSizeMB,  // MB - rotate when file reaches this size
		MaxBackups: cfg.MaxBackups, // Number of backup files to keep
		MaxAge:     cfg.MaxAgeDays, // Days to keep old files
		Compress:   cfg.Compress,   // Compress rotated files
		LocalTime:  true,
	}

	if cfg.ToStdout {
		log.SetOutput(io.MultiWriter(lj, os.Stdout))
	} else {
		log.SetOutput(lj)
	}

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true, // No colors in log file
	})

	// Default to Info level, Debug mode will change this
	log.SetLevel(logrus.InfoLevel)

	log.WithFields(logrus.Fields{
		"max_size_mb":  cfg.MaxSizeMB,
		"max_backups":  cfg.MaxBackups,
		"max_age_days": cfg.MaxAgeDays,
		"compress":     cfg.Compress,
		"to_stdout":    cfg.ToStdout,
	}).Info("Logger initialized")
	return nil
}

// Logger returns the application logger, or a discarding one before
// InitLoggerWithConfig ran. It is handed to the shortcut package.
func Logger() logrus.FieldLogger {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return log
}

// SetLogLevel sets the logging level based on debug mode
func SetLogLevel(debug bool) {
	if log == nil {
		return
	}
	if debug {
		log.SetLevel(logrus.DebugLevel)
		log.Debug("Debug logging enabled")
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.Info("Debug logging disabled")
	}
}

// LogInfo logs an info level message (always logged)
func LogInfo(format string, args ...interface{}) {
	if log != nil {
		log.Infof(format, args...)
	}
}

// LogDebug logs a debug level message (only when debug mode is on)
func LogDebug(format string, args ...interface{}) {
	if log != nil {
		log.Debugf(format, args...)
	}
}

// LogWarn logs a warning level message
func LogWarn(format string, args ...interface{}) {
	if log != nil {
		log.Warnf(format, args...)
	}
}

// LogError logs an error level message
func LogError(format string, args ...interface{}) {
	if log != nil {
		log.Errorf(format, args...)
	}
}

// LogAction logs a user action at info level
func LogAction(action string, details string) {
	if log != nil {
		log.WithFields(logrus.Fields{
			"action": action,
		}).Info(details)
	}
}

// LogStartup logs application startup information
func LogStartup() {
	if log == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"version":    Version,
		"commit":     getShortCommit(),
		"build_date": buildDate,
		"pid":        os.Getpid(),
	}).Info("llmoverlay starting")
}

// LogShutdown logs application shutdown
func LogShutdown() {
	if log != nil {
		log.Info("llmoverlay shutting down")
	}
}

// LogConfigLoaded logs when configuration is loaded
func LogConfigLoaded(cfg *Config) {
	if log != nil {
		log.WithFields(logrus.Fields{
			"providers": len(cfg.GetProviders()),
			"current":   cfg.CurrentProvider,
			"backend":   cfg.GetBackend(),
		}).Info("Configuration loaded")
	}
}

// LogHotkeyTriggered logs a toggle from the global hotkey
func LogHotkeyTriggered(binding string) {
	LogDebug("Hotkey triggered: %s", binding)
}

// LogBindingChanged logs the result of a capture session
func LogBindingChanged(state, binding string, err error) {
	if log == nil {
		return
	}
	entry := log.WithFields(logrus.Fields{
		"action":  "hotkey_changed",
		"state":   state,
		"binding": binding,
	})
	if err != nil {
		entry.WithError(err).Warn("Toggle hotkey capture finished with error")
		return
	}
	entry.Info("Toggle hotkey capture finished")
}

// LogProviderChanged logs a provider selection
func LogProviderChanged(name string) {
	LogAction("provider_selected", fmt.Sprintf("Selected provider: %s", name))
}

// LogClipboardCopy logs clipboard operations (without exposing content)
func LogClipboardCopy(itemType string, itemName string) {
	LogAction("clipboard_copy", fmt.Sprintf("Copied %s: %s", itemType, itemName))
}

// LogScriptExecuted logs when a Lua script is executed
func LogScriptExecuted(scriptName string, hook string, err error) {
	if log == nil {
		return
	}
	status := "success"
	fields := logrus.Fields{
		"action": "script_executed",
		"script": scriptName,
		"hook":   hook,
	}
	if err != nil {
		status = "failed"
		fields["error"] = err.Error()
	}
	fields["status"] = status
	log.WithFields(fields).Info(fmt.Sprintf("Script executed: %s", scriptName))
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	return filepath.Join(ConfigDir(), AppName+".log")
}

// CrashLogPath receives runtime crash output
func CrashLogPath() string {
	return filepath.Join(ConfigDir(), "crash_log.txt")
}
