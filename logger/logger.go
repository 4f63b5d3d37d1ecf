package logger

import (
	"io"
	"os"
	"path/filepath"

	"checkin-guide/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps logrus.Logger with event helpers.
type Logger struct {
	*logrus.Logger
}

type Fields map[string]interface{}

func New(cfg config.LoggingConfig) (*Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	var output io.Writer
	switch cfg.Output {
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, err
		}
		output = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
	default:
		output = os.Stdout
	}
	log.SetOutput(output)

	return &Logger{Logger: log}, nil
}

// Discard returns a logger that drops everything, for tests and tools.
func Discard() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{Logger: log}
}

func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

func (l *Logger) LogRequest(method, path, userAgent, clientIP string, statusCode int, duration int64) {
	entry := l.WithFields(Fields{
		"method":      method,
		"path":        path,
		"user_agent":  userAgent,
		"client_ip":   clientIP,
		"status_code": statusCode,
		"duration_ms": duration,
		"type":        "request",
	})
	switch {
	case statusCode >= 500:
		entry.Error("HTTP request")
	case statusCode >= 400:
		entry.Warn("HTTP request")
	default:
		entry.Info("HTTP request")
	}
}

func (l *Logger) LogAuth(action, clientIP string, success bool) {
	entry := l.WithFields(Fields{
		"action":    action,
		"client_ip": clientIP,
		"success":   success,
		"type":      "auth",
	})
	if success {
		entry.Info("Authentication event")
	} else {
		entry.Warn("Authentication failed")
	}
}

func (l *Logger) LogSecurity(event, clientIP string, details map[string]interface{}) {
	fields := Fields{
		"event":     event,
		"client_ip": clientIP,
		"type":      "security",
	}
	for k, v := range details {
		fields[k] = v
	}
	l.WithFields(fields).Warn("Security event")
}

// LogMutation records a write to the record store. Failures are always
// logged with their cause.
func (l *Logger) LogMutation(entity, action, id string, err error) {
	entry := l.WithFields(Fields{
		"entity": entity,
		"action": action,
		"id":     id,
		"type":   "mutation",
	})
	if err != nil {
		entry.WithError(err).Error("Mutation failed")
		return
	}
	entry.Debug("Mutation applied")
}

func (l *Logger) LogBulk(operation string, requested, applied, failed, skipped int) {
	entry := l.WithFields(Fields{
		"operation": operation,
		"requested": requested,
		"applied":   applied,
		"failed":    failed,
		"skipped":   skipped,
		"type":      "bulk",
	})
	if failed > 0 {
		entry.Warn("Bulk operation finished with failures")
	} else {
		entry.Info("Bulk operation finished")
	}
}

func (l *Logger) LogSystem(component, action string, success bool, details map[string]interface{}) {
	fields := Fields{
		"component": component,
		"action":    action,
		"success":   success,
		"type":      "system",
	}
	for k, v := range details {
		fields[k] = v
	}
	entry := l.WithFields(fields)
	if success {
		entry.Info("System event")
	} else {
		entry.Error("System event failed")
	}
}

func (l *Logger) LogPerformance(operation string, duration int64, details map[string]interface{}) {
	fields := Fields{
		"operation":   operation,
		"duration_ms": duration,
		"type":        "performance",
	}
	for k, v := range details {
		fields[k] = v
	}
	entry := l.WithFields(fields)
	switch {
	case duration > 5000:
		entry.Error("Slow operation detected")
	case duration > 1000:
		entry.Warn("Operation took longer than expected")
	default:
		entry.Debug("Operation completed")
	}
}
