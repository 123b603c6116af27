// Package logging writes per-run log files under the docpipe base
// directory. The package-level helpers are no-ops until Init is called,
// so library code can log unconditionally.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Logger struct {
	mu   sync.Mutex
	file *os.File
	path string
}

var (
	globalLogger *Logger
	loggerMu     sync.Mutex
)

// Init opens a timestamped log file for this run under baseDir/logs and
// installs it as the package-global logger.
func Init(baseDir, command string) (*Logger, error) {
	logDir := filepath.Join(baseDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	logFile := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", command, timestamp))

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := &Logger{file: file, path: logFile}

	loggerMu.Lock()
	globalLogger = logger
	loggerMu.Unlock()

	logger.log("INFO", "logger initialized", map[string]interface{}{
		"command":  command,
		"log_file": logFile,
	})

	return logger, nil
}

// Path returns the log file location.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	loggerMu.Lock()
	if globalLogger == l {
		globalLogger = nil
	}
	loggerMu.Unlock()
	return l.file.Close()
}

func (l *Logger) log(level string, message string, details map[string]interface{}) {
	if l == nil || l.file == nil {
		return
	}

	logLine := fmt.Sprintf("[%s] %s: %s", time.Now().Format("2006-01-02 15:04:05.000"), level, message)
	for k, v := range details {
		logLine += fmt.Sprintf(" %s=%v", k, v)
	}
	logLine += "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	l.file.WriteString(logLine)
}

func (l *Logger) Debug(message string, details map[string]interface{}) {
	l.log("DEBUG", message, details)
}

func (l *Logger) Info(message string, details map[string]interface{}) {
	l.log("INFO", message, details)
}

func (l *Logger) Warn(message string, details map[string]interface{}) {
	l.log("WARN", message, details)
}

func (l *Logger) Error(message string, details map[string]interface{}) {
	l.log("ERROR", message, details)
}

func current() *Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	return globalLogger
}

func Debug(message string, details map[string]interface{}) { current().Debug(message, details) }
func Info(message string, details map[string]interface{})  { current().Info(message, details) }
func Warn(message string, details map[string]interface{})  { current().Warn(message, details) }
func Error(message string, details map[string]interface{}) { current().Error(message, details) }
