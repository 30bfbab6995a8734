// Package logger wraps go-logging with a console backend, an optional file
// backend and a bounded in-memory buffer that admins can read over the API.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/kitchenhub/recipe-service/config"

	"github.com/op/go-logging"
)

const (
	module           = "recipe-service"
	maxLogBufferSize = 10240
	logFileName      = "recipe-service.log"
	timeFormat       = "2006/01/02 15:04:05"
)

// Entry is a buffered log line.
type Entry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`

	level logging.Level
}

var (
	logger  = newConsoleLogger()
	logFile *os.File

	bufferMu  sync.Mutex
	logBuffer []Entry
)

func newConsoleLogger() *logging.Logger {
	l := logging.MustGetLogger(module)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, newFormatter(true)))
	leveled.SetLevel(logging.INFO, module)
	l.SetBackend(leveled)
	return l
}

// InitLogger installs the console/syslog backend at the given level and, when
// a log folder is configured, a file backend that always records DEBUG.
func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger(module)
	backends := make([]logging.Backend, 0, 2)

	if consoleBackend := initDefaultBackend(); consoleBackend != nil {
		leveledBackend := logging.AddModuleLevel(consoleBackend)
		leveledBackend.SetLevel(level, module)
		backends = append(backends, leveledBackend)
	}

	if fileBackend := initFileBackend(); fileBackend != nil {
		leveledBackend := logging.AddModuleLevel(fileBackend)
		leveledBackend.SetLevel(logging.DEBUG, module)
		backends = append(backends, leveledBackend)
	}

	newLogger.SetBackend(logging.MultiLogger(backends...))
	logger = newLogger
}

// ParseLevel maps a configured level onto a go-logging level.
func ParseLevel(level config.LogLevel) (logging.Level, error) {
	switch level {
	case config.Debug:
		return logging.DEBUG, nil
	case config.Info:
		return logging.INFO, nil
	case config.Notice:
		return logging.NOTICE, nil
	case config.Warn:
		return logging.WARNING, nil
	case config.Error:
		return logging.ERROR, nil
	}
	return logging.INFO, fmt.Errorf("unknown log level: %s", level)
}

func initDefaultBackend() logging.Backend {
	var backend logging.Backend
	includeTime := false

	if runtime.GOOS == "windows" {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
		includeTime = true
	} else {
		if syslogBackend, err := logging.NewSyslogBackend(""); err != nil {
			backend = logging.NewLogBackend(os.Stderr, "", 0)
			includeTime = os.Getppid() > 0
		} else {
			backend = syslogBackend
		}
	}

	return logging.NewBackendFormatter(backend, newFormatter(includeTime))
}

func initFileBackend() logging.Backend {
	logDir := config.GetLogFolder()
	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log folder %s: %v\n", logDir, err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o660)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		return nil
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	backend := logging.NewLogBackend(file, "", 0)
	return logging.NewBackendFormatter(backend, newFormatter(true))
}

func newFormatter(withTime bool) logging.Formatter {
	format := `%{level} - %{message}`
	if withTime {
		format = `%{time:` + timeFormat + `} %{level} - %{message}`
	}
	return logging.MustStringFormatter(format)
}

// CloseLogger closes the log file, if any.
func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func Debug(args ...any) {
	logger.Debug(args...)
	addToBuffer(logging.DEBUG, fmt.Sprint(args...))
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
	addToBuffer(logging.DEBUG, fmt.Sprintf(format, args...))
}

func Info(args ...any) {
	logger.Info(args...)
	addToBuffer(logging.INFO, fmt.Sprint(args...))
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
	addToBuffer(logging.INFO, fmt.Sprintf(format, args...))
}

func Warning(args ...any) {
	logger.Warning(args...)
	addToBuffer(logging.WARNING, fmt.Sprint(args...))
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
	addToBuffer(logging.WARNING, fmt.Sprintf(format, args...))
}

func Error(args ...any) {
	logger.Error(args...)
	addToBuffer(logging.ERROR, fmt.Sprint(args...))
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
	addToBuffer(logging.ERROR, fmt.Sprintf(format, args...))
}

func addToBuffer(level logging.Level, msg string) {
	bufferMu.Lock()
	defer bufferMu.Unlock()

	if len(logBuffer) >= maxLogBufferSize {
		logBuffer = logBuffer[1:]
	}
	logBuffer = append(logBuffer, Entry{
		Time:    time.Now().Format(timeFormat),
		Level:   level.String(),
		Message: msg,
		level:   level,
	})
}

// GetLogs returns up to c of the newest buffered entries at or above the
// given severity, newest first.
func GetLogs(c int, level string) []Entry {
	logLevel, err := logging.LogLevel(level)
	if err != nil {
		logLevel = logging.DEBUG
	}

	bufferMu.Lock()
	defer bufferMu.Unlock()

	output := make([]Entry, 0)
	for i := len(logBuffer) - 1; i >= 0 && len(output) < c; i-- {
		// go-logging orders levels from CRITICAL (0) to DEBUG (5)
		if logBuffer[i].level <= logLevel {
			output = append(output, logBuffer[i])
		}
	}
	return output
}
