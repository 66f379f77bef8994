package log

import (
	"io"
	"os"
	"time"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level:.4s}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})

	// Enabled reports whether messages at the given level reach the sink.
	Enabled(level Level) bool
}

type moduleLogger struct {
	*logging.Logger
}

func (l moduleLogger) Enabled(level Level) bool {
	return l.IsEnabledFor(toBackendLevel(level))
}

// Create a new named logger.
func New(name string) Logger {
	return moduleLogger{logging.MustGetLogger(name)}
}

// Log the time elapsed between the call to Timed and the call to the
// returned func at Info level.
//
//	defer log.Timed(logger, "fit bounding volumes")()
func Timed(logger Logger, what string) func() {
	start := time.Now()
	return func() {
		logger.Infof("%s: %.3f sec", what, time.Since(start).Seconds())
	}
}

// Override the backend output sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveledBackend)
}

// Set logger verbosity.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toBackendLevel(level), "")
}

func toBackendLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
