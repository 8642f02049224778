package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
	TRACE
)

const (
	DebugEnvVariable    = "QUICKMOVE_DEBUG"
	LogLevelEnvVariable = "QUICKMOVE_LOG_LEVEL"
)

var (
	nullWriter   = &NullWriter{}
	currentLevel = ERROR
	Info         *log.Logger
	Warn         *log.Logger
	Error        *log.Logger
	Debug        *log.Logger
	Trace        *log.Logger
)

func StringToLogLevel(value string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return ERROR
	case "warn":
		return WARN
	case "info":
		return INFO
	case "debug":
		return DEBUG
	case "trace":
		return TRACE
	}
	log.Printf("Invalid log level: '%s'. Returning INFO", value)
	return INFO
}

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	}
	return "UNKNOWN"
}

type NullWriter struct {
	io.Writer
}

func (s *NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func init() {
	Error = log.New(nullWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(nullWriter, "WARN:  ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(nullWriter, "INFO:  ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(nullWriter, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Trace = log.New(nullWriter, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func Initialize(logLevel LogLevel) {
	log.Printf("Initialize loggers: '%s'", logLevel.String())
	currentLevel = logLevel

	Error = newLogger(logLevel >= ERROR, os.Stderr, "ERROR: ")
	Warn = newLogger(logLevel >= WARN, os.Stdout, "WARN:  ")
	Info = newLogger(logLevel >= INFO, os.Stdout, "INFO:  ")
	Debug = newLogger(logLevel >= DEBUG, os.Stdout, "DEBUG: ")
	Trace = newLogger(logLevel >= TRACE, os.Stdout, "TRACE: ")
}

// InitializeFromEnvironment picks the level from QUICKMOVE_LOG_LEVEL, or
// DEBUG when QUICKMOVE_DEBUG is set to anything, falling back to
// defaultLevel. Returns the level that was applied.
func InitializeFromEnvironment(defaultLevel LogLevel) LogLevel {
	logLevel := ResolveLogLevel(os.Getenv(LogLevelEnvVariable), os.Getenv(DebugEnvVariable), defaultLevel)
	Initialize(logLevel)
	return logLevel
}

func ResolveLogLevel(levelValue string, debugValue string, defaultLevel LogLevel) LogLevel {
	if levelValue != "" {
		return StringToLogLevel(levelValue)
	} else if debugValue != "" && defaultLevel < DEBUG {
		return DEBUG
	} else {
		return defaultLevel
	}
}

func IsLogLevel(logLevel LogLevel) bool {
	return currentLevel >= logLevel
}

func newLogger(enabled bool, writer io.Writer, prefix string) *log.Logger {
	if !enabled {
		writer = nullWriter
	}
	return log.New(writer, prefix, log.Ldate|log.Ltime|log.Lshortfile)
}
