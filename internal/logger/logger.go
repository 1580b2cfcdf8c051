package logger

import (
	"fmt"
	"time"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var GlobalLogLevel = LogLevelInfo

var severity = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

type Log struct {
	level LogLevel
	err   error
}

func New() *Log {
	return &Log{
		level: GlobalLogLevel,
	}
}

func (l *Log) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Log) WithError(err error) *Log {
	return &Log{level: l.level, err: err}
}

func (l *Log) enabled(level LogLevel) bool {
	min, ok := severity[l.level]
	if !ok {
		min = severity[LogLevelInfo]
	}
	return severity[level] >= min
}

func (l *Log) timestamp() string {
	return time.Now().Format("15:04:05")
}

func (l *Log) print(color, msg string) {
	if l.err != nil {
		fmt.Printf("%s[%s]%s %s: %v%s\n", color, l.timestamp(), ColorReset, msg, l.err, ColorReset)
		return
	}
	fmt.Printf("%s[%s]%s %s%s\n", color, l.timestamp(), ColorReset, msg, ColorReset)
}

func (l *Log) Debug(msg string) {
	if !l.enabled(LogLevelDebug) {
		return
	}
	l.print(ColorCyan, msg)
}

func (l *Log) Info(msg string) {
	if !l.enabled(LogLevelInfo) {
		return
	}
	l.print(ColorBlue, msg)
}

// Speaker prints a named conversational line, e.g. the companion reply.
func (l *Log) Speaker(name, msg string) {
	if !l.enabled(LogLevelInfo) {
		return
	}
	fmt.Printf("%s%s:%s %s\n", ColorBold, name, ColorReset, msg)
}

func (l *Log) Warn(msg string) {
	if !l.enabled(LogLevelWarn) {
		return
	}
	l.print(ColorYellow, msg)
}

func (l *Log) Error(msg string) {
	l.print(ColorRed, msg)
}
