package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the log file used when none is configured, relative to the working directory.
const DefaultPath = "logs/physics.txt"

// Level prefixes a log line.
type Level string

const (
	Info  Level = "INFO"
	Warn  Level = "WARN"
	Error Level = "ERROR"
)

// Logger stores lines in memory and appends them to a file on disk. It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	echo  bool
}

// New returns a Logger writing to path (DefaultPath when empty) and ensures its directory exists.
func New(path string) *Logger {
	if path == "" {
		path = DefaultPath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path, lines: make([]string, 0)}
}

// Echo also prints every line to stderr.
func (l *Logger) Echo(on bool) {
	l.mu.Lock()
	l.echo = on
	l.mu.Unlock()
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Log appends a line to the logger and to the log file. Each entry is prefixed with [timestamp].
func (l *Logger) Log(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	echo := l.echo
	l.mu.Unlock()

	if echo {
		fmt.Fprintln(os.Stderr, stamped)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf logs a formatted line at Info level.
func (l *Logger) Logf(format string, args ...any) {
	l.Levelf(Info, format, args...)
}

// Warnf logs a formatted line at Warn level.
func (l *Logger) Warnf(format string, args ...any) {
	l.Levelf(Warn, format, args...)
}

// Errorf logs a formatted line at Error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.Levelf(Error, format, args...)
}

// Levelf logs a formatted line prefixed with level.
func (l *Logger) Levelf(level Level, format string, args ...any) {
	l.Log(string(level) + " " + fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
