// Package logger provides a file-backed leveled logger. It is built by
// the composition root and handed to anything that needs it; there is no
// global instance and no implicit first-use initialization.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger writes leveled lines to a log file (or any writer).
type Logger struct {
	mu   sync.Mutex
	out  *log.Logger
	file *os.File
}

// New opens (or creates) the log file at path and starts a logger on it.
func New(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return &Logger{
		out:  log.New(f, "", log.Ltime|log.Lmicroseconds),
		file: f,
	}, nil
}

// NewWriter starts a logger on an existing writer. Close is a no-op.
func NewWriter(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", log.Ltime|log.Lmicroseconds)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return NewWriter(io.Discard)
}

// Close flushes and closes the underlying file, if any. The logger must
// not be used afterwards.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Infof logs an info message.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.printf("[INFO] ", format, v...)
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.printf("[DEBUG] ", format, v...)
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.printf("[WARN] ", format, v...)
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.printf("[ERROR] ", format, v...)
}

func (l *Logger) printf(prefix, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out != nil {
		l.out.Printf(prefix+format, v...)
	}
}

// Writer exposes the underlying writer, for collaborators that stream
// their own output.
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file
	}
	return l.out.Writer()
}
