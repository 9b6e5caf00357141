package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is a small leveled logger. Each level owns its own *log.Logger so
// prefixes never race between goroutines.
type Logger struct {
	mu   sync.Mutex
	file *os.File
	info *log.Logger
	warn *log.Logger
	fail *log.Logger
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		info: log.New(w, "INFO: ", log.LstdFlags),
		warn: log.New(w, "WARN: ", log.LstdFlags),
		fail: log.New(w, "ERROR: ", log.LstdFlags),
	}
}

// OpenLogger creates a logger appending to the file at path.
func OpenLogger(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := NewLogger(file)
	l.file = file
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return NewLogger(io.Discard) }

func (l *Logger) Info(msg string)  { l.info.Println(msg) }
func (l *Logger) Warn(msg string)  { l.warn.Println(msg) }
func (l *Logger) Error(msg string) { l.fail.Println(msg) }

func (l *Logger) Infof(format string, args ...interface{})  { l.info.Printf(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.warn.Printf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.fail.Printf(format, args...) }

// Close closes the log file, if any.
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
