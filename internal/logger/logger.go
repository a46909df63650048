// Package logger is the leveled logging facade used by the batch pipeline.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger is a leveled printf-style logger.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type stdLogger struct {
	l       *log.Logger
	verbose bool
}

// New returns a Logger writing to stderr.  Debugf output is dropped unless
// verbose is set.
func New(verbose bool) Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is like New, but writes to w.
func NewWithWriter(w io.Writer, verbose bool) Logger {
	return &stdLogger{l: log.New(w, "", log.LstdFlags), verbose: verbose}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return &stdLogger{l: log.New(io.Discard, "", 0)}
}

func (s *stdLogger) Debugf(format string, v ...interface{}) {
	if s.verbose {
		s.l.Printf("[DEBUG] "+format, v...)
	}
}

func (s *stdLogger) Infof(format string, v ...interface{})  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...interface{}) { s.l.Printf("[ERROR] "+format, v...) }
