// Package logging provides the append-only log used by the filesystem and
// charset helpers. Every entry is written as a timestamp line followed by the
// message line, to a log file or to a console stream.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/zoro11031/d3l/internal/timing"
)

// DefaultFile is the log file used when none is configured
const DefaultFile = "d3l.log"

// Options selects the log destination
type Options struct {
	// File is the append-mode log file. Empty means DefaultFile.
	File string
	// Console receives entries instead of File when set. Callers pass
	// stderr so that command output on stdout is never mixed with log lines.
	Console io.Writer
	// Debug enables debug-level entries
	Debug bool
}

// Formatter renders entries as "D3L::Time:..." followed by the message
type Formatter struct{}

// Format implements logrus.Formatter
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	b.WriteString(timing.Stamp(entry.Time))
	b.WriteByte('\n')

	switch entry.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		b.WriteString("ERROR ")
	case logrus.WarnLevel:
		b.WriteString("WARNING ")
	}
	b.WriteString(entry.Message)

	if path, ok := entry.Data["path"]; ok {
		fmt.Fprintf(b, " [%v]", path)
	}
	if err, ok := entry.Data[logrus.ErrorKey]; ok {
		fmt.Fprintf(b, ": %v", err)
	}
	b.WriteByte('\n')

	return b.Bytes(), nil
}

// Logger is a logrus logger bound to its destination
type Logger struct {
	*logrus.Logger
	closer io.Closer
}

// New opens the destination and returns a Logger writing to it
func New(opts Options) (*Logger, error) {
	l := logrus.New()
	l.SetFormatter(&Formatter{})
	if opts.Debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	if opts.Console != nil {
		l.SetOutput(opts.Console)
		return &Logger{Logger: l}, nil
	}

	path := opts.File
	if path == "" {
		path = DefaultFile
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	l.SetOutput(file)

	return &Logger{Logger: l, closer: file}, nil
}

// NewWithWriter creates a Logger writing to w (useful for testing)
func NewWithWriter(w io.Writer) *Logger {
	l := logrus.New()
	l.SetFormatter(&Formatter{})
	l.SetOutput(w)
	return &Logger{Logger: l}
}

// Append writes a single message at info level
func (l *Logger) Append(msg string) {
	l.Info(msg)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Discard returns a logger that drops every entry
func Discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
