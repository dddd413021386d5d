package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-hclog"
)

// Logger receives engine messages.
type Logger interface {
	Log(m Message)
}

// LoggerFunc is a function adapter for the Logger interface.
type LoggerFunc func(m Message)

// Log calls f.
func (f LoggerFunc) Log(m Message) { f(m) }

// Discard drops every message.
func Discard() Logger {
	return LoggerFunc(func(Message) {})
}

// Default logs warnings and errors to stderr.
func Default() Logger {
	return New(os.Stderr, LevelWarning)
}

// New creates a charmbracelet/log backed Logger writing to w.
func New(w io.Writer, min Level) Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix: "confinode",
		Level:  charmLevel(min),
	})
	return Charm(l)
}

// Charm adapts a charmbracelet/log logger. Trace messages map to debug.
func Charm(l *log.Logger) Logger {
	return LoggerFunc(func(m Message) {
		l.Log(charmLevel(m.Level), m.ID, m.Args...)
	})
}

func charmLevel(lvl Level) log.Level {
	switch lvl {
	case LevelTrace:
		return log.DebugLevel
	case LevelInfo:
		return log.InfoLevel
	case LevelWarning:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}

// Hclog adapts a hashicorp/go-hclog logger.
func Hclog(l hclog.Logger) Logger {
	return LoggerFunc(func(m Message) {
		switch m.Level {
		case LevelTrace:
			l.Trace(m.ID, m.Args...)
		case LevelInfo:
			l.Info(m.ID, m.Args...)
		case LevelWarning:
			l.Warn(m.ID, m.Args...)
		default:
			l.Error(m.ID, m.Args...)
		}
	})
}

// Recorder keeps every message in memory. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Log records m.
func (r *Recorder) Log(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// WithID returns the recorded messages carrying id.
func (r *Recorder) WithID(id string) []Message {
	var out []Message
	for _, m := range r.Messages() {
		if m.ID == id {
			out = append(out, m)
		}
	}
	return out
}

// Reset forgets every recorded message.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
