package logging

import (
	"fmt"
	"strings"
)

// Level is the severity of a Message.
type Level int

const (
	LevelTrace Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name into a Level. "warn" and "debug" are accepted
// as aliases for warning and trace.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return LevelTrace, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Message identifiers.
const (
	MsgSearchStarting        = "searchStarting"
	MsgSearchInDirectory     = "searchInDirectory"
	MsgSearchInCache         = "searchInCache"
	MsgLoadingFile           = "loadingFile"
	MsgLoadedConfiguration   = "loadedConfiguration"
	MsgEmptyConfiguration    = "emptyConfiguration"
	MsgConfigurationNotFound = "configurationNotFound"
	MsgMultipleFiles         = "multipleFiles"
	MsgFileNotFound          = "fileNotFound"
	MsgNoLoaderFound         = "noLoaderFound"
	MsgLoadingError          = "loadingError"
	MsgInternalError         = "internalError"
)

// Message is one structured log event.
type Message struct {
	Level Level
	ID    string
	Args  []any // alternating keys and values, like slog

}

// Trace builds a trace-level message.
func Trace(id string, args ...any) Message { return Message{Level: LevelTrace, ID: id, Args: args} }

// Info builds an info-level message.
func Info(id string, args ...any) Message { return Message{Level: LevelInfo, ID: id, Args: args} }

// Warning builds a warning-level message.
func Warning(id string, args ...any) Message {
	return Message{Level: LevelWarning, ID: id, Args: args}
}

// Error builds an error-level message.
func Error(id string, args ...any) Message { return Message{Level: LevelError, ID: id, Args: args} }

// Get returns the value for key, if present.
func (m Message) Get(key string) (any, bool) {
	for i := 0; i+1 < len(m.Args); i += 2 {
		if k, ok := m.Args[i].(string); ok && k == key {
			return m.Args[i+1], true
		}
	}
	return nil, false
}

// String formats the message as "level id key=value ...".
func (m Message) String() string {
	var b strings.Builder
	b.WriteString(m.Level.String())
	b.WriteByte(' ')
	b.WriteString(m.ID)
	for i := 0; i < len(m.Args); i += 2 {
		if i+1 < len(m.Args) {
			fmt.Fprintf(&b, " %v=%v", m.Args[i], m.Args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", m.Args[i])
		}
	}
	return b.String()
}
