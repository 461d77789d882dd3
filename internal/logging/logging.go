// Package logging configures zerolog the way the teacher wires it for a
// latency-sensitive foreground process: a human-readable console writer
// when the log writer is a terminal, structured JSON otherwise, and the error-taxonomy
// classification from spec.md §7 that maps a failure onto a log level
// plus a user-facing status severity.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"rmpc/internal/events"
)

// Init builds the process-wide logger, writing to w (typically a log
// file; the TUI owns stdout/stderr for rendering). level is parsed via
// zerolog.ParseLevel; an unrecognized value falls back to Info.
func Init(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Category is the spec.md §7 error taxonomy.
type Category int

const (
	CategoryConfiguration Category = iota
	CategoryConnection
	CategoryProtocol
	CategoryExternalProcess
	CategoryEncodeRender
	CategoryFilesystem
)

// Classified pairs an error with its taxonomy category, so a single
// error value can carry both the log level and the status-bar severity
// it should surface as.
type Classified struct {
	Err      error
	Category Category
}

func (c Classified) Error() string { return c.Err.Error() }
func (c Classified) Unwrap() error { return c.Err }

// Classify wraps err with category, a no-op convenience for call sites
// that want to attach taxonomy at the point an error is produced.
func Classify(err error, category Category) error {
	if err == nil {
		return nil
	}
	return Classified{Err: err, Category: category}
}

// Log writes err to logger at the level its category implies. Connection
// and Configuration errors log at Error; Protocol/ExternalProcess/Encode
// log at Warn (the triggering operation is responsible for its own UX
// recovery); Filesystem logs at Warn unless it is not a NotFound error,
// matching the "NotFound is a warning for auxiliary data, every other
// kind is an error" rule.
func Log(logger zerolog.Logger, err error, category Category) {
	if err == nil {
		return
	}
	level := levelFor(err, category)
	logger.WithLevel(level).Err(err).Msg(category.String())
}

func levelFor(err error, category Category) zerolog.Level {
	switch category {
	case CategoryConfiguration, CategoryConnection:
		return zerolog.ErrorLevel
	case CategoryFilesystem:
		if os.IsNotExist(err) {
			return zerolog.WarnLevel
		}
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

func (c Category) String() string {
	switch c {
	case CategoryConfiguration:
		return "configuration"
	case CategoryConnection:
		return "connection"
	case CategoryProtocol:
		return "protocol"
	case CategoryExternalProcess:
		return "external-process"
	case CategoryEncodeRender:
		return "encode-render"
	case CategoryFilesystem:
		return "filesystem"
	default:
		return "unknown"
	}
}

// StatusLevel maps a Category onto the status-bar severity the event
// loop's StatusMsg uses.
func (c Category) StatusLevel() events.StatusLevel {
	switch c {
	case CategoryConfiguration, CategoryConnection:
		return events.StatusError
	case CategoryFilesystem:
		return events.StatusWarn
	default:
		return events.StatusWarn
	}
}
