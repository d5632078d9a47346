package logger

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/rs/zerolog"
)

// DefaultLogger writes to stderr so that stdout stays free for playlist
// records. Assigning Logger swaps the destination for every caller of Default.
type DefaultLogger struct {
	Logger
}

var Default = &DefaultLogger{}

var logger = newZerolog(os.Stderr)

var urlRegex = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*:\/\/[a-zA-Z0-9+%/.\-:_?&=#@+]+`)

func newZerolog(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

// SetOutput redirects the built-in zerolog logger.
func SetOutput(w io.Writer) {
	logger = newZerolog(w)
}

func cleanString(text string) string {
	return urlRegex.ReplaceAllString(text, "[redacted url]")
}

func safeLogf(format string, v ...any) string {
	safeString := fmt.Sprintf(format, v...)
	if os.Getenv("SAFE_LOGS") == "true" {
		return cleanString(safeString)
	}
	return safeString
}

func debugEnabled() bool {
	return os.Getenv("DEBUG") == "true"
}

func (d *DefaultLogger) Log(format string) {
	if d.Logger != nil {
		d.Logger.Log(format)
		return
	}
	logger.Info().Msg(safeLogf("%s", format))
}

func (d *DefaultLogger) Logf(format string, v ...any) {
	if d.Logger != nil {
		d.Logger.Logf(format, v...)
		return
	}
	logger.Info().Msg(safeLogf(format, v...))
}

func (d *DefaultLogger) Debug(format string) {
	if d.Logger != nil {
		d.Logger.Debug(format)
		return
	}
	if debugEnabled() {
		logger.Debug().Msg(safeLogf("%s", format))
	}
}

func (d *DefaultLogger) Debugf(format string, v ...any) {
	if d.Logger != nil {
		d.Logger.Debugf(format, v...)
		return
	}
	if debugEnabled() {
		logger.Debug().Msg(safeLogf(format, v...))
	}
}

func (d *DefaultLogger) Error(format string) {
	if d.Logger != nil {
		d.Logger.Error(format)
		return
	}
	logger.Error().Msg(safeLogf("%s", format))
}

func (d *DefaultLogger) Errorf(format string, v ...any) {
	if d.Logger != nil {
		d.Logger.Errorf(format, v...)
		return
	}
	logger.Error().Msg(safeLogf(format, v...))
}

func (d *DefaultLogger) Warn(format string) {
	if d.Logger != nil {
		d.Logger.Warn(format)
		return
	}
	logger.Warn().Msg(safeLogf("%s", format))
}

func (d *DefaultLogger) Warnf(format string, v ...any) {
	if d.Logger != nil {
		d.Logger.Warnf(format, v...)
		return
	}
	logger.Warn().Msg(safeLogf(format, v...))
}
