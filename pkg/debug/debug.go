// Package debug provides conditional debug logging for lumina.
//
// Debug logging is enabled by setting the LUMINA_DEBUG environment variable
// or passing --debug:
//
//	LUMINA_DEBUG=1 lumina --export-html page.html
//
// When enabled, debug messages are written as structured zerolog lines to
// stderr, or to the file set with SetOutput while the terminal editor owns
// the screen. When disabled (default), the debug functions are no-ops.
//
// Warn is the exception: warnings about recovered failures (a corrupt saved
// page, an unreachable suggestion service) are always written.
//
// Usage:
//
//	import "github.com/vanderheijden86/lumina/pkg/debug"
//
//	func save() {
//	    defer debug.LogEnterExit("save")()
//	    debug.Log("saving %d blocks", n)
//	}
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/k0kubun/pp"
	"github.com/rs/zerolog"
)

var (
	mu sync.Mutex
	// enabled is true when LUMINA_DEBUG is set or SetEnabled(true) was called
	enabled bool
	logger  zerolog.Logger
)

func init() {
	logger = newLogger(os.Stderr)
	if os.Getenv("LUMINA_DEBUG") != "" {
		enabled = true
	}
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.SyncWriter(w)).With().Timestamp().Logger()
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	enabled = e
	mu.Unlock()
}

// SetOutput redirects all log output, debug and warnings alike.
func SetOutput(w io.Writer) {
	mu.Lock()
	logger = newLogger(w)
	mu.Unlock()
}

// OpenLogFile appends log output to path and returns a function that
// restores stderr and closes the file.
func OpenLogFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetOutput(f)
	return func() error {
		SetOutput(os.Stderr)
		return f.Close()
	}, nil
}

func current() (zerolog.Logger, bool) {
	mu.Lock()
	defer mu.Unlock()
	return logger, enabled
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	l, on := current()
	if !on {
		return
	}
	l.Debug().Msgf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	l, on := current()
	if !on {
		return
	}
	l.Debug().Str("op", name).Dur("took", d).Msg("timing")
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("export")()
func LogEnterExit(name string) func() {
	l, on := current()
	if !on {
		return func() {}
	}
	l.Debug().Str("op", name).Msg("enter")
	start := time.Now()
	return func() {
		l.Debug().Str("op", name).Dur("took", time.Since(start)).Msg("exit")
	}
}

// Dump logs a pretty-printed value for debugging complex structures.
func Dump(name string, v any) {
	l, on := current()
	if !on {
		return
	}
	l.Debug().Str("name", name).Str("type", fmt.Sprintf("%T", v)).Msg(pp.Sprint(v))
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	Log("=== %s ===", name)
}

// Warn records a recovered failure. It is written even when debug logging
// is off.
func Warn(err error, format string, args ...any) {
	l, _ := current()
	ev := l.Warn()
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msgf(format, args...)
}
