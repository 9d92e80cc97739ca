// Package logger provides verbose logging for taskdex.
// With --verbose set, debug output goes to stderr so users can follow
// indexing and query evaluation. Without it every call is a no-op.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr

	// now is replaced in tests.
	now = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if level == "" {
		fmt.Fprintf(output, format, args...)
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}

// Debug logs pipeline detail.
func Debug(format string, args ...any) { logf("DEBUG", format, args...) }

// Info logs a completed step.
func Info(format string, args ...any) { logf("INFO", format, args...) }

// Warn logs a degradation the command recovers from.
func Warn(format string, args ...any) { logf("WARN", format, args...) }

// Section prints a header before a multi-step operation.
func Section(name string) { logf("", "\n=== %s ===\n", name) }

// Elapsed starts a timer and returns a func that logs the duration of what
// when called:
//
//	defer logger.Elapsed("reindex w1")()
func Elapsed(what string) func() {
	start := now()
	return func() {
		Debug("%s took %s", what, now().Sub(start).Round(time.Microsecond))
	}
}
