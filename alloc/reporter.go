package alloc

import (
	"fmt"
	"io"
	"log/slog"
)

// Reporter receives a descriptive message whenever an allocator operation
// cannot satisfy its contract. It is called synchronously, before the failing
// call returns its failure value.
//
// Reporters are not required to be safe for concurrent use; neither are the
// allocators that call them.
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts an ordinary function to a Reporter.
type ReporterFunc func(message string)

// Report calls f(message).
func (f ReporterFunc) Report(message string) { f(message) }

// Discard drops every report. Failures stay visible through return values.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(string) {}

// WriterReporter writes each message on its own line to w.
// WriterReporter(os.Stderr) prints failures the way a C allocator would.
func WriterReporter(w io.Writer) Reporter {
	return ReporterFunc(func(message string) {
		fmt.Fprintln(w, message)
	})
}

// SlogReporter logs each message at warn level on l.
func SlogReporter(l *slog.Logger) Reporter {
	return ReporterFunc(func(message string) {
		l.Warn("allocator failure", "error", message)
	})
}

// orDiscard never returns nil, so allocators can call Report unconditionally.
func orDiscard(r Reporter) Reporter {
	if r == nil {
		return Discard
	}
	return r
}
