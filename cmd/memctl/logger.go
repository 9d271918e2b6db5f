package main

import (
	"io"
	"log/slog"
)

// L is the command's logger. It discards everything until initLogger runs.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// initLogger points L at w. Allocator failures are logged at warn level,
// so --quiet silences them and --verbose adds debug detail.
func initLogger(w io.Writer) {
	if quiet {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
