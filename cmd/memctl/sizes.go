package main

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/memkit/alloc"
)

// parseSize accepts plain byte counts ("1024") and human sizes ("1KiB", "4 MB").
func parseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("size %q is too large", s)
	}
	return int(n), nil
}

// formatSize renders n bytes with binary units, e.g. "1.0 KiB".
func formatSize(n int) string {
	return humanize.IBytes(uint64(n))
}

func parseBacking(s string) (alloc.Backing, error) {
	switch s {
	case "auto", "":
		return alloc.BackingAuto, nil
	case "mapped":
		return alloc.BackingMapped, nil
	case "heap":
		return alloc.BackingHeap, nil
	default:
		return 0, fmt.Errorf("unknown backing %q (want auto, mapped or heap)", s)
	}
}
