// Package arena reserves the single contiguous byte region an allocator
// carves its blocks from.
//
// An Arena is acquired once with Reserve and released once with Release.
// Its capacity is fixed at reservation time. Large reservations come straight
// from the operating system as anonymous private mappings so they never touch
// the Go heap; small ones are served from the heap because a mapping always
// costs at least one page.
package arena

import (
	"errors"
	"fmt"
	"os"
)

// ErrReserve indicates that backing storage could not be reserved.
var ErrReserve = errors.New("arena: reservation failed")

// Source selects where an arena's bytes come from.
type Source uint8

const (
	// Auto maps reservations of at least one page and uses the heap below that.
	Auto Source = iota

	// Mapped always asks the operating system for an anonymous mapping.
	// Platforms without one fall back to the heap.
	Mapped

	// Heap allocates a Go byte slice.
	Heap
)

func (s Source) String() string {
	switch s {
	case Auto:
		return "auto"
	case Mapped:
		return "mapped"
	case Heap:
		return "heap"
	default:
		return fmt.Sprintf("source(%d)", uint8(s))
	}
}

// Arena is a contiguous byte reservation owned by exactly one allocator.
// Not safe for concurrent use.
type Arena struct {
	data    []byte
	size    int
	src     Source
	release func([]byte) error
}

// Reserve acquires n bytes of backing storage.
// The returned arena is live until Release is called.
func Reserve(n int, src Source) (*Arena, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrReserve, n)
	}
	if src == Auto {
		src = Heap
		if n >= os.Getpagesize() {
			src = Mapped
		}
	}

	switch src {
	case Mapped:
		data, err := mapAnon(n)
		if err != nil {
			return nil, fmt.Errorf("%w: map %d bytes: %w", ErrReserve, n, err)
		}
		return &Arena{data: data, size: n, src: Mapped, release: unmapAnon}, nil
	case Heap:
		return &Arena{data: make([]byte, n), size: n, src: Heap}, nil
	default:
		return nil, fmt.Errorf("%w: unknown source %v", ErrReserve, src)
	}
}

// Bytes returns the whole reservation, or nil once released.
func (a *Arena) Bytes() []byte {
	if a == nil {
		return nil
	}
	return a.data
}

// Cap returns the size requested at reservation time. It does not change
// after Release.
func (a *Arena) Cap() int {
	if a == nil {
		return 0
	}
	return a.size
}

// Source reports where the bytes came from after Auto was resolved.
func (a *Arena) Source() Source {
	if a == nil {
		return Auto
	}
	return a.src
}

// Live reports whether the arena still owns its bytes.
func (a *Arena) Live() bool {
	return a != nil && a.data != nil
}

// Release returns the reservation to where it came from.
// Releasing an arena twice is a no-op.
func (a *Arena) Release() error {
	if !a.Live() {
		return nil
	}
	data := a.data
	a.data = nil
	if a.release == nil {
		return nil
	}
	return a.release(data)
}
