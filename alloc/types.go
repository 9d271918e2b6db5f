package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/internal/arena"
)

// Backing selects where an allocator's arena comes from.
type Backing = arena.Source

const (
	// BackingAuto maps arenas of at least one page from the OS and serves
	// smaller ones from the Go heap.
	BackingAuto = arena.Auto

	// BackingMapped always uses an anonymous OS mapping.
	BackingMapped = arena.Mapped

	// BackingHeap always uses a Go byte slice.
	BackingHeap = arena.Heap
)

// Tracking selects how a Pool records which cells are occupied.
type Tracking uint8

const (
	// TrackBitmap slices one arena into cells and keeps one usage bit per cell.
	// One reservation, compact state, O(1) validated release.
	TrackBitmap Tracking = iota

	// TrackRecords gives every cell its own reservation and an in-use flag.
	// Release finds the owning record by pointer, O(max elements).
	TrackRecords
)

func (t Tracking) String() string {
	switch t {
	case TrackBitmap:
		return "bitmap"
	case TrackRecords:
		return "records"
	default:
		return fmt.Sprintf("tracking(%d)", uint8(t))
	}
}

// ParseTracking converts "bitmap" or "records" to a Tracking.
func ParseTracking(s string) (Tracking, error) {
	switch s {
	case "bitmap", "":
		return TrackBitmap, nil
	case "records":
		return TrackRecords, nil
	default:
		return 0, fmt.Errorf("alloc: unknown tracking %q (want bitmap or records)", s)
	}
}

// BumpOptions configures a Bump allocator.
type BumpOptions struct {
	// Reporter receives failure messages.
	// Default: Discard
	Reporter Reporter

	// Backing selects where the arena is reserved.
	// Default: BackingAuto
	Backing Backing
}

// DefaultBumpOptions returns the defaults used by the zero Bump.
func DefaultBumpOptions() BumpOptions {
	return BumpOptions{
		Reporter: Discard,
		Backing:  BackingAuto,
	}
}

// PoolOptions configures a Pool allocator.
type PoolOptions struct {
	// Reporter receives failure messages.
	// Default: Discard
	Reporter Reporter

	// Backing selects where cell storage is reserved.
	// Default: BackingAuto
	Backing Backing

	// Tracking selects the slot-tracking strategy.
	// Default: TrackBitmap
	Tracking Tracking
}

// DefaultPoolOptions returns the defaults used by the zero Pool.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		Reporter: Discard,
		Backing:  BackingAuto,
		Tracking: TrackBitmap,
	}
}

// Allocation is the handle returned by Pool.Alloc. Pass it back to Pool.Free
// unmodified.
//
// A failed Alloc returns the sentinel handle: Mem is nil and Cell equals the
// pool's max elements, one past the last valid cell, so it can never alias a
// real cell.
type Allocation struct {
	// Mem is the cell's memory. Its length and capacity equal the element size.
	Mem []byte
	// Cell is the cell index. Do not edit it, Free relies on it.
	Cell int
}

// Valid reports whether a is a real allocation rather than the failure sentinel.
func (a Allocation) Valid() bool { return a.Mem != nil }

// Ptr returns the address of the first byte of the cell, or nil for the sentinel.
func (a Allocation) Ptr() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(a.Mem))
}
