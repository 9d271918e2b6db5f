// Package alloc provides deterministic allocators that carve all of their
// memory from one reservation made up front.
//
// # Overview
//
// Latency-sensitive code often wants to stay off the general-purpose
// allocator on hot paths. This package reserves a single arena per allocator
// on Create and hands out pieces of it until Destroy returns it to the
// system. Two independent allocators are provided:
//
//   - Bump: a monotonic (stack) allocator. O(1) Alloc, O(1) Reset, no
//     individual release.
//   - Pool: a fixed-size cell allocator. Alloc returns the lowest free cell,
//     Free releases one cell, Reset releases all of them.
//
// # Lifecycle
//
// Construction and reservation are separate so allocators can live in static
// or pooled storage and reserve memory when the caller chooses:
//
//	var b alloc.Bump
//	if err := b.Create(alloc.KB(1)); err != nil {
//	    return err
//	}
//	defer b.Destroy()
//
//	n, err := alloc.New[int32](&b)
//	if err != nil {
//	    return err
//	}
//	*n = 7
//
//	p := alloc.NewPool(alloc.PoolOptions{Tracking: alloc.TrackBitmap})
//	if err := p.Create(8, 8); err != nil {
//	    return err
//	}
//	defer p.Destroy()
//
//	cell, err := p.Alloc()
//	if err != nil {
//	    return err
//	}
//	defer p.Free(cell)
//
// Using an allocator before Create or after Destroy returns ErrNotCreated.
//
// # Failures
//
// Nothing in this package panics on a recoverable failure. Every failure is
// sent to the allocator's Reporter and returned as an *Error that unwraps to
// one of the sentinel errors:
//
//	ErrOutOfSpace      Bump.Alloc asked for more bytes than remain
//	ErrPoolExhausted   Pool.Alloc found no free cell
//	ErrInvalidFree     Pool.Free got a handle that names no tracked cell
//
// A failed Pool.Alloc returns a sentinel Allocation whose Cell equals
// MaxElements and whose memory is nil. Passing it to Free is rejected, so a
// caller that ignores the error cannot release an unrelated cell.
//
// # Slot Tracking
//
// TrackBitmap slices one arena into cells and keeps a usage bit per cell:
// one reservation, compact state, and Free validated by index.
// TrackRecords gives every cell its own reservation and in-use flag: cells
// are self-contained, at the cost of one reservation per cell and a linear
// pointer search on Free.
//
// # Alignment
//
// Bump.Alloc guarantees byte alignment only. New and MakeSlice pad the cursor
// to the type's alignment. Arena memory is not scanned by the garbage
// collector, so types stored in it must not contain Go pointers.
//
// # Thread Safety
//
// Allocator instances are not thread-safe and add no locking. Callers must
// synchronize access externally.
package alloc
