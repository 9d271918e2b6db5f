package alloc

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/arena"
	"github.com/joshuapare/memkit/internal/buf"
)

// Bump is a monotonic (stack) allocator over a single arena.
//
// Key characteristics:
//   - O(1) allocation: the cursor moves forward by the requested size
//   - O(1) Reset: the cursor returns to zero, memory is not cleared
//   - No individual Free: releasing one block would break the cursor invariant
//   - No alignment beyond bytes: callers pad sizes, or use New / MakeSlice
//
// The zero Bump is ready for Create and reports to Discard.
// Not safe for concurrent use.
type Bump struct {
	arena  *arena.Arena
	cursor int

	rep     Reporter
	backing Backing

	allocs   int
	failures int
}

// Mark is a saved cursor position, see Bump.Mark.
type Mark int

// NewBump records configuration. No memory is reserved until Create.
func NewBump(opts BumpOptions) *Bump {
	return &Bump{rep: opts.Reporter, backing: opts.Backing}
}

// Create reserves maxSize bytes and resets the cursor to 0.
// Use KB, MB and GB to convert from larger units.
func (b *Bump) Create(maxSize int) error {
	if b.arena.Live() {
		return b.fail(&Error{Op: "bump.create", Kind: KindAlreadyCreated})
	}
	if maxSize <= 0 {
		return b.fail(&Error{Op: "bump.create", Kind: KindBadSize, Requested: maxSize})
	}
	a, err := arena.Reserve(maxSize, b.backing)
	if err != nil {
		return b.fail(fmt.Errorf("bump.create: %w", err))
	}
	b.arena = a
	b.cursor = 0
	b.allocs, b.failures = 0, 0
	return nil
}

// Destroy releases the arena. Every block handed out becomes invalid.
// Destroying an allocator that is not live is a no-op.
func (b *Bump) Destroy() error {
	if !b.arena.Live() {
		return nil
	}
	err := b.arena.Release()
	b.arena = nil
	b.cursor = 0
	if err != nil {
		return fmt.Errorf("bump.destroy: %w", err)
	}
	return nil
}

// Alloc returns the next size bytes of the arena and advances the cursor.
//
// If fewer than size bytes remain, Alloc reports an OutOfSpace error carrying
// the requested and remaining sizes, leaves the cursor untouched and returns
// a nil slice. Alloc(0) returns an empty, non-nil slice.
//
// The returned slice has cap == len, so appending to it reallocates on the
// heap instead of overwriting the next block.
func (b *Bump) Alloc(size int) ([]byte, error) {
	if !b.arena.Live() {
		return nil, b.fail(&Error{Op: "bump.alloc", Kind: KindNotCreated, Requested: size})
	}
	if size < 0 {
		return nil, b.fail(&Error{Op: "bump.alloc", Kind: KindBadSize, Requested: size})
	}

	end, err := buf.CheckSpan(b.arena.Cap(), b.cursor, size)
	if err != nil {
		return nil, b.fail(&Error{
			Op:        "bump.alloc",
			Kind:      KindOutOfSpace,
			Requested: size,
			Remaining: b.RemainingBytes(),
		})
	}

	block, _ := buf.Slice(b.arena.Bytes(), b.cursor, size)
	b.cursor = end
	b.allocs++
	return block, nil
}

// Reset makes the whole arena available again. It does not clear memory;
// previously returned blocks become logically invalid.
func (b *Bump) Reset() {
	b.cursor = 0
}

// Mark returns the current cursor so a later Rewind can drop everything
// allocated after it.
func (b *Bump) Mark() Mark {
	return Mark(b.cursor)
}

// Rewind moves the cursor back to m. Blocks allocated after m become invalid.
// A mark beyond the current cursor is rejected and the cursor is unchanged.
func (b *Bump) Rewind(m Mark) error {
	if !b.arena.Live() {
		return b.fail(&Error{Op: "bump.rewind", Kind: KindNotCreated, Requested: int(m)})
	}
	if m < 0 || int(m) > b.cursor {
		return b.fail(&Error{Op: "bump.rewind", Kind: KindBadMark, Requested: int(m)})
	}
	b.cursor = int(m)
	return nil
}

// MaxSize returns the capacity given to Create, or 0 when not live.
func (b *Bump) MaxSize() int {
	return b.arena.Cap()
}

// RemainingBytes returns how many bytes can still be allocated.
func (b *Bump) RemainingBytes() int {
	return b.MaxSize() - b.cursor
}

// Used returns the cursor: how many bytes have been handed out since the
// last Reset.
func (b *Bump) Used() int {
	return b.cursor
}

// IsFull reports whether no byte is left. An allocator that is not live is full.
func (b *Bump) IsFull() bool {
	return b.cursor >= b.MaxSize()
}

// Live reports whether Create succeeded and Destroy has not been called.
func (b *Bump) Live() bool {
	return b.arena.Live()
}

// Backing reports where the arena was reserved. It is only meaningful while live.
func (b *Bump) Backing() Backing {
	if !b.arena.Live() {
		return b.backing
	}
	return b.arena.Source()
}

func (b *Bump) reporter() Reporter {
	return orDiscard(b.rep)
}

func (b *Bump) fail(err error) error {
	b.failures++
	b.reporter().Report(err.Error())
	return err
}
