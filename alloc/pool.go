package alloc

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/memkit/internal/buf"
)

// Pool hands out fixed-size cells and takes them back individually.
//
// Alloc always returns the lowest-indexed free cell, so the order of
// allocations is deterministic. Alloc and the counting queries scan the
// cells, O(max elements) in the worst case; pools are expected to be small.
//
// How occupancy is tracked is chosen with PoolOptions.Tracking; the contract
// below is identical for both strategies.
//
// The zero Pool is ready for Create, tracks with a bitmap and reports to
// Discard. Not safe for concurrent use.
type Pool struct {
	slots       slotTracker
	elementSize int
	maxElements int

	rep      Reporter
	backing  Backing
	tracking Tracking

	allocs   int
	frees    int
	failures int
}

// NewPool records configuration. No memory is reserved until Create.
func NewPool(opts PoolOptions) *Pool {
	return &Pool{rep: opts.Reporter, backing: opts.Backing, tracking: opts.Tracking}
}

// Create reserves maxElements cells of elementSize bytes. Every cell starts free.
func (p *Pool) Create(elementSize, maxElements int) error {
	if p.slots != nil {
		return p.fail(&Error{Op: "pool.create", Kind: KindAlreadyCreated})
	}
	if elementSize <= 0 {
		return p.fail(&Error{Op: "pool.create", Kind: KindBadSize, Requested: elementSize})
	}
	if maxElements <= 0 {
		return p.fail(&Error{Op: "pool.create", Kind: KindBadSize, Requested: maxElements})
	}
	if _, ok := buf.MulOverflowSafe(elementSize, maxElements); !ok {
		return p.fail(&Error{Op: "pool.create", Kind: KindBadSize, Requested: elementSize})
	}

	var (
		slots slotTracker
		err   error
	)
	switch p.tracking {
	case TrackBitmap:
		slots, err = newBitmapSlots(elementSize, maxElements, p.backing)
	case TrackRecords:
		slots, err = newRecordSlots(elementSize, maxElements, p.backing)
	default:
		err = fmt.Errorf("unknown tracking %v", p.tracking)
	}
	if err != nil {
		return p.fail(fmt.Errorf("pool.create: %w", err))
	}

	p.slots = slots
	p.elementSize = elementSize
	p.maxElements = maxElements
	p.allocs, p.frees, p.failures = 0, 0, 0
	return nil
}

// Destroy releases all cell storage. Handles become invalid.
// Destroying a pool that is not live is a no-op.
func (p *Pool) Destroy() error {
	if p.slots == nil {
		return nil
	}
	err := p.slots.release()
	p.slots = nil
	p.elementSize, p.maxElements = 0, 0
	if err != nil {
		return fmt.Errorf("pool.destroy: %w", err)
	}
	return nil
}

// Alloc marks the lowest free cell used and returns its handle.
//
// When every cell is used, Alloc reports PoolExhausted and returns the
// sentinel handle: nil memory and Cell == MaxElements(). Free rejects it.
func (p *Pool) Alloc() (Allocation, error) {
	if p.slots == nil {
		return Allocation{Cell: p.maxElements}, p.fail(&Error{Op: "pool.alloc", Kind: KindNotCreated})
	}
	a, ok := p.slots.alloc()
	if !ok {
		return a, p.fail(&Error{Op: "pool.alloc", Kind: KindPoolExhausted, Cell: a.Cell})
	}
	p.allocs++
	return a, nil
}

// Free marks the cell named by a unused.
//
// The handle is validated first. With bitmap tracking its Cell must be below
// MaxElements() and its memory non-nil; with record tracking its memory must
// be a tracked cell. An invalid handle, including the sentinel from a failed
// Alloc, changes nothing and reports InvalidFree.
//
// Freeing a cell that is already free is a silent no-op.
func (p *Pool) Free(a Allocation) error {
	if p.slots == nil {
		return p.fail(&Error{Op: "pool.free", Kind: KindNotCreated, Cell: a.Cell})
	}
	wasUsed, ok := p.slots.free(a)
	if !ok {
		return p.fail(&Error{Op: "pool.free", Kind: KindInvalidFree, Cell: a.Cell})
	}
	if wasUsed {
		p.frees++
	}
	return nil
}

// Reset marks every cell unused. Memory is not cleared.
func (p *Pool) Reset() {
	if p.slots == nil {
		return
	}
	p.slots.reset()
}

// ElementSize returns the cell size given to Create.
func (p *Pool) ElementSize() int { return p.elementSize }

// MaxElements returns the cell count given to Create.
func (p *Pool) MaxElements() int { return p.maxElements }

// Tracking returns the slot-tracking strategy.
func (p *Pool) Tracking() Tracking { return p.tracking }

// Live reports whether Create succeeded and Destroy has not been called.
func (p *Pool) Live() bool { return p.slots != nil }

// NumFreeCells counts free cells.
func (p *Pool) NumFreeCells() int {
	if p.slots == nil {
		return 0
	}
	return p.slots.numFree()
}

// NumUsedCells counts used cells. NumUsedCells()+NumFreeCells() == MaxElements().
func (p *Pool) NumUsedCells() int {
	return p.maxElements - p.NumFreeCells()
}

// IsFull reports whether no cell is free. It stops at the first free cell.
// A pool that is not live is full.
func (p *Pool) IsFull() bool {
	if p.slots == nil {
		return true
	}
	return p.slots.isFull()
}

// Usage renders one glyph per cell in index order, '#' used and '.' free,
// between brackets: "[#.......]".
func (p *Pool) Usage() string {
	var sb strings.Builder
	sb.Grow(p.maxElements + 2)
	sb.WriteByte('[')
	for i := range p.maxElements {
		if p.slots.used(i) {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// PrintUsage writes "Memory Pool Usage: " followed by Usage and a newline.
func (p *Pool) PrintUsage(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Memory Pool Usage: %s\n", p.Usage())
	return err
}

func (p *Pool) reporter() Reporter {
	return orDiscard(p.rep)
}

func (p *Pool) fail(err error) error {
	p.failures++
	p.reporter().Report(err.Error())
	return err
}
