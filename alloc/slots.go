package alloc

import (
	"fmt"
	"math/bits"

	"github.com/joshuapare/memkit/internal/arena"
	"github.com/joshuapare/memkit/internal/buf"
)

// slotTracker is the bookkeeping behind a Pool. Both implementations hand out
// the lowest free cell first and validate a handle before touching state.
type slotTracker interface {
	// alloc marks the lowest free cell used. ok is false when none is free.
	alloc() (a Allocation, ok bool)
	// free marks the cell named by a unused and reports whether it was in use.
	// ok is false, and nothing changes, when a does not name a tracked cell.
	free(a Allocation) (wasUsed, ok bool)
	reset()
	numFree() int
	isFull() bool
	used(cell int) bool
	release() error
}

const wordBits = 64

// bitmapSlots slices one arena into fixed-size cells and keeps one usage bit
// per cell. Bit i of the bitmap is set iff cell i, at byte offset i*size, is
// allocated. Bits past the last cell are kept set so a search never
// returns them.
type bitmapSlots struct {
	arena *arena.Arena
	size  int
	n     int
	words []uint64
}

func newBitmapSlots(size, n int, src Backing) (*bitmapSlots, error) {
	total, ok := buf.MulOverflowSafe(size, n)
	if !ok {
		return nil, fmt.Errorf("cell storage overflows int: %d x %d", size, n)
	}
	a, err := arena.Reserve(total, src)
	if err != nil {
		return nil, err
	}
	s := &bitmapSlots{
		arena: a,
		size:  size,
		n:     n,
		words: make([]uint64, (n+wordBits-1)/wordBits),
	}
	s.reset()
	return s, nil
}

func (s *bitmapSlots) alloc() (Allocation, bool) {
	for w, word := range s.words {
		if word == ^uint64(0) {
			continue
		}
		bit := bits.TrailingZeros64(^word)
		s.words[w] |= 1 << bit
		cell := w*wordBits + bit
		mem, _ := buf.Slice(s.arena.Bytes(), cell*s.size, s.size)
		return Allocation{Mem: mem, Cell: cell}, true
	}
	return Allocation{Cell: s.n}, false
}

func (s *bitmapSlots) free(a Allocation) (bool, bool) {
	if a.Cell < 0 || a.Cell >= s.n || a.Mem == nil {
		return false, false
	}
	wasUsed := s.used(a.Cell)
	s.words[a.Cell/wordBits] &^= 1 << (a.Cell % wordBits)
	return wasUsed, true
}

func (s *bitmapSlots) reset() {
	clear(s.words)
	if tail := s.n % wordBits; tail != 0 {
		s.words[len(s.words)-1] = ^uint64(0) << tail
	}
}

func (s *bitmapSlots) numFree() int {
	free := len(s.words) * wordBits
	for _, word := range s.words {
		free -= bits.OnesCount64(word)
	}
	return free
}

func (s *bitmapSlots) isFull() bool {
	for _, word := range s.words {
		if word != ^uint64(0) {
			return false
		}
	}
	return true
}

func (s *bitmapSlots) used(cell int) bool {
	return s.words[cell/wordBits]&(1<<(cell%wordBits)) != 0
}

func (s *bitmapSlots) release() error {
	s.words = nil
	return s.arena.Release()
}
