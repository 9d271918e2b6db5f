package alloc

import (
	"errors"
	"unsafe"

	"github.com/joshuapare/memkit/internal/arena"
)

// record owns one cell's memory for the whole life of the pool.
type record struct {
	mem   *arena.Arena
	inUse bool
}

// recordSlots keeps one self-contained record per cell. Each record's block
// is reserved on create and released on destroy; the handle's pointer alone
// identifies the record on free.
type recordSlots struct {
	recs []record
	size int
}

func newRecordSlots(size, n int, src Backing) (*recordSlots, error) {
	s := &recordSlots{recs: make([]record, 0, n), size: size}
	for range n {
		a, err := arena.Reserve(size, src)
		if err != nil {
			_ = s.release()
			return nil, err
		}
		s.recs = append(s.recs, record{mem: a})
	}
	return s, nil
}

func (s *recordSlots) alloc() (Allocation, bool) {
	for i := range s.recs {
		if s.recs[i].inUse {
			continue
		}
		s.recs[i].inUse = true
		mem := s.recs[i].mem.Bytes()
		return Allocation{Mem: mem[:s.size:s.size], Cell: i}, true
	}
	return Allocation{Cell: len(s.recs)}, false
}

// free ignores a.Cell: only pointer equality with a record's block counts.
func (s *recordSlots) free(a Allocation) (bool, bool) {
	p := a.Ptr()
	if p == nil {
		return false, false
	}
	for i := range s.recs {
		if unsafe.Pointer(unsafe.SliceData(s.recs[i].mem.Bytes())) == p {
			wasUsed := s.recs[i].inUse
			s.recs[i].inUse = false
			return wasUsed, true
		}
	}
	return false, false
}

func (s *recordSlots) reset() {
	for i := range s.recs {
		s.recs[i].inUse = false
	}
}

func (s *recordSlots) numFree() int {
	free := 0
	for i := range s.recs {
		if !s.recs[i].inUse {
			free++
		}
	}
	return free
}

func (s *recordSlots) isFull() bool {
	for i := range s.recs {
		if !s.recs[i].inUse {
			return false
		}
	}
	return true
}

func (s *recordSlots) used(cell int) bool {
	return s.recs[cell].inUse
}

func (s *recordSlots) release() error {
	var errs []error
	for i := range s.recs {
		errs = append(errs, s.recs[i].mem.Release())
	}
	s.recs = nil
	return errors.Join(errs...)
}
