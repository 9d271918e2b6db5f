package alloc

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfSpace indicates that a bump allocation asked for more bytes than remain.
	ErrOutOfSpace = errors.New("alloc: not enough space left")

	// ErrPoolExhausted indicates that every cell of a pool is in use.
	ErrPoolExhausted = errors.New("alloc: no free cells left")

	// ErrInvalidFree indicates a release of a handle that does not name a tracked cell.
	ErrInvalidFree = errors.New("alloc: free of memory that does not exist")

	// ErrBadSize indicates a negative allocation size or a non-positive capacity.
	ErrBadSize = errors.New("alloc: invalid size")

	// ErrNotCreated indicates use of an allocator before Create or after Destroy.
	ErrNotCreated = errors.New("alloc: allocator not created")

	// ErrAlreadyCreated indicates Create on an allocator that is still live.
	ErrAlreadyCreated = errors.New("alloc: allocator already created")

	// ErrBadMark indicates a rewind to a mark beyond the current cursor.
	ErrBadMark = errors.New("alloc: mark beyond cursor")
)

// Kind classifies a recoverable allocator failure.
type Kind uint8

const (
	KindOutOfSpace Kind = iota + 1
	KindPoolExhausted
	KindInvalidFree
	KindBadSize
	KindNotCreated
	KindAlreadyCreated
	KindBadMark
)

func (k Kind) String() string {
	switch k {
	case KindOutOfSpace:
		return "OutOfSpace"
	case KindPoolExhausted:
		return "PoolExhausted"
	case KindInvalidFree:
		return "InvalidFree"
	case KindBadSize:
		return "BadSize"
	case KindNotCreated:
		return "NotCreated"
	case KindAlreadyCreated:
		return "AlreadyCreated"
	case KindBadMark:
		return "BadMark"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindOutOfSpace:
		return ErrOutOfSpace
	case KindPoolExhausted:
		return ErrPoolExhausted
	case KindInvalidFree:
		return ErrInvalidFree
	case KindBadSize:
		return ErrBadSize
	case KindNotCreated:
		return ErrNotCreated
	case KindAlreadyCreated:
		return ErrAlreadyCreated
	case KindBadMark:
		return ErrBadMark
	default:
		return nil
	}
}

// Error describes a failed allocator operation. It unwraps to the sentinel
// for its Kind, so callers can match with errors.Is(err, ErrOutOfSpace).
type Error struct {
	Op   string // e.g. "bump.alloc", "pool.free"
	Kind Kind

	// Requested is the size asked for (OutOfSpace, BadSize, BadMark).
	Requested int
	// Remaining is the number of bytes left when the request failed (OutOfSpace).
	Remaining int
	// Cell is the cell index carried by the failing handle (PoolExhausted, InvalidFree).
	Cell int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindOutOfSpace:
		return fmt.Sprintf(
			"%s: failed to allocate memory, the size of the requested allocation (%d) "+
				"is bigger than the remaining size left in the allocator (%d)",
			e.Op, e.Requested, e.Remaining)
	case KindPoolExhausted:
		return fmt.Sprintf(
			"%s: failed to allocate memory, there are no more free cells in the memory pool",
			e.Op)
	case KindInvalidFree:
		return fmt.Sprintf(
			"%s: failed to free memory, attempted to free memory that does not exist (cell %d)",
			e.Op, e.Cell)
	case KindBadSize:
		return fmt.Sprintf("%s: invalid size %d", e.Op, e.Requested)
	case KindBadMark:
		return fmt.Sprintf("%s: mark %d is beyond the cursor", e.Op, e.Requested)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Kind.sentinel())
	}
}

func (e *Error) Unwrap() error { return e.Kind.sentinel() }
