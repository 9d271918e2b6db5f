package alloc

import (
	"unsafe"

	"github.com/joshuapare/memkit/internal/buf"
)

// New allocates a zeroed T from b, padding the cursor up to T's alignment
// first. Padding and value are taken in a single Alloc, so on failure the
// cursor does not move.
//
// T must not contain Go pointers: the garbage collector does not scan arena
// memory, so anything referenced only from there can be collected.
func New[T any](b *Bump) (*T, error) {
	if !b.Live() {
		return nil, b.fail(&Error{Op: "bump.new", Kind: KindNotCreated})
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T), nil
	}
	block, err := allocAligned(b, size, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	clear(block)
	return (*T)(unsafe.Pointer(unsafe.SliceData(block))), nil
}

// MakeSlice allocates a zeroed []T of length n from b, aligned for T.
// The same pointer restriction as New applies.
func MakeSlice[T any](b *Bump, n int) ([]T, error) {
	if !b.Live() {
		return nil, b.fail(&Error{Op: "bump.makeslice", Kind: KindNotCreated, Requested: n})
	}
	if n < 0 {
		return nil, b.fail(&Error{Op: "bump.makeslice", Kind: KindBadSize, Requested: n})
	}
	var zero T
	total, ok := buf.MulOverflowSafe(int(unsafe.Sizeof(zero)), n)
	if !ok {
		return nil, b.fail(&Error{Op: "bump.makeslice", Kind: KindBadSize, Requested: n})
	}
	if total == 0 {
		return make([]T, n), nil
	}
	block, err := allocAligned(b, total, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	clear(block)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(block))), n), nil
}

// allocAligned takes padding+size bytes in one call and returns the aligned tail.
func allocAligned(b *Bump, size, align int) ([]byte, error) {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b.arena.Bytes()))) + uintptr(b.cursor)
	pad := int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
	total, ok := buf.AddOverflowSafe(pad, size)
	if !ok {
		return nil, b.fail(&Error{Op: "bump.alloc", Kind: KindBadSize, Requested: size})
	}
	block, err := b.Alloc(total)
	if err != nil {
		return nil, err
	}
	return block[pad:], nil
}
