package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/arena"
)

// TestBump_CreateState checks the state right after Create.
func TestBump_CreateState(t *testing.T) {
	b, rec := newTestBump(t, KB(1))

	assert.True(t, b.Live())
	assert.Equal(t, 1024, b.MaxSize())
	assert.Equal(t, 1024, b.RemainingBytes())
	assert.Zero(t, b.Used())
	assert.False(t, b.IsFull())
	assert.Empty(t, rec.msgs)
}

// TestBump_Monotonic verifies that blocks are laid out back to back.
func TestBump_Monotonic(t *testing.T) {
	b, _ := newTestBump(t, 256)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(b.arena.Bytes())))

	sizes := []int{1, 7, 16, 3, 64, 0, 100}
	offset := 0
	for i, size := range sizes {
		block, err := b.Alloc(size)
		require.NoError(t, err, "Alloc(%d) #%d", size, i)
		require.NotNil(t, block)
		require.Len(t, block, size)
		assert.Equal(t, size, cap(block), "block capacity should be clipped")

		got := uintptr(unsafe.Pointer(unsafe.SliceData(block))) - base
		if size > 0 {
			assert.Equal(t, uintptr(offset), got, "block %d should start at %d", i, offset)
		}
		offset += size
		assert.Equal(t, offset, b.Used())
	}
	assert.Equal(t, 256-offset, b.RemainingBytes())
}

// TestBump_BlocksDoNotOverlap writes distinct bytes into each block and
// reads them back.
func TestBump_BlocksDoNotOverlap(t *testing.T) {
	b, _ := newTestBump(t, 64)

	var blocks [][]byte
	for i := range 8 {
		block, err := b.Alloc(8)
		require.NoError(t, err)
		for j := range block {
			block[j] = byte(i)
		}
		blocks = append(blocks, block)
	}
	for i, block := range blocks {
		for _, v := range block {
			require.Equal(t, byte(i), v, "block %d was overwritten", i)
		}
	}
	assert.True(t, b.IsFull())
}

// TestBump_OutOfSpaceScenario: 1024 bytes, Alloc(4) then Alloc(1021).
func TestBump_OutOfSpaceScenario(t *testing.T) {
	b, rec := newTestBump(t, KB(1))

	first, err := b.Alloc(4)
	require.NoError(t, err)
	copy(first, []byte{1, 2, 3, 4})

	second, err := b.Alloc(1021)
	require.Error(t, err)
	assert.Nil(t, second)
	assert.ErrorIs(t, err, ErrOutOfSpace)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindOutOfSpace, ae.Kind)
	assert.Equal(t, 1021, ae.Requested)
	assert.Equal(t, 1020, ae.Remaining)

	assert.Equal(t, 1020, b.RemainingBytes(), "failed Alloc must not move the cursor")
	assert.Equal(t, []byte{1, 2, 3, 4}, first, "first block stays valid")

	require.Len(t, rec.msgs, 1)
	assert.Contains(t, rec.last(), "(1021)")
	assert.Contains(t, rec.last(), "(1020)")
}

func TestBump_ExactFit(t *testing.T) {
	b, rec := newTestBump(t, 16)

	_, err := b.Alloc(16)
	require.NoError(t, err)
	assert.True(t, b.IsFull())
	assert.Zero(t, b.RemainingBytes())

	empty, err := b.Alloc(0)
	require.NoError(t, err, "zero-size allocation fits in a full arena")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = b.Alloc(1)
	require.ErrorIs(t, err, ErrOutOfSpace)
	assert.Len(t, rec.msgs, 1)
}

func TestBump_HugeRequestDoesNotOverflow(t *testing.T) {
	b, _ := newTestBump(t, 32)
	_, err := b.Alloc(8)
	require.NoError(t, err)

	_, err = b.Alloc(int(^uint(0) >> 1))
	require.ErrorIs(t, err, ErrOutOfSpace)
	assert.Equal(t, 8, b.Used())
}

func TestBump_NegativeSize(t *testing.T) {
	b, rec := newTestBump(t, 32)
	block, err := b.Alloc(-1)
	require.ErrorIs(t, err, ErrBadSize)
	assert.Nil(t, block)
	assert.Zero(t, b.Used())
	assert.Len(t, rec.msgs, 1)
}

// TestBump_Reset checks that Reset rewinds without clearing memory.
func TestBump_Reset(t *testing.T) {
	b, _ := newTestBump(t, 32)

	block, err := b.Alloc(4)
	require.NoError(t, err)
	copy(block, "abcd")

	b.Reset()
	assert.Zero(t, b.Used())
	assert.Equal(t, 32, b.RemainingBytes())

	again, err := b.Alloc(4)
	require.NoError(t, err)
	assert.Same(t, unsafe.SliceData(block), unsafe.SliceData(again), "Reset restarts at offset 0")
	assert.Equal(t, "abcd", string(again), "Reset does not clear memory")
}

func TestBump_ResetIdempotent(t *testing.T) {
	b, _ := newTestBump(t, 64)
	_, err := b.Alloc(10)
	require.NoError(t, err)

	b.Reset()
	once := b.RemainingBytes()
	b.Reset()
	assert.Equal(t, once, b.RemainingBytes())
}

func TestBump_MarkRewind(t *testing.T) {
	b, rec := newTestBump(t, 64)

	_, err := b.Alloc(8)
	require.NoError(t, err)
	m := b.Mark()

	_, err = b.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, 24, b.Used())

	require.NoError(t, b.Rewind(m))
	assert.Equal(t, 8, b.Used())

	err = b.Rewind(Mark(40))
	require.ErrorIs(t, err, ErrBadMark)
	assert.Equal(t, 8, b.Used(), "rejected rewind leaves the cursor alone")

	require.ErrorIs(t, b.Rewind(Mark(-1)), ErrBadMark)
	assert.Len(t, rec.msgs, 2)
}

// TestBump_Lifecycle covers use before Create and after Destroy.
func TestBump_Lifecycle(t *testing.T) {
	rec := &recorder{}
	b := NewBump(BumpOptions{Reporter: rec})

	_, err := b.Alloc(1)
	require.ErrorIs(t, err, ErrNotCreated)
	assert.True(t, b.IsFull())
	assert.Zero(t, b.MaxSize())

	require.NoError(t, b.Create(128))
	require.ErrorIs(t, b.Create(128), ErrAlreadyCreated)
	assert.Equal(t, 128, b.MaxSize(), "second Create keeps the first arena")

	require.NoError(t, b.Destroy())
	assert.False(t, b.Live())
	require.NoError(t, b.Destroy(), "second Destroy is a no-op")

	_, err = b.Alloc(1)
	require.ErrorIs(t, err, ErrNotCreated)
	require.ErrorIs(t, b.Rewind(0), ErrNotCreated)
	b.Reset()

	assert.Len(t, rec.msgs, 4)
}

func TestBump_CreateRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -8} {
		var b Bump
		err := b.Create(size)
		require.ErrorIs(t, err, ErrBadSize, "Create(%d)", size)
		assert.False(t, b.Live())
	}
}

func TestBump_ReserveFailureIsCounted(t *testing.T) {
	rec := &recorder{}
	b := NewBump(BumpOptions{Backing: Backing(42), Reporter: rec})
	err := b.Create(64)
	require.ErrorIs(t, err, arena.ErrReserve)
	assert.Contains(t, err.Error(), "bump.create")
	assert.False(t, b.Live())
	assert.Equal(t, []string{err.Error()}, rec.msgs)
	assert.Equal(t, 1, b.Stats().Failures)
}

// TestBump_ZeroValue checks that a zero Bump works and stays silent.
func TestBump_ZeroValue(t *testing.T) {
	var b Bump
	require.NoError(t, b.Create(64))
	defer b.Destroy()

	_, err := b.Alloc(65)
	require.ErrorIs(t, err, ErrOutOfSpace)
	assert.Equal(t, BackingHeap, b.Backing(), "sub-page arenas come from the heap")
}

func TestBump_Backing(t *testing.T) {
	tests := []struct {
		name    string
		backing Backing
		size    int
		want    Backing
	}{
		{"heap", BackingHeap, MB(1), BackingHeap},
		{"mapped", BackingMapped, 64, BackingMapped},
		{"auto large", BackingAuto, MB(1), BackingMapped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBump(BumpOptions{Backing: tt.backing})
			require.NoError(t, b.Create(tt.size))
			defer b.Destroy()
			assert.Equal(t, tt.want, b.Backing())

			block, err := b.Alloc(tt.size)
			require.NoError(t, err)
			block[0], block[tt.size-1] = 1, 2
		})
	}
}

func TestBump_MonotonicityProperty(t *testing.T) {
	const capacity = 1000
	b, _ := newTestBump(t, capacity)

	sum := 0
	for i := 1; ; i++ {
		_, err := b.Alloc(i)
		if err != nil {
			require.ErrorIs(t, err, ErrOutOfSpace)
			break
		}
		sum += i
		require.LessOrEqual(t, sum, capacity)
		require.Equal(t, sum, b.Used())
	}
	assert.Equal(t, capacity-sum, b.RemainingBytes())
}

func BenchmarkBump_Alloc(b *testing.B) {
	bump, _ := newTestBump(b, MB(1))
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if _, err := bump.Alloc(64); err != nil {
			bump.Reset()
		}
	}
}
