package arena

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve_Sources(t *testing.T) {
	page := os.Getpagesize()
	tests := []struct {
		name    string
		size    int
		src     Source
		wantSrc Source
	}{
		{"auto small uses heap", 64, Auto, Heap},
		{"auto page uses mapping", page, Auto, Mapped},
		{"explicit heap", 4 * page, Heap, Heap},
		{"explicit mapping", 8, Mapped, Mapped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Reserve(tt.size, tt.src)
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Release() })

			assert.True(t, a.Live())
			assert.Equal(t, tt.wantSrc, a.Source())
			assert.Equal(t, tt.size, a.Cap())
			require.Len(t, a.Bytes(), tt.size)

			// Fresh reservations are writable end to end.
			data := a.Bytes()
			data[0] = 0xAA
			data[len(data)-1] = 0x55
			assert.Equal(t, byte(0xAA), a.Bytes()[0])
			assert.Equal(t, byte(0x55), a.Bytes()[tt.size-1])
		})
	}
}

func TestReserve_RejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1} {
		a, err := Reserve(n, Auto)
		require.ErrorIs(t, err, ErrReserve, "Reserve(%d)", n)
		assert.Nil(t, a)
	}
}

func TestReserve_UnknownSource(t *testing.T) {
	_, err := Reserve(16, Source(42))
	require.ErrorIs(t, err, ErrReserve)
	assert.Contains(t, err.Error(), "source(42)")
}

func TestRelease_Idempotent(t *testing.T) {
	a, err := Reserve(os.Getpagesize(), Mapped)
	require.NoError(t, err)

	require.NoError(t, a.Release())
	assert.False(t, a.Live())
	assert.Nil(t, a.Bytes())
	assert.Equal(t, os.Getpagesize(), a.Cap(), "capacity is fixed for the arena's lifetime")

	require.NoError(t, a.Release(), "second release should be a no-op")
}

func TestNilArena(t *testing.T) {
	var a *Arena
	assert.False(t, a.Live())
	assert.Nil(t, a.Bytes())
	assert.Zero(t, a.Cap())
	assert.NoError(t, a.Release())
}
