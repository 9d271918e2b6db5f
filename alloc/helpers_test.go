package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// allTrackings lists every slot-tracking strategy; pool tests run against each.
var allTrackings = []Tracking{TrackBitmap, TrackRecords}

// recorder is a Reporter that keeps every message.
type recorder struct {
	msgs []string
}

func (r *recorder) Report(message string) { r.msgs = append(r.msgs, message) }

func (r *recorder) last() string {
	if len(r.msgs) == 0 {
		return ""
	}
	return r.msgs[len(r.msgs)-1]
}

// newTestBump creates a live Bump of maxSize bytes reporting to a recorder.
func newTestBump(t testing.TB, maxSize int) (*Bump, *recorder) {
	t.Helper()
	rec := &recorder{}
	b := NewBump(BumpOptions{Reporter: rec})
	require.NoError(t, b.Create(maxSize))
	t.Cleanup(func() { _ = b.Destroy() })
	return b, rec
}

// newTestPool creates a live Pool reporting to a recorder.
func newTestPool(t testing.TB, tracking Tracking, elementSize, maxElements int) (*Pool, *recorder) {
	t.Helper()
	rec := &recorder{}
	p := NewPool(PoolOptions{Reporter: rec, Tracking: tracking})
	require.NoError(t, p.Create(elementSize, maxElements))
	t.Cleanup(func() { _ = p.Destroy() })
	return p, rec
}

// fillPool allocates every cell and returns the handles in order.
func fillPool(t testing.TB, p *Pool) []Allocation {
	t.Helper()
	handles := make([]Allocation, 0, p.MaxElements())
	for i := range p.MaxElements() {
		a, err := p.Alloc()
		require.NoError(t, err, "Alloc %d should succeed", i)
		handles = append(handles, a)
	}
	return handles
}
