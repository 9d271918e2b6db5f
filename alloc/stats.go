package alloc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BumpStats is a snapshot of a Bump allocator.
type BumpStats struct {
	Capacity  int `json:"capacity"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
	Allocs    int `json:"allocs"`   // successful Alloc calls since Create
	Failures  int `json:"failures"` // reported failures since Create
}

// Stats returns a snapshot of the allocator.
func (b *Bump) Stats() BumpStats {
	return BumpStats{
		Capacity:  b.MaxSize(),
		Used:      b.Used(),
		Remaining: b.RemainingBytes(),
		Allocs:    b.allocs,
		Failures:  b.failures,
	}
}

// Utilization returns Used/Capacity in [0, 1], or 0 with no capacity.
func (s BumpStats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Used) / float64(s.Capacity)
}

func (s BumpStats) String() string {
	return message.NewPrinter(language.English).Sprintf(
		"bump: %d of %d bytes free (%d used, %d allocs, %d failures)",
		s.Remaining, s.Capacity, s.Used, s.Allocs, s.Failures)
}

// PoolStats is a snapshot of a Pool allocator. Used+Free == MaxElements.
type PoolStats struct {
	Tracking    string `json:"tracking"`
	ElementSize int    `json:"element_size"`
	MaxElements int    `json:"max_elements"`
	Used        int    `json:"used"`
	Free        int    `json:"free"`
	Allocs      int    `json:"allocs"`
	Frees       int    `json:"frees"` // frees that released a used cell
	Failures    int    `json:"failures"`
}

// Stats returns a snapshot of the pool. It scans every cell.
func (p *Pool) Stats() PoolStats {
	free := p.NumFreeCells()
	return PoolStats{
		Tracking:    p.tracking.String(),
		ElementSize: p.elementSize,
		MaxElements: p.maxElements,
		Used:        p.maxElements - free,
		Free:        free,
		Allocs:      p.allocs,
		Frees:       p.frees,
		Failures:    p.failures,
	}
}

func (s PoolStats) String() string {
	return message.NewPrinter(language.English).Sprintf(
		"pool: %d of %d cells free (%d bytes each, %s, %d allocs, %d frees, %d failures)",
		s.Free, s.MaxElements, s.ElementSize, s.Tracking, s.Allocs, s.Frees, s.Failures)
}
