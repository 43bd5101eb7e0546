package engine

import "fmt"

// Slab is one referral-count range mapped to an income percentage. Max nil
// means unbounded above.
type Slab struct {
	Min        int
	Max        *int
	Percentage float64
}

// ResolvePercent scans the ordered slab table for the first range
// containing count. A count below the lowest slab's min yields 0 (no
// referral income).
func ResolvePercent(slabs []Slab, count int) float64 {
	for _, s := range slabs {
		if count < s.Min {
			continue
		}
		if s.Max == nil || count <= *s.Max {
			return s.Percentage
		}
	}
	return 0
}

// ValidateSlabs enforces the table shape the resolver depends on: ranges
// ordered by min, non-overlapping, percentages non-decreasing, and only
// the last range unbounded.
func ValidateSlabs(slabs []Slab) error {
	for i, s := range slabs {
		if s.Min < 0 {
			return fmt.Errorf("slab %d: negative min", i+1)
		}
		if s.Max != nil && *s.Max < s.Min {
			return fmt.Errorf("slab %d: max below min", i+1)
		}
		if s.Percentage < 0 {
			return fmt.Errorf("slab %d: negative percentage", i+1)
		}
		if i == 0 {
			continue
		}
		prev := slabs[i-1]
		if prev.Max == nil {
			return fmt.Errorf("slab %d: previous range is unbounded", i+1)
		}
		if s.Min <= *prev.Max {
			return fmt.Errorf("slab %d: overlaps previous range", i+1)
		}
		if s.Percentage < prev.Percentage {
			return fmt.Errorf("slab %d: percentage decreases", i+1)
		}
	}
	return nil
}
