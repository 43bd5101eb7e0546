package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultSlabs() []Slab {
	up := func(n int) *int { return &n }
	return []Slab{
		{Min: 10, Max: up(49), Percentage: 0.5},
		{Min: 50, Max: up(90), Percentage: 1.0},
		{Min: 91, Max: up(120), Percentage: 1.5},
		{Min: 121, Max: up(150), Percentage: 2.0},
		{Min: 151, Max: nil, Percentage: 3.0},
	}
}

func TestResolvePercent_Boundaries(t *testing.T) {
	slabs := defaultSlabs()

	cases := []struct {
		count int
		want  float64
	}{
		{0, 0}, {9, 0}, // below lowest slab -> no referral income
		{10, 0.5}, {49, 0.5},
		{50, 1.0}, {90, 1.0},
		{91, 1.5}, {120, 1.5},
		{121, 2.0}, {150, 2.0},
		{151, 3.0}, {10000, 3.0}, // unbounded upper slab
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResolvePercent(slabs, c.count), "count=%d", c.count)
	}
}

func TestResolvePercent_Monotonic(t *testing.T) {
	slabs := defaultSlabs()
	prev := 0.0
	for n := 0; n <= 300; n++ {
		p := ResolvePercent(slabs, n)
		assert.GreaterOrEqual(t, p, prev, "percentage must be non-decreasing at count=%d", n)
		prev = p
	}
}

func TestValidateSlabs(t *testing.T) {
	up := func(n int) *int { return &n }

	assert.NoError(t, ValidateSlabs(defaultSlabs()))
	assert.NoError(t, ValidateSlabs(nil))

	// Overlapping ranges.
	err := ValidateSlabs([]Slab{
		{Min: 10, Max: up(50), Percentage: 0.5},
		{Min: 50, Max: up(90), Percentage: 1.0},
	})
	assert.Error(t, err)

	// Decreasing percentage.
	err = ValidateSlabs([]Slab{
		{Min: 10, Max: up(49), Percentage: 1.0},
		{Min: 50, Max: up(90), Percentage: 0.5},
	})
	assert.Error(t, err)

	// Unbounded range followed by another range.
	err = ValidateSlabs([]Slab{
		{Min: 10, Max: nil, Percentage: 0.5},
		{Min: 50, Max: up(90), Percentage: 1.0},
	})
	assert.Error(t, err)

	// Max below min.
	err = ValidateSlabs([]Slab{{Min: 50, Max: up(10), Percentage: 0.5}})
	assert.Error(t, err)
}
