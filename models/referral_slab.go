package models

// ReferralSlab maps a direct-referral-count range to an income percentage.
// MaxReferrals nil means the range is unbounded above. Rows are kept
// ordered by Position; the admin settings handler validates that ranges
// are ordered and non-overlapping before saving.
type ReferralSlab struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Position     int     `gorm:"not null" json:"position"`
	MinReferrals int     `gorm:"not null" json:"min_referrals"`
	MaxReferrals *int    `json:"max_referrals"`
	Percentage   float64 `gorm:"type:decimal(6,2);not null" json:"percentage"`
}

func (ReferralSlab) TableName() string {
	return "referral_slabs"
}

// DefaultReferralSlabs seeds the slab table on first migration.
func DefaultReferralSlabs() []ReferralSlab {
	up := func(n int) *int { return &n }
	return []ReferralSlab{
		{Position: 1, MinReferrals: 10, MaxReferrals: up(49), Percentage: 0.5},
		{Position: 2, MinReferrals: 50, MaxReferrals: up(90), Percentage: 1.0},
		{Position: 3, MinReferrals: 91, MaxReferrals: up(120), Percentage: 1.5},
		{Position: 4, MinReferrals: 121, MaxReferrals: up(150), Percentage: 2.0},
		{Position: 5, MinReferrals: 151, MaxReferrals: nil, Percentage: 3.0},
	}
}
