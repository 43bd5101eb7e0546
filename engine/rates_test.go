package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func defaultRateConfig() RateConfig {
	return RateConfig{
		BaseRate:         0.50,
		MaxRate:          2.00,
		RateIncrement:    0.05,
		ReferralStep:     10,
		SpecialRate:      1.00,
		SpecialThreshold: 10000,
		InactivityDays:   60,
	}
}

func TestDailyRate_BaseWithReferralBonus(t *testing.T) {
	// 600 USDT invested, 12 direct referrals -> 0.50 + 1*0.05 = 0.55%.
	rate, err := DailyRate(defaultRateConfig(), 600, 12)
	assert.NoError(t, err)
	assert.InDelta(t, 0.55, rate, 1e-9)

	credit := DailyCredit(600, rate)
	assert.Equal(t, 3.30, credit)
}

func TestDailyRate_NoReferrals(t *testing.T) {
	rate, err := DailyRate(defaultRateConfig(), 100, 0)
	assert.NoError(t, err)
	assert.InDelta(t, 0.50, rate, 1e-9)
}

func TestDailyRate_CappedAtMax(t *testing.T) {
	// 400 referrals would add 40*0.05 = 2.00 on top of base; cap wins.
	rate, err := DailyRate(defaultRateConfig(), 600, 400)
	assert.NoError(t, err)
	assert.InDelta(t, 2.00, rate, 1e-9)
}

func TestDailyRate_SpecialInvestorIgnoresReferrals(t *testing.T) {
	// 15,000 USDT is above the special threshold: fixed 1.00% regardless
	// of referral count.
	for _, refs := range []int{0, 12, 500} {
		rate, err := DailyRate(defaultRateConfig(), 15000, refs)
		assert.NoError(t, err)
		assert.InDelta(t, 1.00, rate, 1e-9)
	}
}

func TestDailyRate_ExactSpecialThreshold(t *testing.T) {
	rate, err := DailyRate(defaultRateConfig(), 10000, 0)
	assert.NoError(t, err)
	assert.InDelta(t, 1.00, rate, 1e-9)
}

func TestDailyRate_NegativePrincipalIsFatal(t *testing.T) {
	_, err := DailyRate(defaultRateConfig(), -1, 0)
	assert.ErrorIs(t, err, ErrNegativePrincipal)
}

func TestDailyCredit_Rounding(t *testing.T) {
	// 333.33 * 0.55% = 1.8333... -> 1.83
	assert.Equal(t, 1.83, DailyCredit(333.33, 0.55))
	assert.Equal(t, 0.0, DailyCredit(0, 0.55))
}

func TestAccrualPaused(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	recent := now.AddDate(0, 0, -10)
	assert.False(t, AccrualPaused(&recent, now, 60))

	stale := now.AddDate(0, 0, -61)
	assert.True(t, AccrualPaused(&stale, now, 60))

	// No recorded activity yet does not pause accrual.
	assert.False(t, AccrualPaused(nil, now, 60))

	// Disabled window never pauses.
	assert.False(t, AccrualPaused(&stale, now, 0))
}
