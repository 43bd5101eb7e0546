// Package engine holds the pure calculation rules of the platform: daily
// interest rates, referral slab resolution and withdrawal gate checks.
// Nothing in here touches the database; handlers and services fetch the
// current Setting row and pass explicit config values in.
package engine

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// RateConfig is the interest-rate slice of the settings record.
type RateConfig struct {
	BaseRate         float64 // %/day
	MaxRate          float64 // %/day cap
	RateIncrement    float64 // % added per ReferralStep direct referrals
	ReferralStep     int
	SpecialRate      float64 // fixed %/day for special investors
	SpecialThreshold float64 // invested USDT at which SpecialRate applies
	InactivityDays   int
}

// ErrNegativePrincipal signals a corrupted ledger: cumulative investment
// can never go below zero. Callers treat it as fatal, log the detail and
// abort the operation.
var ErrNegativePrincipal = errors.New("negative cumulative investment")

// DailyRate computes the applicable daily interest rate in percent.
// Special investors get the fixed special rate and their referral count is
// ignored; everyone else gets base + floor(referrals/step) * increment,
// capped at the max rate.
func DailyRate(cfg RateConfig, totalInvested float64, referralCount int) (float64, error) {
	if totalInvested < 0 {
		return 0, ErrNegativePrincipal
	}
	if cfg.SpecialThreshold > 0 && totalInvested >= cfg.SpecialThreshold {
		return cfg.SpecialRate, nil
	}
	rate := cfg.BaseRate
	if cfg.ReferralStep > 0 && referralCount > 0 {
		steps := referralCount / cfg.ReferralStep
		rate += float64(steps) * cfg.RateIncrement
	}
	if rate > cfg.MaxRate {
		rate = cfg.MaxRate
	}
	return rate, nil
}

// DailyCredit returns one day's interest for the given principal and rate,
// rounded to 2 decimal places. Decimal arithmetic avoids binary-float
// drift on percentage math.
func DailyCredit(totalInvested, rate float64) float64 {
	credit := decimal.NewFromFloat(totalInvested).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	f, _ := credit.Float64()
	return f
}

// AccrualPaused reports whether accrual is suspended for a user whose last
// activity is older than the inactivity window. Days missed while paused
// are never credited retroactively.
func AccrualPaused(lastActivity *time.Time, now time.Time, inactivityDays int) bool {
	if inactivityDays <= 0 || lastActivity == nil {
		return false
	}
	return now.Sub(*lastActivity) > time.Duration(inactivityDays)*24*time.Hour
}
