package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultGateConfig() GateConfig {
	return GateConfig{
		UnlockThreshold:          500,
		MinWithdraw:              20,
		MonthlyPercentCap:        30,
		MonthlyWithdrawalLimit:   1,
		LargeWithdrawalThreshold: 5000,
	}
}

func eligibleUser() UserState {
	return UserState{TotalInvested: 600, InterestBalance: 1000}
}

func TestCheckWithdrawal_Passes(t *testing.T) {
	err := CheckWithdrawal(defaultGateConfig(), eligibleUser(), 100, 1000, 0)
	assert.NoError(t, err)
}

func TestCheckWithdrawal_Frozen(t *testing.T) {
	u := eligibleUser()
	u.Frozen = true
	err := CheckWithdrawal(defaultGateConfig(), u, 100, 1000, 0)
	assert.Equal(t, CodeAccountFrozen, GateCode(err))
}

func TestCheckWithdrawal_BelowUnlockThreshold(t *testing.T) {
	u := eligibleUser()
	u.TotalInvested = 499.99
	err := CheckWithdrawal(defaultGateConfig(), u, 100, 1000, 0)
	assert.Equal(t, CodeBelowUnlockThreshold, GateCode(err))
}

func TestCheckWithdrawal_BelowMinimum(t *testing.T) {
	err := CheckWithdrawal(defaultGateConfig(), eligibleUser(), 19.99, 1000, 0)
	assert.Equal(t, CodeBelowMinimum, GateCode(err))
}

func TestCheckWithdrawal_ExceedsMonthlyPercentCap(t *testing.T) {
	// 1,000 USDT accrued this month, 30% cap = 300; 600 must be rejected.
	err := CheckWithdrawal(defaultGateConfig(), eligibleUser(), 600, 1000, 0)
	assert.Equal(t, CodeExceedsMonthlyCap, GateCode(err))

	// Exactly at the cap passes.
	err = CheckWithdrawal(defaultGateConfig(), eligibleUser(), 300, 1000, 0)
	assert.NoError(t, err)
}

func TestCheckWithdrawal_MonthlyLimitReached(t *testing.T) {
	err := CheckWithdrawal(defaultGateConfig(), eligibleUser(), 100, 1000, 1)
	assert.Equal(t, CodeMonthlyLimitReached, GateCode(err))
}

func TestCheckWithdrawal_InsufficientInterestBalance(t *testing.T) {
	u := eligibleUser()
	u.InterestBalance = 50
	err := CheckWithdrawal(defaultGateConfig(), u, 100, 1000, 0)
	assert.Equal(t, CodeInsufficientInterest, GateCode(err))
}

func TestRequiresManualApproval(t *testing.T) {
	cfg := defaultGateConfig()
	assert.False(t, RequiresManualApproval(cfg, 5000))
	assert.True(t, RequiresManualApproval(cfg, 5000.01))
}

func TestGateCode_NonGateError(t *testing.T) {
	assert.Equal(t, "", GateCode(nil))
	assert.Equal(t, "", GateCode(assert.AnError))
}
