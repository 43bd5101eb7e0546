package services

import (
	"testing"
	"time"

	"github.com/mahesh42646/usdt-backend/engine"
	"github.com/mahesh42646/usdt-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedMonthInterest plants accrual rows so the percent-cap check has a
// month total to work against.
func seedMonthInterest(t *testing.T, db *gorm.DB, userID uint, now time.Time, amount float64) {
	t.Helper()
	row := models.Accrual{
		UserID:      userID,
		AccrualDate: now.Format("2006-01-02"),
		Amount:      amount,
		RateUsed:    0.5,
	}
	require.NoError(t, db.Create(&row).Error)
}

func TestRequestWithdrawal_GateRejections(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	frozen := createTestUser(t, db, "wfrozen@test.local", 1000, 100)
	require.NoError(t, db.Model(frozen).Update("status", models.UserStatusFrozen).Error)
	_, err := RequestWithdrawal(db, frozen.ID, 50, now)
	assert.Equal(t, engine.CodeAccountFrozen, engine.GateCode(err))

	locked := createTestUser(t, db, "wlocked@test.local", 300, 100)
	_, err = RequestWithdrawal(db, locked.ID, 50, now)
	assert.Equal(t, engine.CodeBelowUnlockThreshold, engine.GateCode(err))

	u := createTestUser(t, db, "wgate@test.local", 600, 100)
	seedMonthInterest(t, db, u.ID, now, 1000)

	_, err = RequestWithdrawal(db, u.ID, 5, now)
	assert.Equal(t, engine.CodeBelowMinimum, engine.GateCode(err))

	// 30% cap of 1000 is 300.
	_, err = RequestWithdrawal(db, u.ID, 600, now)
	assert.Equal(t, engine.CodeExceedsMonthlyCap, engine.GateCode(err))

	// Within the cap but above the interest balance.
	_, err = RequestWithdrawal(db, u.ID, 200, now)
	assert.Equal(t, engine.CodeInsufficientInterest, engine.GateCode(err))

	// No request was persisted by any rejection.
	var count int64
	require.NoError(t, db.Model(&models.Withdrawal{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWithdrawal_ApproveProcessRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	u := createTestUser(t, db, "wtrip@test.local", 600, 50)
	seedMonthInterest(t, db, u.ID, now, 200)

	wd, err := RequestWithdrawal(db, u.ID, 30, now)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusPending, wd.Status)
	assert.False(t, wd.RequiresManualApproval)

	// Pending requests deduct nothing.
	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 50.0, fresh.InterestBalance)

	require.NoError(t, ApproveWithdrawal(db, wd.ID))
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 20.0, fresh.InterestBalance)

	var trx models.Transaction
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?", u.ID, models.TrxTypeWithdrawal).First(&trx).Error)
	assert.Equal(t, models.FlowDebit, trx.TransactionFlow)
	assert.Equal(t, 30.0, trx.Amount)

	// Only forward transitions are allowed.
	assert.ErrorIs(t, ApproveWithdrawal(db, wd.ID), ErrInvalidTransition)
	assert.ErrorIs(t, RejectWithdrawal(db, wd.ID), ErrInvalidTransition)

	require.NoError(t, ProcessWithdrawal(db, wd.ID, now))
	var done models.Withdrawal
	require.NoError(t, db.First(&done, wd.ID).Error)
	assert.Equal(t, models.WithdrawalStatusProcessed, done.Status)
	require.NotNil(t, done.ProcessedAt)

	assert.ErrorIs(t, ProcessWithdrawal(db, wd.ID, now), ErrInvalidTransition)

	// Processing never deducts a second time.
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 20.0, fresh.InterestBalance)
}

func TestWithdrawal_RejectLeavesBalanceUntouched(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	u := createTestUser(t, db, "wrej@test.local", 600, 50)
	seedMonthInterest(t, db, u.ID, now, 200)

	wd, err := RequestWithdrawal(db, u.ID, 30, now)
	require.NoError(t, err)
	require.NoError(t, RejectWithdrawal(db, wd.ID))

	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 50.0, fresh.InterestBalance)

	assert.ErrorIs(t, ApproveWithdrawal(db, wd.ID), ErrInvalidTransition)
	assert.ErrorIs(t, ProcessWithdrawal(db, wd.ID, now), ErrInvalidTransition)

	// A rejected request does not consume the monthly allowance.
	wd2, err := RequestWithdrawal(db, u.ID, 30, now)
	require.NoError(t, err)
	require.NoError(t, ApproveWithdrawal(db, wd2.ID))

	// An approved one does.
	_, err = RequestWithdrawal(db, u.ID, 20, now)
	assert.Equal(t, engine.CodeMonthlyLimitReached, engine.GateCode(err))
}

func TestWithdrawal_AutoApproveAndManualFlag(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	updateSetting(t, db, map[string]interface{}{
		"auto_withdraw":            true,
		"monthly_withdrawal_limit": 5,
		"monthly_percent_cap":      100,
	})

	u := createTestUser(t, db, "wauto@test.local", 20000, 7000)
	seedMonthInterest(t, db, u.ID, now, 7000)

	wd, err := RequestWithdrawal(db, u.ID, 100, now)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusApproved, wd.Status)

	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 6900.0, fresh.InterestBalance)

	// Above the large-withdrawal threshold: flagged, stays pending even
	// with auto-withdraw on.
	big, err := RequestWithdrawal(db, u.ID, 6000, now)
	require.NoError(t, err)
	assert.True(t, big.RequiresManualApproval)
	assert.Equal(t, models.WithdrawalStatusPending, big.Status)

	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 6900.0, fresh.InterestBalance)
}
