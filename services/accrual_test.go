package services

import (
	"testing"
	"time"

	"github.com/mahesh42646/usdt-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDailyAccruals_CreditsOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db, "daily@test.local", 600, 0)
	now := time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC)

	res, err := RunDailyAccruals(db, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.Failed)

	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 3.0, fresh.InterestBalance) // 0.5% of 600

	// A second run for the same day is a no-op.
	res, err = RunDailyAccruals(db, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 1, res.Skipped)

	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 3.0, fresh.InterestBalance)

	var count int64
	require.NoError(t, db.Model(&models.Accrual{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The next day credits again.
	res, err = RunDailyAccruals(db, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 6.0, fresh.InterestBalance)
}

func TestRunDailyAccruals_RateFromReferralsAndSpecial(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC)

	// 12 direct referrals lift the rate by one step: 0.50 + 0.05 = 0.55%.
	boosted := createTestUser(t, db, "boost@test.local", 600, 0)
	for i := 0; i < 12; i++ {
		ref := createTestUser(t, db, string(rune('m'+i))+"r@test.local", 0, 0)
		_, err := CreateRelation(db, boosted.ID, ref.ID)
		require.NoError(t, err)
	}

	// Special investors get the fixed rate regardless of referrals.
	special := createTestUser(t, db, "whale@test.local", 15000, 0)

	_, err := RunDailyAccruals(db, now)
	require.NoError(t, err)

	var a models.Accrual
	require.NoError(t, db.Where("user_id = ?", boosted.ID).First(&a).Error)
	assert.Equal(t, 0.55, a.RateUsed)
	assert.Equal(t, 3.30, a.Amount)

	var sa models.Accrual
	require.NoError(t, db.Where("user_id = ?", special.ID).First(&sa).Error)
	assert.Equal(t, 1.0, sa.RateUsed)
	assert.Equal(t, 150.0, sa.Amount)
}

func TestRunDailyAccruals_SkipsFrozenAndInactive(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC)

	frozen := createTestUser(t, db, "frozen@test.local", 600, 0)
	require.NoError(t, db.Model(frozen).Update("status", models.UserStatusFrozen).Error)

	stale := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) // > 60 days back
	idle := createTestUser(t, db, "idle@test.local", 600, 0)
	require.NoError(t, db.Model(idle).Update("last_activity_at", stale).Error)

	res, err := RunDailyAccruals(db, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 2, res.Skipped)

	var count int64
	require.NoError(t, db.Model(&models.Accrual{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMonthInterest_SumsCalendarMonthOnly(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db, "month@test.local", 0, 0)

	rows := []models.Accrual{
		{UserID: u.ID, AccrualDate: "2026-08-01", Amount: 3, RateUsed: 0.5},
		{UserID: u.ID, AccrualDate: "2026-08-15", Amount: 3, RateUsed: 0.5},
		{UserID: u.ID, AccrualDate: "2026-07-31", Amount: 9, RateUsed: 0.5},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	total, err := MonthInterest(db, u.ID, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 6.0, total)
}
