package services

import (
	"testing"
	"time"

	"github.com/mahesh42646/usdt-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// flatSlab replaces the seeded slab table with a single unbounded slab so
// referral income flows regardless of the referrer's network size.
func flatSlab(t *testing.T, db *gorm.DB, percentage float64) {
	t.Helper()
	require.NoError(t, db.Where("1 = 1").Delete(&models.ReferralSlab{}).Error)
	require.NoError(t, db.Create(&models.ReferralSlab{Position: 1, MinReferrals: 0, Percentage: percentage}).Error)
}

func TestCreateRelation_SelfAndCycle(t *testing.T) {
	db := setupTestDB(t)
	a := createTestUser(t, db, "a@test.local", 0, 0)
	b := createTestUser(t, db, "b@test.local", 0, 0)
	require.NoError(t, db.Model(b).Update("reff_by", a.ID).Error)

	_, err := CreateRelation(db, a.ID, a.ID)
	assert.ErrorIs(t, err, ErrSelfReferral)

	// b's ancestor chain contains a, so a cannot be referred by b.
	_, err = CreateRelation(db, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrReferralCycle)

	rel, err := CreateRelation(db, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationStatusPending, rel.Status)

	_, err = CreateRelation(db, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrAlreadyReferred)
}

func TestReferral_PendingIncomeNeverBackPaid(t *testing.T) {
	db := setupTestDB(t)
	flatSlab(t, db, 5.0)

	// Referrer below the activation threshold: relation stays Pending.
	referrer := createTestUser(t, db, "ref@test.local", 100, 0)
	referred := createTestUser(t, db, "red@test.local", 0, 0)
	rel, err := CreateRelation(db, referrer.ID, referred.ID)
	require.NoError(t, err)

	entry, err := CreateEntry(db, referred.ID, 200, 10)
	require.NoError(t, err)
	require.NoError(t, ConfirmEntry(db, entry.ID, time.Now()))

	// 5% of 200 recorded as pending, nothing credited.
	require.NoError(t, db.First(rel, rel.ID).Error)
	assert.Equal(t, models.RelationStatusPending, rel.Status)
	assert.Equal(t, 10.0, rel.PendingIncome)
	assert.Equal(t, 0.0, rel.TotalIncome)

	var fresh models.User
	require.NoError(t, db.First(&fresh, referrer.ID).Error)
	assert.Equal(t, 100.0, fresh.TotalInvested)

	// The referrer crosses the threshold: relation activates but the
	// pending income stays where it is.
	own, err := CreateEntry(db, referrer.ID, 400, 10)
	require.NoError(t, err)
	require.NoError(t, ConfirmEntry(db, own.ID, time.Now()))

	require.NoError(t, db.First(rel, rel.ID).Error)
	assert.Equal(t, models.RelationStatusActive, rel.Status)
	require.NotNil(t, rel.ActivatedAt)
	assert.Equal(t, 10.0, rel.PendingIncome)
	assert.Equal(t, 0.0, rel.TotalIncome)

	// Investments after activation pay out.
	second, err := CreateEntry(db, referred.ID, 100, 10)
	require.NoError(t, err)
	require.NoError(t, ConfirmEntry(db, second.ID, time.Now()))

	require.NoError(t, db.First(rel, rel.ID).Error)
	assert.Equal(t, 5.0, rel.TotalIncome)
	assert.Equal(t, 10.0, rel.PendingIncome)

	require.NoError(t, db.First(&fresh, referrer.ID).Error)
	assert.Equal(t, 505.0, fresh.TotalInvested)

	var credit models.InvestmentEntry
	require.NoError(t, db.Where("user_id = ? AND entry_type = ?", referrer.ID, models.EntryTypeReferralCredit).First(&credit).Error)
	assert.Equal(t, 5.0, credit.Amount)
	assert.Equal(t, models.EntryStatusConfirmed, credit.Status)
}

func TestReferral_SlabPercentFollowsNetworkSize(t *testing.T) {
	db := setupTestDB(t)

	referrer := createTestUser(t, db, "big@test.local", 1000, 0)
	// 12 direct referrals lands in the 10-49 slab at 0.5%.
	var last *models.User
	for i := 0; i < 12; i++ {
		u := createTestUser(t, db, string(rune('c'+i))+"12@test.local", 0, 0)
		rel, err := CreateRelation(db, referrer.ID, u.ID)
		require.NoError(t, err)
		require.NoError(t, db.Model(rel).Update("status", models.RelationStatusActive).Error)
		last = u
	}

	entry, err := CreateEntry(db, last.ID, 1000, 10)
	require.NoError(t, err)
	require.NoError(t, ConfirmEntry(db, entry.ID, time.Now()))

	var fresh models.User
	require.NoError(t, db.First(&fresh, referrer.ID).Error)
	assert.Equal(t, 1005.0, fresh.TotalInvested) // 0.5% of 1000
}

func TestReferral_NoRelationNoCredit(t *testing.T) {
	db := setupTestDB(t)
	flatSlab(t, db, 5.0)
	u := createTestUser(t, db, "solo@test.local", 0, 0)

	entry, err := CreateEntry(db, u.ID, 100, 10)
	require.NoError(t, err)
	require.NoError(t, ConfirmEntry(db, entry.ID, time.Now()))

	var count int64
	require.NoError(t, db.Model(&models.InvestmentEntry{}).Where("entry_type = ?", models.EntryTypeReferralCredit).Count(&count).Error)
	assert.Zero(t, count)
}
