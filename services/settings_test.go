package services

import (
	"testing"

	"github.com/mahesh42646/usdt-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSetting_SeedsUsableSnapshotOnFirstUse(t *testing.T) {
	db := setupTestDB(t)

	// The very first call seeds the singleton. The returned snapshot must
	// already carry the platform defaults; a zeroed config would silently
	// skip an accrual day and reject every withdrawal.
	s, err := LoadSetting(db)
	require.NoError(t, err)
	assert.Equal(t, 0.50, s.BaseRate)
	assert.Equal(t, 2.00, s.MaxRate)
	assert.Equal(t, 0.05, s.RateIncrement)
	assert.Equal(t, 10.0, s.MinInvest)
	assert.Equal(t, 20.0, s.MinWithdraw)
	assert.Equal(t, 1, s.MonthlyWithdrawalLimit)
	assert.Equal(t, 30.0, s.MonthlyPercentCap)
	assert.Equal(t, 1, s.Version)

	// The seed struct itself is fully populated before the insert, so the
	// snapshot does not depend on the driver reading column defaults back.
	seed := models.DefaultSetting()
	assert.Equal(t, s.BaseRate, seed.BaseRate)
	assert.Equal(t, s.MonthlyWithdrawalLimit, seed.MonthlyWithdrawalLimit)

	// A second call reuses the stored row instead of seeding again.
	again, err := LoadSetting(db)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
