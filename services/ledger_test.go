package services

import (
	"testing"
	"time"

	"github.com/mahesh42646/usdt-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntry_BelowMinimum(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db, "min@test.local", 0, 0)

	_, err := CreateEntry(db, u.ID, 5, 10)
	assert.ErrorIs(t, err, ErrBelowMinimumInvest)

	entry, err := CreateEntry(db, u.ID, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, models.EntryStatusPending, entry.Status)

	// Pending entries never touch the cumulative total.
	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 0.0, fresh.TotalInvested)
}

func TestConfirmEntry_AddsToTotal(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db, "confirm@test.local", 100, 0)

	entry, err := CreateEntry(db, u.ID, 250, 10)
	require.NoError(t, err)
	require.NoError(t, ConfirmEntry(db, entry.ID, time.Now()))

	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 350.0, fresh.TotalInvested)
	require.NotNil(t, fresh.LastActivityAt)

	var trx models.Transaction
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?", u.ID, models.TrxTypeInvestment).First(&trx).Error)
	assert.Equal(t, models.FlowCredit, trx.TransactionFlow)
	assert.Equal(t, 250.0, trx.Amount)

	// Confirming twice must fail and leave the total alone.
	assert.ErrorIs(t, ConfirmEntry(db, entry.ID, time.Now()), ErrEntryNotPending)
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 350.0, fresh.TotalInvested)
}

func TestRejectEntry_NeverTouchesTotal(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db, "reject@test.local", 500, 0)

	entry, err := CreateEntry(db, u.ID, 100, 10)
	require.NoError(t, err)
	require.NoError(t, RejectEntry(db, entry.ID))

	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 500.0, fresh.TotalInvested)

	// Rejected is terminal.
	assert.ErrorIs(t, ConfirmEntry(db, entry.ID, time.Now()), ErrEntryNotPending)
	assert.ErrorIs(t, RejectEntry(db, entry.ID), ErrEntryNotPending)
}

func TestManualCredit_RequiresReasonAndFloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db, "manual@test.local", 100, 0)

	_, err := ManualCredit(db, u.ID, 50, 1, "  ", time.Now())
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = ManualCredit(db, u.ID, -150, 1, "chargeback", time.Now())
	assert.ErrorIs(t, err, ErrNegativeTotal)

	entry, err := ManualCredit(db, u.ID, -40, 1, "chargeback", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.EntryTypeManualAdmin, entry.EntryType)
	require.NotNil(t, entry.AdminID)
	assert.Equal(t, uint(1), *entry.AdminID)

	var fresh models.User
	require.NoError(t, db.First(&fresh, u.ID).Error)
	assert.Equal(t, 60.0, fresh.TotalInvested)

	var trx models.Transaction
	require.NoError(t, db.Where("user_id = ? AND transaction_type = ?", u.ID, models.TrxTypeCorrection).First(&trx).Error)
	assert.Equal(t, models.FlowDebit, trx.TransactionFlow)
}
