package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/mahesh42646/usdt-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.InvestmentEntry{},
		&models.Accrual{},
		&models.ReferralRelation{},
		&models.Withdrawal{},
		&models.Transaction{},
		&models.Setting{},
		&models.ReferralSlab{},
	)
	require.NoError(t, err)

	for _, slab := range models.DefaultReferralSlabs() {
		require.NoError(t, db.Create(&slab).Error)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, invested, interest float64) *models.User {
	t.Helper()
	now := time.Now()
	u := &models.User{
		Name:            "Test User",
		Email:           email,
		Password:        "hashed",
		ReffCode:        fmt.Sprintf("RC%s%d", email[:3], now.UnixNano()%1e6),
		TotalInvested:   invested,
		InterestBalance: interest,
		Status:          models.UserStatusActive,
		LastActivityAt:  &now,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func updateSetting(t *testing.T, db *gorm.DB, updates map[string]interface{}) {
	t.Helper()
	setting, err := LoadSetting(db)
	require.NoError(t, err)
	require.NoError(t, db.Model(setting).Updates(updates).Error)
}
