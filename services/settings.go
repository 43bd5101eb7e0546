// Package services holds the transactional operations of the platform:
// ledger writes, referral distribution, daily accrual and the withdrawal
// lifecycle. Every balance mutation locks the owning user row inside a
// transaction so per-user operations stay serialized.
package services

import (
	"errors"

	"github.com/mahesh42646/usdt-backend/engine"
	"github.com/mahesh42646/usdt-backend/models"

	"gorm.io/gorm"
)

// LoadSetting fetches the singleton settings row, seeding defaults on
// first use. The seed row carries explicit values so the snapshot handed
// back to the caller never depends on the driver reading column defaults
// back after the insert.
func LoadSetting(db *gorm.DB) (*models.Setting, error) {
	var setting models.Setting
	err := db.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.DefaultSetting()
		if err := db.Create(&setting).Error; err != nil {
			return nil, err
		}
		return &setting, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// LoadSlabs returns the slab table ordered by position, converted into
// the engine's shape.
func LoadSlabs(db *gorm.DB) ([]engine.Slab, error) {
	var rows []models.ReferralSlab
	if err := db.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	slabs := make([]engine.Slab, 0, len(rows))
	for _, r := range rows {
		slabs = append(slabs, engine.Slab{Min: r.MinReferrals, Max: r.MaxReferrals, Percentage: r.Percentage})
	}
	return slabs, nil
}

// RateConfigFrom maps the settings row onto the engine's rate config.
func RateConfigFrom(s *models.Setting) engine.RateConfig {
	return engine.RateConfig{
		BaseRate:         s.BaseRate,
		MaxRate:          s.MaxRate,
		RateIncrement:    s.RateIncrement,
		ReferralStep:     s.ReferralStep,
		SpecialRate:      s.SpecialRate,
		SpecialThreshold: s.SpecialThreshold,
		InactivityDays:   s.InactivityDays,
	}
}

// GateConfigFrom maps the settings row onto the engine's withdrawal gate config.
func GateConfigFrom(s *models.Setting) engine.GateConfig {
	return engine.GateConfig{
		UnlockThreshold:          s.UnlockThreshold,
		MinWithdraw:              s.MinWithdraw,
		MonthlyPercentCap:        s.MonthlyPercentCap,
		MonthlyWithdrawalLimit:   s.MonthlyWithdrawalLimit,
		LargeWithdrawalThreshold: s.LargeWithdrawalThreshold,
	}
}

// DirectReferralCount returns the number of users directly referred by
// the given user.
func DirectReferralCount(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&models.ReferralRelation{}).Where("referrer_id = ?", userID).Count(&count).Error
	return count, err
}
