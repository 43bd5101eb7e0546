package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrBelowMinimumInvest = errors.New("amount below minimum investment")
	ErrEntryNotPending    = errors.New("entry is not pending")
	ErrReasonRequired     = errors.New("manual credit requires a reason")
	ErrNegativeTotal      = errors.New("correction would make cumulative investment negative")
)

// CreateEntry appends a pending investment entry to the ledger. Nothing is
// added to the user's cumulative total until the entry is confirmed.
func CreateEntry(db *gorm.DB, userID uint, amount float64, minInvest float64) (*models.InvestmentEntry, error) {
	if amount < minInvest {
		return nil, ErrBelowMinimumInvest
	}
	entry := models.InvestmentEntry{
		UserID:    userID,
		Amount:    utils.Round2(amount),
		EntryType: models.EntryTypeNew,
		Status:    models.EntryStatusPending,
		OrderID:   utils.GenerateOrderID(userID),
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ConfirmEntry confirms a pending entry in a single transaction: the
// amount is added to the owner's cumulative total, an audit transaction is
// written, referral income is distributed one hop up, and any relations
// the owner holds as referrer are activated if the threshold is now met.
func ConfirmEntry(db *gorm.DB, entryID uint, now time.Time) error {
	setting, err := LoadSetting(db)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var entry models.InvestmentEntry
		if err := tx.First(&entry, entryID).Error; err != nil {
			return err
		}
		if entry.Status != models.EntryStatusPending {
			return ErrEntryNotPending
		}

		var user models.User
		if err := database.LockForUpdate(tx).First(&user, entry.UserID).Error; err != nil {
			return err
		}

		newTotal := utils.Round2(user.TotalInvested + entry.Amount)
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"total_invested":   newTotal,
			"last_activity_at": now,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&entry).Update("status", models.EntryStatusConfirmed).Error; err != nil {
			return err
		}

		msg := fmt.Sprintf("Investment %s confirmed", entry.OrderID)
		trx := models.Transaction{
			UserID:          entry.UserID,
			Amount:          entry.Amount,
			OrderID:         utils.GenerateOrderID(entry.UserID),
			TransactionFlow: models.FlowCredit,
			TransactionType: models.TrxTypeInvestment,
			Message:         &msg,
			Status:          "Success",
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		// Referral income is distributed on new investments only; referral
		// credits themselves never cascade further up the chain.
		if entry.EntryType == models.EntryTypeNew {
			if err := distributeReferralIncome(tx, setting, &entry, now); err != nil {
				return err
			}
		}

		return activateRelations(tx, entry.UserID, newTotal, setting.ActivationThreshold, now)
	})
}

// RejectEntry marks a pending entry rejected. The cumulative sum is never
// touched.
func RejectEntry(db *gorm.DB, entryID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var entry models.InvestmentEntry
		if err := tx.First(&entry, entryID).Error; err != nil {
			return err
		}
		if entry.Status != models.EntryStatusPending {
			return ErrEntryNotPending
		}
		return tx.Model(&entry).Update("status", models.EntryStatusRejected).Error
	})
}

// ManualCredit applies an admin correction to a user's cumulative total.
// The amount may be negative; a non-empty reason and the acting admin are
// mandatory for the audit trail. This is the only code path that may
// reduce total_invested, and never below zero.
func ManualCredit(db *gorm.DB, userID uint, amount float64, adminID uint, reason string, now time.Time) (*models.InvestmentEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	var entry models.InvestmentEntry
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := database.LockForUpdate(tx).First(&user, userID).Error; err != nil {
			return err
		}

		newTotal := utils.Round2(user.TotalInvested + amount)
		if newTotal < 0 {
			log.Printf("[ledger] rejected correction for user %d: total would become %.2f", userID, newTotal)
			return ErrNegativeTotal
		}

		entry = models.InvestmentEntry{
			UserID:    userID,
			Amount:    utils.Round2(amount),
			EntryType: models.EntryTypeManualAdmin,
			Status:    models.EntryStatusConfirmed,
			OrderID:   utils.GenerateOrderID(userID),
			AdminID:   &adminID,
			Reason:    &reason,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&user).Update("total_invested", newTotal).Error; err != nil {
			return err
		}

		flow := models.FlowCredit
		if amount < 0 {
			flow = models.FlowDebit
		}
		trx := models.Transaction{
			UserID:          userID,
			Amount:          utils.Round2(amount),
			OrderID:         utils.GenerateOrderID(userID),
			TransactionFlow: flow,
			TransactionType: models.TrxTypeCorrection,
			Message:         &reason,
			Status:          "Success",
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		setting, err := LoadSetting(tx)
		if err != nil {
			return err
		}
		return activateRelations(tx, userID, newTotal, setting.ActivationThreshold, now)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
