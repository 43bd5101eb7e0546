package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/engine"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/utils"

	"gorm.io/gorm"
)

// ErrInvalidTransition is returned when a withdrawal is moved out of
// order, e.g. processing a request that was never approved.
var ErrInvalidTransition = errors.New("invalid withdrawal status transition")

// RequestWithdrawal runs every gate rule, creates the request and, when
// auto-withdrawals are enabled and the amount is under the manual-review
// threshold, approves it in the same transaction.
func RequestWithdrawal(db *gorm.DB, userID uint, amount float64, now time.Time) (*models.Withdrawal, error) {
	setting, err := LoadSetting(db)
	if err != nil {
		return nil, err
	}
	cfg := GateConfigFrom(setting)

	var wd models.Withdrawal
	err = db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := database.LockForUpdate(tx).First(&user, userID).Error; err != nil {
			return err
		}

		monthInterest, err := MonthInterest(tx, userID, now)
		if err != nil {
			return err
		}
		monthCount, err := monthWithdrawalCount(tx, userID, now)
		if err != nil {
			return err
		}

		state := engine.UserState{
			TotalInvested:   user.TotalInvested,
			InterestBalance: user.InterestBalance,
			Frozen:          user.Status == models.UserStatusFrozen,
		}
		if err := engine.CheckWithdrawal(cfg, state, amount, monthInterest, monthCount); err != nil {
			return err
		}

		manual := engine.RequiresManualApproval(cfg, amount)
		wd = models.Withdrawal{
			UserID:                 userID,
			Amount:                 utils.Round2(amount),
			OrderID:                utils.GenerateOrderID(userID),
			Status:                 models.WithdrawalStatusPending,
			RequiresManualApproval: manual,
		}
		if err := tx.Create(&wd).Error; err != nil {
			return err
		}

		if setting.AutoWithdraw && !manual {
			return approveLocked(tx, &wd, &user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// ApproveWithdrawal moves a pending request to Approved and deducts the
// amount from the user's interest balance. The deduction happens here, not
// at processing time, so an approved amount can never be spent twice.
func ApproveWithdrawal(db *gorm.DB, withdrawalID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var wd models.Withdrawal
		if err := tx.First(&wd, withdrawalID).Error; err != nil {
			return err
		}
		if wd.Status != models.WithdrawalStatusPending {
			return ErrInvalidTransition
		}
		var user models.User
		if err := database.LockForUpdate(tx).First(&user, wd.UserID).Error; err != nil {
			return err
		}
		return approveLocked(tx, &wd, &user)
	})
}

// approveLocked performs the approval against an already-locked user row.
func approveLocked(tx *gorm.DB, wd *models.Withdrawal, user *models.User) error {
	if wd.Amount > user.InterestBalance {
		return &engine.GateError{Code: engine.CodeInsufficientInterest, Message: "interest balance too low"}
	}
	if err := tx.Model(user).
		Update("interest_balance", utils.Round2(user.InterestBalance-wd.Amount)).Error; err != nil {
		return err
	}
	if err := tx.Model(wd).Update("status", models.WithdrawalStatusApproved).Error; err != nil {
		return err
	}
	wd.Status = models.WithdrawalStatusApproved

	msg := fmt.Sprintf("Withdrawal %s approved", wd.OrderID)
	trx := models.Transaction{
		UserID:          wd.UserID,
		Amount:          wd.Amount,
		OrderID:         utils.GenerateOrderID(wd.UserID),
		TransactionFlow: models.FlowDebit,
		TransactionType: models.TrxTypeWithdrawal,
		Message:         &msg,
		Status:          "Success",
	}
	return tx.Create(&trx).Error
}

// RejectWithdrawal marks a pending request rejected. Balances are never
// touched because nothing was deducted yet.
func RejectWithdrawal(db *gorm.DB, withdrawalID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var wd models.Withdrawal
		if err := tx.First(&wd, withdrawalID).Error; err != nil {
			return err
		}
		if wd.Status != models.WithdrawalStatusPending {
			return ErrInvalidTransition
		}
		return tx.Model(&wd).Update("status", models.WithdrawalStatusRejected).Error
	})
}

// ProcessWithdrawal marks an approved request as paid out. The balance was
// already deducted at approval; this only records the payout moment.
func ProcessWithdrawal(db *gorm.DB, withdrawalID uint, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var wd models.Withdrawal
		if err := tx.First(&wd, withdrawalID).Error; err != nil {
			return err
		}
		if wd.Status != models.WithdrawalStatusApproved {
			return ErrInvalidTransition
		}
		log.Printf("[withdrawal] %s processed for user %d (%.2f USDT)", wd.OrderID, wd.UserID, wd.Amount)
		return tx.Model(&wd).Updates(map[string]interface{}{
			"status":       models.WithdrawalStatusProcessed,
			"processed_at": now,
		}).Error
	})
}

// monthWithdrawalCount counts the withdrawals a user completed this
// calendar month. Rejected and still-pending requests do not consume the
// monthly allowance.
func monthWithdrawalCount(tx *gorm.DB, userID uint, now time.Time) (int64, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var count int64
	err := tx.Model(&models.Withdrawal{}).
		Where("user_id = ? AND created_at >= ? AND status IN ?",
			userID, start, []string{models.WithdrawalStatusApproved, models.WithdrawalStatusProcessed}).
		Count(&count).Error
	return count, err
}
