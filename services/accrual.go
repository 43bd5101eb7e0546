package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/engine"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/utils"

	"gorm.io/gorm"
)

// AccrualResult summarizes one daily run for the cron response and logs.
type AccrualResult struct {
	Date      string `json:"date"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

// RunDailyAccruals credits daily interest to every eligible user. Each
// user is handled in their own transaction so one failure never rolls
// back the whole batch, and the unique (user_id, accrual_date) index makes
// a repeated run for the same day a no-op.
func RunDailyAccruals(db *gorm.DB, now time.Time) (*AccrualResult, error) {
	setting, err := LoadSetting(db)
	if err != nil {
		return nil, err
	}
	cfg := RateConfigFrom(setting)
	day := now.Format("2006-01-02")
	result := &AccrualResult{Date: day}

	var userIDs []uint
	if err := db.Model(&models.User{}).Where("total_invested > 0").Pluck("id", &userIDs).Error; err != nil {
		return nil, err
	}

	for _, id := range userIDs {
		err := accrueForUser(db, cfg, id, day, now)
		switch {
		case err == nil:
			result.Processed++
		case isSkip(err):
			result.Skipped++
		default:
			result.Failed++
			log.Printf("[accrual] user %d failed: %v", id, err)
		}
	}

	log.Printf("[accrual] %s done: %d processed, %d skipped, %d failed",
		day, result.Processed, result.Skipped, result.Failed)
	return result, nil
}

// errSkip marks users that are intentionally not credited today.
type errSkip struct{ reason string }

func (e errSkip) Error() string { return e.reason }

func isSkip(err error) bool {
	_, ok := err.(errSkip)
	return ok
}

func accrueForUser(db *gorm.DB, cfg engine.RateConfig, userID uint, day string, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Accrual{}).
			Where("user_id = ? AND accrual_date = ?", userID, day).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errSkip{"already accrued"}
		}

		var user models.User
		if err := database.LockForUpdate(tx).First(&user, userID).Error; err != nil {
			return err
		}
		if user.Status == models.UserStatusFrozen {
			return errSkip{"frozen"}
		}
		if engine.AccrualPaused(user.LastActivityAt, now, cfg.InactivityDays) {
			return errSkip{"inactive"}
		}

		refCount, err := DirectReferralCount(tx, userID)
		if err != nil {
			return err
		}
		rate, err := engine.DailyRate(cfg, user.TotalInvested, int(refCount))
		if err != nil {
			return err
		}
		amount := engine.DailyCredit(user.TotalInvested, rate)
		if amount <= 0 {
			return errSkip{"zero credit"}
		}

		accrual := models.Accrual{
			UserID:      userID,
			AccrualDate: day,
			Amount:      amount,
			RateUsed:    rate,
		}
		if err := tx.Create(&accrual).Error; err != nil {
			// Concurrent run beat us to the insert; the unique index is the
			// final word on idempotence.
			if isDuplicateKey(err) {
				return errSkip{"already accrued"}
			}
			return err
		}

		if err := tx.Model(&user).
			Update("interest_balance", utils.Round2(user.InterestBalance+amount)).Error; err != nil {
			return err
		}

		msg := fmt.Sprintf("Daily interest %s at %.3f%%", day, rate)
		trx := models.Transaction{
			UserID:          userID,
			Amount:          amount,
			OrderID:         utils.GenerateOrderID(userID),
			TransactionFlow: models.FlowCredit,
			TransactionType: models.TrxTypeAccrual,
			Message:         &msg,
			Status:          "Success",
		}
		return tx.Create(&trx).Error
	})
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "Duplicate entry") || strings.Contains(s, "UNIQUE constraint failed")
}

// MonthInterest sums the interest accrued by a user in the calendar month
// containing now.
func MonthInterest(db *gorm.DB, userID uint, now time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.Accrual{}).
		Where("user_id = ? AND accrual_date LIKE ?", userID, now.Format("2006-01")+"%").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return utils.Round2(total), err
}
