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

var (
	ErrSelfReferral    = errors.New("users cannot refer themselves")
	ErrReferralCycle   = errors.New("referral would create a cycle")
	ErrAlreadyReferred = errors.New("user already has a referrer")
)

// CreateRelation records who referred whom. Called once at registration;
// the relation starts Pending and activates only when the referrer's own
// cumulative investment reaches the activation threshold.
func CreateRelation(db *gorm.DB, referrerID, referredID uint) (*models.ReferralRelation, error) {
	if referrerID == referredID {
		return nil, ErrSelfReferral
	}

	// Walk the referrer's ancestor chain; finding the referred user there
	// means the new edge would close a loop.
	cursor := referrerID
	for depth := 0; depth < 100; depth++ {
		var parent models.User
		if err := db.Select("id", "reff_by").First(&parent, cursor).Error; err != nil {
			return nil, err
		}
		if parent.ReffBy == nil {
			break
		}
		if *parent.ReffBy == referredID {
			return nil, ErrReferralCycle
		}
		cursor = *parent.ReffBy
	}

	var existing int64
	if err := db.Model(&models.ReferralRelation{}).Where("referred_id = ?", referredID).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyReferred
	}

	rel := models.ReferralRelation{
		ReferrerID: referrerID,
		ReferredID: referredID,
		Status:     models.RelationStatusPending,
	}
	if err := db.Create(&rel).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

// distributeReferralIncome pays the referrer their slab share of a newly
// confirmed investment. Runs inside the confirming transaction. An Active
// relation gets the share credited to the referrer's cumulative total; a
// Pending relation only records the amount as pending income, which is
// never paid out retroactively.
func distributeReferralIncome(tx *gorm.DB, setting *models.Setting, entry *models.InvestmentEntry, now time.Time) error {
	var rel models.ReferralRelation
	err := tx.Where("referred_id = ?", entry.UserID).First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	slabs, err := LoadSlabs(tx)
	if err != nil {
		return err
	}
	refCount, err := DirectReferralCount(tx, rel.ReferrerID)
	if err != nil {
		return err
	}
	percent := engine.ResolvePercent(slabs, int(refCount))
	share := engine.PercentOf(entry.Amount, percent)
	if share <= 0 {
		return nil
	}

	if rel.Status != models.RelationStatusActive {
		return tx.Model(&rel).Update("pending_income", utils.Round2(rel.PendingIncome+share)).Error
	}

	var referrer models.User
	if err := database.LockForUpdate(tx).First(&referrer, rel.ReferrerID).Error; err != nil {
		return err
	}

	credit := models.InvestmentEntry{
		UserID:    referrer.ID,
		Amount:    share,
		EntryType: models.EntryTypeReferralCredit,
		Status:    models.EntryStatusConfirmed,
		OrderID:   utils.GenerateOrderID(referrer.ID),
	}
	if err := tx.Create(&credit).Error; err != nil {
		return err
	}

	newTotal := utils.Round2(referrer.TotalInvested + share)
	if err := tx.Model(&referrer).Update("total_invested", newTotal).Error; err != nil {
		return err
	}
	if err := tx.Model(&rel).Update("total_income", utils.Round2(rel.TotalIncome+share)).Error; err != nil {
		return err
	}

	msg := fmt.Sprintf("Referral income from investment %s", entry.OrderID)
	trx := models.Transaction{
		UserID:          referrer.ID,
		Amount:          share,
		OrderID:         utils.GenerateOrderID(referrer.ID),
		TransactionFlow: models.FlowCredit,
		TransactionType: models.TrxTypeReferral,
		Message:         &msg,
		Status:          "Success",
	}
	if err := tx.Create(&trx).Error; err != nil {
		return err
	}

	log.Printf("[referral] credited %.2f to user %d (slab %.2f%%)", share, referrer.ID, percent)

	// The referrer's own principal just grew, which may in turn activate
	// relations where they are the referrer.
	return activateRelations(tx, referrer.ID, newTotal, setting.ActivationThreshold, now)
}

// activateRelations flips Pending relations held by userID as referrer to
// Active once their cumulative investment reaches the threshold. Pending
// income stays where it is.
func activateRelations(tx *gorm.DB, userID uint, totalInvested, threshold float64, now time.Time) error {
	if totalInvested < threshold {
		return nil
	}
	return tx.Model(&models.ReferralRelation{}).
		Where("referrer_id = ? AND status = ?", userID, models.RelationStatusPending).
		Updates(map[string]interface{}{
			"status":       models.RelationStatusActive,
			"activated_at": now,
		}).Error
}
