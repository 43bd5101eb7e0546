package admins

import (
	"net/http"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/utils"
)

type DailyAccrualPoint struct {
	Day    string  `json:"day"`
	Amount float64 `json:"amount"`
	Users  int64   `json:"users"`
}

type TransactionDetail struct {
	UserName  string    `json:"user_name"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardStats struct {
	TotalUsers          int64               `json:"total_users"`
	FrozenUsers         int64               `json:"frozen_users"`
	TotalInvested       float64             `json:"total_invested"`
	TotalInterest       float64             `json:"total_interest"`
	PendingInvestments  int64               `json:"pending_investments"`
	PendingWithdrawals  int64               `json:"pending_withdrawals"`
	ManualReviewQueue   int64               `json:"manual_review_queue"`
	ActiveRelations     int64               `json:"active_relations"`
	PendingRelations    int64               `json:"pending_relations"`
	AccrualsLastWeek    []DailyAccrualPoint `json:"accruals_last_week"`
	LastTransactions    []TransactionDetail `json:"last_transactions"`
}

// GET /v1/admins/dashboard
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats
	db := database.DB

	stats.AccrualsLastWeek = make([]DailyAccrualPoint, 0, 7)
	stats.LastTransactions = make([]TransactionDetail, 0)

	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.User{}).Where("status = ?", models.UserStatusFrozen).Count(&stats.FrozenUsers)
	db.Model(&models.User{}).Select("COALESCE(SUM(total_invested),0)").Scan(&stats.TotalInvested)
	db.Model(&models.User{}).Select("COALESCE(SUM(interest_balance),0)").Scan(&stats.TotalInterest)

	db.Model(&models.InvestmentEntry{}).Where("status = ?", models.EntryStatusPending).Count(&stats.PendingInvestments)
	db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusPending).Count(&stats.PendingWithdrawals)
	db.Model(&models.Withdrawal{}).
		Where("status = ? AND requires_manual_approval = ?", models.WithdrawalStatusPending, true).
		Count(&stats.ManualReviewQueue)

	db.Model(&models.ReferralRelation{}).Where("status = ?", models.RelationStatusActive).Count(&stats.ActiveRelations)
	db.Model(&models.ReferralRelation{}).Where("status = ?", models.RelationStatusPending).Count(&stats.PendingRelations)

	// Accrual volume for the last 7 days, keyed by accrual_date.
	for i := 6; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		point := DailyAccrualPoint{Day: day}
		db.Model(&models.Accrual{}).Where("accrual_date = ?", day).
			Select("COALESCE(SUM(amount),0)").Scan(&point.Amount)
		db.Model(&models.Accrual{}).Where("accrual_date = ?", day).Count(&point.Users)
		stats.AccrualsLastWeek = append(stats.AccrualsLastWeek, point)
	}

	var recent []models.Transaction
	db.Order("id DESC").Limit(10).Find(&recent)
	for _, t := range recent {
		var user models.User
		name := ""
		if err := db.Select("name").First(&user, t.UserID).Error; err == nil {
			name = user.Name
		}
		stats.LastTransactions = append(stats.LastTransactions, TransactionDetail{
			UserName:  name,
			Amount:    t.Amount,
			Type:      t.TransactionType,
			Message:   utils.GetStringValue(t.Message),
			CreatedAt: t.CreatedAt,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    stats,
	})
}
