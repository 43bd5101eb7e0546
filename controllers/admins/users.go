package admins

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/middleware"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admins/users
func ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	status := r.URL.Query().Get("status")

	db := database.DB
	query := db.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR reff_code LIKE ?", like, like, like)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))

	var users []models.User
	if err := query.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": users,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": totalPages,
			},
		},
	})
}

// GET /v1/admins/users/{id}
func GetUserDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	refCount, _ := services.DirectReferralCount(db, user.ID)
	monthInterest, _ := services.MonthInterest(db, user.ID, time.Now())

	var pendingEntries, withdrawals int64
	db.Model(&models.InvestmentEntry{}).
		Where("user_id = ? AND status = ?", user.ID, models.EntryStatusPending).Count(&pendingEntries)
	db.Model(&models.Withdrawal{}).Where("user_id = ?", user.ID).Count(&withdrawals)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"user":                user,
			"direct_referrals":    refCount,
			"month_interest":      monthInterest,
			"pending_investments": pendingEntries,
			"withdrawal_count":    withdrawals,
		},
	})
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PUT /v1/admins/users/{id}/status
//
// Freezes or unfreezes an account. Frozen accounts stop accruing and
// cannot withdraw; their balances are untouched.
func UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}

	var req UpdateUserStatusRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Status != models.UserStatusActive && req.Status != models.UserStatusFrozen {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Status must be Active or Frozen"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	if err := db.Model(&user).Update("status", req.Status).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update status"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "User status updated",
		Data:    map[string]interface{}{"id": user.ID, "status": req.Status},
	})
}

type ManualCreditRequest struct {
	Amount float64 `json:"amount" validate:"required"`
	Reason string  `json:"reason" validate:"required"`
}

// POST /v1/admins/users/{id}/credit
//
// Applies a manual correction to a user's cumulative investment. The
// acting admin and reason are recorded on the ledger entry.
func ManualCreditUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}

	var req ManualCreditRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	entry, err := services.ManualCredit(database.DB, uint(id), req.Amount, adminID, req.Reason, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReasonRequired):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "A reason is required"})
		case errors.Is(err, services.ErrNegativeTotal):
			utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.APIResponse{Success: false, Message: "Correction would make the cumulative investment negative"})
		default:
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Correction applied",
		Data: map[string]interface{}{
			"entry_id": entry.ID,
			"order_id": entry.OrderID,
			"amount":   entry.Amount,
		},
	})
}
