package users

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/engine"
	"github.com/mahesh42646/usdt-backend/middleware"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"
)

type WithdrawalRequest struct {
	Amount float64 `json:"amount" validate:"required"`
}

// POST /v1/users/withdrawals
func RequestWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req WithdrawalRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Amount <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Amount must be greater than zero"})
		return
	}

	wd, err := services.RequestWithdrawal(database.DB, uid, req.Amount, time.Now())
	if err != nil {
		if code := engine.GateCode(err); code != "" {
			if ge, ok := err.(*engine.GateError); ok {
				utils.WriteRejection(w, code, ge.Message)
				return
			}
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	message := "Withdrawal request submitted"
	if wd.Status == models.WithdrawalStatusApproved {
		message = "Withdrawal approved"
	} else if wd.RequiresManualApproval {
		message = "Withdrawal request submitted, pending manual review"
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: message,
		Data: map[string]interface{}{
			"id":                       wd.ID,
			"order_id":                 wd.OrderID,
			"amount":                   wd.Amount,
			"status":                   wd.Status,
			"requires_manual_approval": wd.RequiresManualApproval,
		},
	})
}

// GET /v1/users/withdrawals
func ListWithdrawalsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	status := r.URL.Query().Get("status")

	db := database.DB
	countQuery := db.Model(&models.Withdrawal{}).Where("user_id = ?", uid)
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}

	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))

	var rows []models.Withdrawal
	query := db.Where("user_id = ?", uid)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": rows,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": totalPages,
			},
		},
	})
}
