package admins

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/engine"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admins/withdrawals
func ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	status := r.URL.Query().Get("status")
	manual := r.URL.Query().Get("manual")

	db := database.DB
	query := db.Model(&models.Withdrawal{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if manual == "true" {
		query = query.Where("requires_manual_approval = ?", true)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))

	var rows []models.Withdrawal
	if err := query.Preload("User").Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
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

func withdrawalID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id), err
}

// PUT /v1/admins/withdrawals/{id}/approve
func ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}

	if err := services.ApproveWithdrawal(database.DB, id); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTransition):
			utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.APIResponse{Success: false, Message: "Withdrawal is not pending"})
		case engine.GateCode(err) == engine.CodeInsufficientInterest:
			utils.WriteRejection(w, engine.CodeInsufficientInterest, "Interest balance too low to cover this withdrawal")
		default:
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal approved"})
}

// PUT /v1/admins/withdrawals/{id}/reject
func RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}

	if err := services.RejectWithdrawal(database.DB, id); err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.APIResponse{Success: false, Message: "Withdrawal is not pending"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal rejected"})
}

// PUT /v1/admins/withdrawals/{id}/process
func ProcessWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := withdrawalID(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}

	if err := services.ProcessWithdrawal(database.DB, id, time.Now()); err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.APIResponse{Success: false, Message: "Withdrawal is not approved"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal processed"})
}
