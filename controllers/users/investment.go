package users

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/middleware"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"
)

type CreateInvestmentRequest struct {
	Amount float64 `json:"amount" validate:"required"`
}

// POST /v1/users/investments
func CreateInvestmentHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req CreateInvestmentRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	setting, err := services.LoadSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	entry, err := services.CreateEntry(db, uid, req.Amount, setting.MinInvest)
	if err != nil {
		if errors.Is(err, services.ErrBelowMinimumInvest) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
				Success: false,
				Message: "Minimum investment is " + strconv.FormatFloat(setting.MinInvest, 'f', 2, 64) + " USDT",
			})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Investment submitted, awaiting confirmation",
		Data: map[string]interface{}{
			"id":       entry.ID,
			"order_id": entry.OrderID,
			"amount":   entry.Amount,
			"status":   entry.Status,
		},
	})
}

// GET /v1/users/investments
func ListInvestmentsHandler(w http.ResponseWriter, r *http.Request) {
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
	countQuery := db.Model(&models.InvestmentEntry{}).Where("user_id = ?", uid)
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}

	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))

	var entries []models.InvestmentEntry
	query := db.Where("user_id = ?", uid)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&entries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type entryDTO struct {
		ID        uint    `json:"id"`
		Amount    float64 `json:"amount"`
		EntryType string  `json:"entry_type"`
		Status    string  `json:"status"`
		OrderID   string  `json:"order_id"`
		CreatedAt string  `json:"created_at"`
	}
	items := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryDTO{
			ID:        e.ID,
			Amount:    e.Amount,
			EntryType: e.EntryType,
			Status:    e.Status,
			OrderID:   e.OrderID,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": items,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": totalPages,
			},
		},
	})
}
