package admins

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admins/investments
func ListInvestments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	status := r.URL.Query().Get("status")
	entryType := r.URL.Query().Get("type")

	db := database.DB
	query := db.Model(&models.InvestmentEntry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if entryType != "" {
		query = query.Where("entry_type = ?", entryType)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))

	var entries []models.InvestmentEntry
	if err := query.Preload("User").Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&entries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": entries,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": totalPages,
			},
		},
	})
}

// PUT /v1/admins/investments/{id}/confirm
func ConfirmInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid entry id"})
		return
	}

	if err := services.ConfirmEntry(database.DB, uint(id), time.Now()); err != nil {
		if errors.Is(err, services.ErrEntryNotPending) {
			utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.APIResponse{Success: false, Message: "Entry is not pending"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment confirmed"})
}

// PUT /v1/admins/investments/{id}/reject
func RejectInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid entry id"})
		return
	}

	if err := services.RejectEntry(database.DB, uint(id)); err != nil {
		if errors.Is(err, services.ErrEntryNotPending) {
			utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.APIResponse{Success: false, Message: "Entry is not pending"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment rejected"})
}
