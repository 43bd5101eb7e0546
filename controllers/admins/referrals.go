package admins

import (
	"math"
	"net/http"
	"strconv"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/utils"
)

// GET /v1/admins/referrals
func ListReferrals(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	status := r.URL.Query().Get("status")
	referrer := r.URL.Query().Get("referrer_id")

	db := database.DB
	query := db.Model(&models.ReferralRelation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if referrer != "" {
		query = query.Where("referrer_id = ?", referrer)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))

	var rows []models.ReferralRelation
	if err := query.Preload("Referred").Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
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
