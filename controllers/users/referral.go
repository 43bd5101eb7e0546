package users

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/engine"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"
)

// GET /v1/users/referrals
func ListReferralsHandler(w http.ResponseWriter, r *http.Request) {
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

	db := database.DB

	var totalRows int64
	if err := db.Model(&models.ReferralRelation{}).Where("referrer_id = ?", uid).Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))

	var relations []models.ReferralRelation
	if err := db.Preload("Referred").
		Where("referrer_id = ?", uid).
		Order("id DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&relations).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type relationDTO struct {
		ID            uint    `json:"id"`
		Name          string  `json:"name"`
		Status        string  `json:"status"`
		TotalIncome   float64 `json:"total_income"`
		PendingIncome float64 `json:"pending_income"`
		JoinedAt      string  `json:"joined_at"`
	}
	items := make([]relationDTO, 0, len(relations))
	for _, rel := range relations {
		name := ""
		if rel.Referred != nil {
			name = rel.Referred.Name
		}
		items = append(items, relationDTO{
			ID:            rel.ID,
			Name:          name,
			Status:        rel.Status,
			TotalIncome:   rel.TotalIncome,
			PendingIncome: rel.PendingIncome,
			JoinedAt:      rel.CreatedAt.Format(time.RFC3339),
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

// GET /v1/users/referrals/stats
func ReferralStatsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB

	refCount, err := services.DirectReferralCount(db, uid)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	slabs, err := services.LoadSlabs(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type sums struct {
		Total   float64
		Pending float64
	}
	var s sums
	if err := db.Model(&models.ReferralRelation{}).
		Where("referrer_id = ?", uid).
		Select("COALESCE(SUM(total_income),0) AS total, COALESCE(SUM(pending_income),0) AS pending").
		Scan(&s).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	var activeCount int64
	db.Model(&models.ReferralRelation{}).
		Where("referrer_id = ? AND status = ?", uid, models.RelationStatusActive).
		Count(&activeCount)

	// Referrals still needed to reach the next slab, if any.
	percent := engine.ResolvePercent(slabs, int(refCount))
	nextAt := 0
	for _, slab := range slabs {
		if slab.Min > int(refCount) {
			nextAt = slab.Min
			break
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"direct_referrals": refCount,
			"active_relations": activeCount,
			"income_percent":   percent,
			"next_slab_at":     nextAt,
			"total_income":     utils.Round2(s.Total),
			"pending_income":   utils.Round2(s.Pending),
		},
	})
}
