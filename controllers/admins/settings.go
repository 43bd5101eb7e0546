package admins

import (
	"net/http"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/engine"
	"github.com/mahesh42646/usdt-backend/middleware"
	"github.com/mahesh42646/usdt-backend/models"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"

	"gorm.io/gorm"
)

// GET /v1/admins/settings
func GetSettings(w http.ResponseWriter, r *http.Request) {
	setting, err := services.LoadSetting(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: setting})
}

type UpdateSettingsRequest struct {
	BaseRate         *float64 `json:"base_rate"`
	MaxRate          *float64 `json:"max_rate"`
	RateIncrement    *float64 `json:"rate_increment"`
	ReferralStep     *int     `json:"referral_step"`
	SpecialRate      *float64 `json:"special_rate"`
	SpecialThreshold *float64 `json:"special_threshold"`
	InactivityDays   *int     `json:"inactivity_days"`

	MinInvest           *float64 `json:"min_invest"`
	ActivationThreshold *float64 `json:"activation_threshold"`

	MinWithdraw              *float64 `json:"min_withdraw"`
	UnlockThreshold          *float64 `json:"unlock_threshold"`
	MonthlyPercentCap        *float64 `json:"monthly_percent_cap"`
	MonthlyWithdrawalLimit   *int     `json:"monthly_withdrawal_limit"`
	LargeWithdrawalThreshold *float64 `json:"large_withdrawal_threshold"`
	AutoWithdraw             *bool    `json:"auto_withdraw"`

	Maintenance    *bool `json:"maintenance"`
	ClosedRegister *bool `json:"closed_register"`
}

// PUT /v1/admins/settings
//
// Partial update: only the fields present in the body change. Every save
// bumps Version so later reads can tell which snapshot they used.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	setIfF := func(col string, v *float64) {
		if v != nil {
			updates[col] = *v
		}
	}
	setIfI := func(col string, v *int) {
		if v != nil {
			updates[col] = *v
		}
	}
	setIfB := func(col string, v *bool) {
		if v != nil {
			updates[col] = *v
		}
	}

	setIfF("base_rate", req.BaseRate)
	setIfF("max_rate", req.MaxRate)
	setIfF("rate_increment", req.RateIncrement)
	setIfI("referral_step", req.ReferralStep)
	setIfF("special_rate", req.SpecialRate)
	setIfF("special_threshold", req.SpecialThreshold)
	setIfI("inactivity_days", req.InactivityDays)
	setIfF("min_invest", req.MinInvest)
	setIfF("activation_threshold", req.ActivationThreshold)
	setIfF("min_withdraw", req.MinWithdraw)
	setIfF("unlock_threshold", req.UnlockThreshold)
	setIfF("monthly_percent_cap", req.MonthlyPercentCap)
	setIfI("monthly_withdrawal_limit", req.MonthlyWithdrawalLimit)
	setIfF("large_withdrawal_threshold", req.LargeWithdrawalThreshold)
	setIfB("auto_withdraw", req.AutoWithdraw)
	setIfB("maintenance", req.Maintenance)
	setIfB("closed_register", req.ClosedRegister)

	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}

	if br, ok := updates["base_rate"].(float64); ok {
		if mr, ok := updates["max_rate"].(float64); ok && mr < br {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "max_rate cannot be below base_rate"})
			return
		}
	}

	db := database.DB
	setting, err := services.LoadSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	updates["version"] = gorm.Expr("version + 1")
	if err := db.Model(setting).Updates(updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save settings"})
		return
	}

	fresh, err := services.LoadSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Settings updated", Data: fresh})
}

// GET /v1/admins/settings/slabs
func GetSlabs(w http.ResponseWriter, r *http.Request) {
	var rows []models.ReferralSlab
	if err := database.DB.Order("position ASC").Find(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}

type SlabInput struct {
	MinReferrals int     `json:"min_referrals"`
	MaxReferrals *int    `json:"max_referrals"`
	Percentage   float64 `json:"percentage"`
}

type UpdateSlabsRequest struct {
	Slabs []SlabInput `json:"slabs" validate:"required"`
}

// PUT /v1/admins/settings/slabs
//
// Replaces the whole slab table. The new table must be ordered,
// non-overlapping and monotonic; it only applies to income distributed
// after the save.
func UpdateSlabs(w http.ResponseWriter, r *http.Request) {
	var req UpdateSlabsRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if len(req.Slabs) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "At least one slab is required"})
		return
	}

	slabs := make([]engine.Slab, 0, len(req.Slabs))
	for _, s := range req.Slabs {
		slabs = append(slabs, engine.Slab{Min: s.MinReferrals, Max: s.MaxReferrals, Percentage: s.Percentage})
	}
	if err := engine.ValidateSlabs(slabs); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ReferralSlab{}).Error; err != nil {
			return err
		}
		for i, s := range req.Slabs {
			row := models.ReferralSlab{
				Position:     i + 1,
				MinReferrals: s.MinReferrals,
				MaxReferrals: s.MaxReferrals,
				Percentage:   s.Percentage,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save slabs"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Slab table updated"})
}
