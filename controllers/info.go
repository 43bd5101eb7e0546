// Package controllers holds the handlers that do not belong to a specific
// role: public platform info and the cron entrypoints.
package controllers

import (
	"net/http"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"
)

// GET /v1/info
//
// Public snapshot of the platform rules so the landing page can render
// rates and thresholds without authentication.
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	setting, err := services.LoadSetting(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	slabs, err := services.LoadSlabs(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"base_rate":            setting.BaseRate,
			"max_rate":             setting.MaxRate,
			"rate_increment":       setting.RateIncrement,
			"referral_step":        setting.ReferralStep,
			"special_rate":         setting.SpecialRate,
			"special_threshold":    setting.SpecialThreshold,
			"min_invest":           setting.MinInvest,
			"min_withdraw":         setting.MinWithdraw,
			"unlock_threshold":     setting.UnlockThreshold,
			"activation_threshold": setting.ActivationThreshold,
			"referral_slabs":       slabs,
			"maintenance":          setting.Maintenance,
			"closed_register":      setting.ClosedRegister,
		},
	})
}
