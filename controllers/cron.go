package controllers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mahesh42646/usdt-backend/database"
	"github.com/mahesh42646/usdt-backend/services"
	"github.com/mahesh42646/usdt-backend/utils"
)

// POST /v1/cron/daily-accruals
//
// Triggered by an external scheduler. Guarded by the X-CRON-KEY header;
// safe to re-trigger, the accrual job is idempotent per (user, day).
func CronDailyAccrualsHandler(w http.ResponseWriter, r *http.Request) {
	expected := os.Getenv("CRON_KEY")
	if expected == "" {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{Success: false, Message: "Cron endpoint not configured"})
		return
	}
	got := r.Header.Get("X-CRON-KEY")
	if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	started := time.Now()
	result, err := services.RunDailyAccruals(database.DB, started)
	if err != nil {
		log.Printf("[cron] daily accruals failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Accrual run failed"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Accrual run finished",
		Data: map[string]interface{}{
			"result":      result,
			"duration_ms": time.Since(started).Milliseconds(),
		},
	})
}
