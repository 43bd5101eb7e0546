package routes

import (
	"net/http"
	"time"

	"github.com/mahesh42646/usdt-backend/controllers/admins"
	"github.com/mahesh42646/usdt-backend/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Admin login: 5 attempts per IP per minute.
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Dashboard
	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.GetDashboardStats)).Methods(http.MethodGet)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.ListUsers)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.GetUserDetail)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}/status", http.HandlerFunc(admins.UpdateUserStatus)).Methods(http.MethodPut)
	adminRouter.Handle("/users/{id:[0-9]+}/credit", http.HandlerFunc(admins.ManualCreditUser)).Methods(http.MethodPost)

	// Investment ledger review
	adminRouter.Handle("/investments", http.HandlerFunc(admins.ListInvestments)).Methods(http.MethodGet)
	adminRouter.Handle("/investments/{id:[0-9]+}/confirm", http.HandlerFunc(admins.ConfirmInvestment)).Methods(http.MethodPut)
	adminRouter.Handle("/investments/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectInvestment)).Methods(http.MethodPut)

	// Withdrawal management
	adminRouter.Handle("/withdrawals", http.HandlerFunc(admins.ListWithdrawals)).Methods(http.MethodGet)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveWithdrawal)).Methods(http.MethodPut)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectWithdrawal)).Methods(http.MethodPut)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/process", http.HandlerFunc(admins.ProcessWithdrawal)).Methods(http.MethodPut)

	// Referral oversight
	adminRouter.Handle("/referrals", http.HandlerFunc(admins.ListReferrals)).Methods(http.MethodGet)

	// Transactions
	adminRouter.Handle("/transactions", http.HandlerFunc(admins.ListTransactions)).Methods(http.MethodGet)

	// Platform settings & slab table
	adminRouter.Handle("/settings", http.HandlerFunc(admins.GetSettings)).Methods(http.MethodGet)
	adminRouter.Handle("/settings", http.HandlerFunc(admins.UpdateSettings)).Methods(http.MethodPut)
	adminRouter.Handle("/settings/slabs", http.HandlerFunc(admins.GetSlabs)).Methods(http.MethodGet)
	adminRouter.Handle("/settings/slabs", http.HandlerFunc(admins.UpdateSlabs)).Methods(http.MethodPut)
}
