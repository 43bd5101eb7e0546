package routes

import (
	"net/http"
	"time"

	"github.com/mahesh42646/usdt-backend/controllers/auth"
	"github.com/mahesh42646/usdt-backend/controllers/users"
	"github.com/mahesh42646/usdt-backend/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers the auth and user-facing routes on the given
// subrouter.
func UsersRoutes(api *mux.Router) {
	// Login/register: 60 per IP per 5 minutes.
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Per-user budgets: 120 reads and 60 writes per minute.
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	// Register & Login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)
	api.Handle("/logout-all", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutAllHandler)))).Methods(http.MethodPost)

	// Profile
	api.Handle("/users/profile", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetProfileHandler)))).Methods(http.MethodGet)
	api.Handle("/users/profile", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UpdateProfileHandler)))).Methods(http.MethodPut)
	api.Handle("/users/profile", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.DeleteProfileHandler)))).Methods(http.MethodDelete)
	api.Handle("/users/password", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ChangePasswordHandler)))).Methods(http.MethodPut)

	// Investment ledger
	api.Handle("/users/investments", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CreateInvestmentHandler)))).Methods(http.MethodPost)
	api.Handle("/users/investments", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListInvestmentsHandler)))).Methods(http.MethodGet)

	// Interest accruals
	api.Handle("/users/accruals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListAccrualsHandler)))).Methods(http.MethodGet)

	// Transaction history
	api.Handle("/users/transactions", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetTransactionHistory)))).Methods(http.MethodGet)

	// Referral network
	api.Handle("/users/referrals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListReferralsHandler)))).Methods(http.MethodGet)
	api.Handle("/users/referrals/stats", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ReferralStatsHandler)))).Methods(http.MethodGet)

	// Withdrawals
	api.Handle("/users/withdrawals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.RequestWithdrawalHandler)))).Methods(http.MethodPost)
	api.Handle("/users/withdrawals", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListWithdrawalsHandler)))).Methods(http.MethodGet)
}
