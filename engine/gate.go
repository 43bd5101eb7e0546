package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GateConfig is the withdrawal slice of the settings record.
type GateConfig struct {
	UnlockThreshold          float64
	MinWithdraw              float64
	MonthlyPercentCap        float64 // % of the current month's accrued interest
	MonthlyWithdrawalLimit   int
	LargeWithdrawalThreshold float64
}

// UserState carries the per-user facts the gate needs.
type UserState struct {
	TotalInvested   float64
	InterestBalance float64
	Frozen          bool
}

// Withdrawal rejection reason codes surfaced to the caller.
const (
	CodeBelowUnlockThreshold   = "BELOW_UNLOCK_THRESHOLD"
	CodeBelowMinimum           = "BELOW_MINIMUM"
	CodeExceedsMonthlyCap      = "EXCEEDS_MONTHLY_PERCENT_CAP"
	CodeMonthlyLimitReached    = "MONTHLY_LIMIT_REACHED"
	CodeAccountFrozen          = "ACCOUNT_FROZEN"
	CodeInsufficientInterest   = "INSUFFICIENT_INTEREST_BALANCE"
)

// GateError is a business-rule rejection with a stable reason code.
type GateError struct {
	Code    string
	Message string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GateCode extracts the reason code from an error, or "" when the error is
// not a gate rejection.
func GateCode(err error) string {
	if ge, ok := err.(*GateError); ok {
		return ge.Code
	}
	return ""
}

// CheckWithdrawal runs every gate rule against a withdrawal request and
// returns the first violated rule as a *GateError. monthInterest is the
// interest accrued in the current calendar month; monthCount is the number
// of Approved/Processed withdrawals already made this month.
func CheckWithdrawal(cfg GateConfig, u UserState, amount, monthInterest float64, monthCount int64) error {
	if u.Frozen {
		return &GateError{Code: CodeAccountFrozen, Message: "account is frozen"}
	}
	if u.TotalInvested < cfg.UnlockThreshold {
		return &GateError{
			Code:    CodeBelowUnlockThreshold,
			Message: fmt.Sprintf("cumulative investment of %.2f USDT required before withdrawals unlock", cfg.UnlockThreshold),
		}
	}
	if amount < cfg.MinWithdraw {
		return &GateError{
			Code:    CodeBelowMinimum,
			Message: fmt.Sprintf("minimum withdrawal is %.2f USDT", cfg.MinWithdraw),
		}
	}
	if monthCount >= int64(cfg.MonthlyWithdrawalLimit) {
		return &GateError{
			Code:    CodeMonthlyLimitReached,
			Message: fmt.Sprintf("only %d withdrawal(s) allowed per calendar month", cfg.MonthlyWithdrawalLimit),
		}
	}
	capAmount := PercentOf(monthInterest, cfg.MonthlyPercentCap)
	if amount > capAmount {
		return &GateError{
			Code:    CodeExceedsMonthlyCap,
			Message: fmt.Sprintf("amount exceeds %.0f%% of this month's accrued interest (%.2f USDT)", cfg.MonthlyPercentCap, capAmount),
		}
	}
	if amount > u.InterestBalance {
		return &GateError{Code: CodeInsufficientInterest, Message: "interest balance too low"}
	}
	return nil
}

// PercentOf returns percent% of base rounded to 2 decimal places. Used for
// the monthly withdrawal cap and for referral income shares.
func PercentOf(base, percent float64) float64 {
	v := decimal.NewFromFloat(base).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	f, _ := v.Float64()
	return f
}

// RequiresManualApproval flags requests above the large-withdrawal
// threshold; flagged requests never auto-approve.
func RequiresManualApproval(cfg GateConfig, amount float64) bool {
	return cfg.LargeWithdrawalThreshold > 0 && amount > cfg.LargeWithdrawalThreshold
}
