package models

// Setting is the process-wide, admin-mutable configuration record. It is
// a single row; Version increments on every update so a computation can
// record which config snapshot it used. Handlers fetch it per request and
// pass explicit values into the engine rather than reading globals.
type Setting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Interest rate config (% per day).
	BaseRate         float64 `gorm:"type:decimal(6,3);not null;default:0.50" json:"base_rate"`
	MaxRate          float64 `gorm:"type:decimal(6,3);not null;default:2.00" json:"max_rate"`
	RateIncrement    float64 `gorm:"type:decimal(6,3);not null;default:0.05" json:"rate_increment"`
	ReferralStep     int     `gorm:"not null;default:10" json:"referral_step"`
	SpecialRate      float64 `gorm:"type:decimal(6,3);not null;default:1.00" json:"special_rate"`
	SpecialThreshold float64 `gorm:"type:decimal(15,2);not null;default:10000" json:"special_threshold"`
	InactivityDays   int     `gorm:"not null;default:60" json:"inactivity_days"`

	// Investment / referral thresholds (USDT).
	MinInvest           float64 `gorm:"type:decimal(15,2);not null;default:10" json:"min_invest"`
	ActivationThreshold float64 `gorm:"type:decimal(15,2);not null;default:500" json:"activation_threshold"`

	// Withdrawal gate.
	MinWithdraw              float64 `gorm:"type:decimal(15,2);not null;default:20" json:"min_withdraw"`
	UnlockThreshold          float64 `gorm:"type:decimal(15,2);not null;default:500" json:"unlock_threshold"`
	MonthlyPercentCap        float64 `gorm:"type:decimal(6,2);not null;default:30" json:"monthly_percent_cap"`
	MonthlyWithdrawalLimit   int     `gorm:"not null;default:1" json:"monthly_withdrawal_limit"`
	LargeWithdrawalThreshold float64 `gorm:"type:decimal(15,2);not null;default:5000" json:"large_withdrawal_threshold"`
	AutoWithdraw             bool    `gorm:"not null;default:false" json:"auto_withdraw"`

	// Platform switches.
	Maintenance    bool `gorm:"not null;default:false" json:"maintenance"`
	ClosedRegister bool `gorm:"not null;default:false" json:"closed_register"`

	Version int `gorm:"not null;default:1" json:"version"`
}

func (Setting) TableName() string {
	return "settings"
}

// DefaultSetting returns the seed row with every field set explicitly.
// The column defaults above only apply to raw SQL inserts; seeding must
// not rely on the driver reading them back (MySQL has no RETURNING).
func DefaultSetting() Setting {
	return Setting{
		BaseRate:                 0.50,
		MaxRate:                  2.00,
		RateIncrement:            0.05,
		ReferralStep:             10,
		SpecialRate:              1.00,
		SpecialThreshold:         10000,
		InactivityDays:           60,
		MinInvest:                10,
		ActivationThreshold:      500,
		MinWithdraw:              20,
		UnlockThreshold:          500,
		MonthlyPercentCap:        30,
		MonthlyWithdrawalLimit:   1,
		LargeWithdrawalThreshold: 5000,
		AutoWithdraw:             false,
		Maintenance:              false,
		ClosedRegister:           false,
		Version:                  1,
	}
}
