package models

import "time"

// Accrual records one day's interest credit for one user. The composite
// unique index on (user_id, accrual_date) is the idempotence key for the
// daily job: a second run on the same day hits a duplicate-key error and
// the user is skipped.
type Accrual struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_day" json:"user_id"`
	AccrualDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_day" json:"accrual_date"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	RateUsed    float64   `gorm:"type:decimal(6,3);not null" json:"rate_used"`
	CreatedAt   time.Time `json:"-"`
}

func (Accrual) TableName() string {
	return "accruals"
}
