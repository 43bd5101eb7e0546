package models

import "time"

// Transaction is the audit row written alongside every balance mutation
// (accrual credit, referral credit, withdrawal deduction, manual admin
// correction).
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Amount          float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	OrderID         string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"order_id"`
	TransactionFlow string    `gorm:"type:varchar(10);not null" json:"transaction_flow"`
	TransactionType string    `gorm:"type:varchar(50);not null" json:"transaction_type"`
	Message         *string   `gorm:"type:text" json:"message,omitempty"`
	Status          string    `gorm:"type:varchar(20);not null;default:'Success'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

const (
	FlowDebit  = "debit"
	FlowCredit = "credit"
)

const (
	TrxTypeInvestment = "investment"
	TrxTypeAccrual    = "accrual"
	TrxTypeReferral   = "referral"
	TrxTypeWithdrawal = "withdrawal"
	TrxTypeCorrection = "correction"
)
