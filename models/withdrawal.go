package models

import "time"

// Withdrawal request lifecycle: Pending -> Approved -> Processed, or
// Pending -> Rejected (terminal). No backward transitions. The interest
// balance is deducted at approval time; Processed only records that the
// external transfer should have happened.
type Withdrawal struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	UserID                 uint       `gorm:"not null;index" json:"user_id"`
	Amount                 float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	OrderID                string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"order_id"`
	Status                 string     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	RequiresManualApproval bool       `gorm:"not null;default:false" json:"requires_manual_approval"`
	ProcessedAt            *time.Time `json:"processed_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}

const (
	WithdrawalStatusPending   = "Pending"
	WithdrawalStatusApproved  = "Approved"
	WithdrawalStatusRejected  = "Rejected"
	WithdrawalStatusProcessed = "Processed"
)
