package models

import "time"

// InvestmentEntry is one row of the append-only investment ledger. Only
// Confirmed entries count toward a user's total_invested; rejecting an
// entry never touches the running sum.
type InvestmentEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	EntryType string    `gorm:"type:varchar(20);not null" json:"entry_type"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	OrderID   string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"order_id"`
	AdminID   *uint     `gorm:"index" json:"admin_id,omitempty"`
	Reason    *string   `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (InvestmentEntry) TableName() string {
	return "investment_entries"
}

const (
	EntryTypeNew            = "new"
	EntryTypeReferralCredit = "referral-credit"
	EntryTypeManualAdmin    = "manual-admin"
)

const (
	EntryStatusPending   = "Pending"
	EntryStatusConfirmed = "Confirmed"
	EntryStatusRejected  = "Rejected"
)
