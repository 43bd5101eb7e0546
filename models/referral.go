package models

import "time"

// ReferralRelation links a referred user to their referrer. Set once at
// registration, never reassigned. Status only ever moves Pending -> Active
// (when the referrer's own investment reaches the activation threshold).
// Income accumulated while Pending is tracked in pending_income but is
// never paid out retroactively.
type ReferralRelation struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ReferrerID    uint       `gorm:"not null;index" json:"referrer_id"`
	ReferredID    uint       `gorm:"not null;uniqueIndex" json:"referred_id"`
	Status        string     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	TotalIncome   float64    `gorm:"type:decimal(15,2);not null;default:0" json:"total_income"`
	PendingIncome float64    `gorm:"type:decimal(15,2);not null;default:0" json:"pending_income"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"-"`

	Referred *User `gorm:"foreignKey:ReferredID" json:"referred,omitempty"`
}

func (ReferralRelation) TableName() string {
	return "referral_relations"
}

const (
	RelationStatusPending = "Pending"
	RelationStatusActive  = "Active"
)
