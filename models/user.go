package models

import "time"

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:100;not null" json:"name"`
	Email           string     `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password        string     `gorm:"size:255;not null" json:"-"`
	ReffCode        string     `gorm:"size:20;uniqueIndex;not null" json:"reff_code"`
	ReffBy          *uint      `gorm:"column:reff_by;index" json:"reff_by"`
	TotalInvested   float64    `gorm:"column:total_invested;type:decimal(15,2);default:0" json:"total_invested"`
	InterestBalance float64    `gorm:"column:interest_balance;type:decimal(15,2);default:0" json:"interest_balance"`
	Status          string     `gorm:"type:varchar(20);default:'Active'" json:"status"`
	Profile         *string    `gorm:"type:varchar(255)" json:"profile,omitempty"`
	LastActivityAt  *time.Time `gorm:"column:last_activity_at" json:"last_activity_at,omitempty"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// User statuses. Frozen accounts keep their balances but accrue nothing
// and cannot withdraw.
const (
	UserStatusActive = "Active"
	UserStatusFrozen = "Frozen"
)
