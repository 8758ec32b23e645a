package models

import "time"

// PlanChange is the audit row written by the simulated checkout whenever a
// business switches subscription plans. Payments are never actually charged.
type PlanChange struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"index" json:"business_id"`
	Business   Business  `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	UserID     uint      `gorm:"index" json:"user_id"`
	FromPlan   string    `gorm:"type:varchar(50)" json:"from_plan"`
	ToPlan     string    `gorm:"type:varchar(50)" json:"to_plan"`
	PriceCents int       `gorm:"default:0" json:"price_cents"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
