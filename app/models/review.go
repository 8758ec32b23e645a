package models

import (
	"time"
)

// Review is one rating + comment by one user for one business. The composite
// unique index enforces the one-review-per-user-per-business rule at the
// storage level as well; the aggregation service rejects duplicates before
// the insert is attempted. Deletes are hard deletes so the unique index
// stays free for a later review by the same user.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uint      `gorm:"index:business_author,unique" json:"business_id"`
	Business   Business  `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	UserID     uint      `gorm:"index:business_author,unique" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	UserName   string    `gorm:"type:varchar(150)" json:"user_name"`
	Rating     int       `gorm:"not null" json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `gorm:"type:varchar(500)" json:"comment" validate:"required,min=10,max=500"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
