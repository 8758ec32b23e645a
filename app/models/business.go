package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/antojadoapp/antojado/internal/pkg/shortener"
)

const (
	PLAN_FREE      = "free"
	PLAN_PREMIUM   = "premium"
	PLAN_DESTACADO = "destacado"
)

// Business is the public profile owned by a business-type user account.
// Rating and ReviewCount are derived fields: only the review aggregation
// service writes them, everything else reads.
type Business struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"uniqueIndex" json:"user_id"`
	User             User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=2,max=255"`
	Category         string          `gorm:"type:varchar(100);default:'Restaurante'" json:"category" validate:"max=100"`
	Address          string          `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	Phone            string          `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	Description      string          `gorm:"type:text" json:"description" validate:"max=2000"`
	OpeningHours     string          `gorm:"type:varchar(255)" json:"opening_hours" validate:"max=255"`
	Rating           float64         `gorm:"type:decimal(2,1);default:0" json:"rating"`
	ReviewCount      int             `gorm:"default:0" json:"review_count"`
	SubscriptionPlan string          `gorm:"type:varchar(50);default:'free'" json:"subscription_plan"`
	Featured         bool            `gorm:"default:false" json:"featured"`
	ViewCount        int             `gorm:"default:0" json:"view_count"`
	ShareCount       int             `gorm:"default:0" json:"share_count"`
	ShareCode        string          `gorm:"type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"share_code"`
	Images           []BusinessImage `gorm:"foreignKey:BusinessID" json:"images,omitempty"`
	Menu             []MenuItem      `gorm:"foreignKey:BusinessID" json:"menu,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (b *Business) Validate() error {
	v := validator.New()

	return v.Struct(b)
}

// CurrentPlan returns the persisted subscription plan, free when unset.
// Legacy rows created before the plan column existed have an empty string.
func (b *Business) CurrentPlan() string {
	if b.SubscriptionPlan == "" {
		return PLAN_FREE
	}
	return b.SubscriptionPlan
}

// IsFeatured reports featured placement. The subscription plan is the
// canonical source; the Featured column is only synced from it on plan
// changes and kept for older rows.
func (b *Business) IsFeatured() bool {
	return b.CurrentPlan() == PLAN_DESTACADO
}

// IsVerified reports the verified badge. Besides the destacado plan we also
// honor an explicit featured override from the pre-plan schema.
func (b *Business) IsVerified() bool {
	return b.CurrentPlan() == PLAN_DESTACADO || b.Featured
}

// BeforeCreate reserves a placeholder share code until the row has an ID
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ShareCode == "" {
		b.ShareCode = "temp"
	}
	return nil
}

// AfterCreate derives the final share code from the assigned ID
func (b *Business) AfterCreate(tx *gorm.DB) error {
	if b.ShareCode == "temp" {
		b.ShareCode = shortener.EncodeID(b.ID)
		return tx.Model(b).Update("share_code", b.ShareCode).Error
	}
	return nil
}
