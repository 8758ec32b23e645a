package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type MenuItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BusinessID  uint           `gorm:"index" json:"business_id"`
	Business    Business       `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Price       float64        `gorm:"type:decimal(10,2);default:0" json:"price" validate:"gte=0"`
	Description string         `gorm:"type:varchar(500)" json:"description" validate:"max=500"`
	Position    int            `gorm:"default:0" json:"position"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *MenuItem) Validate() error {
	v := validator.New()

	return v.Struct(m)
}
