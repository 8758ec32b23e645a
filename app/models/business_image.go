package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessImage struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	BusinessID   uint           `gorm:"index" json:"business_id"`
	Business     Business       `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	UUID         string         `gorm:"type:varchar(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"uuid"`
	FileName     string         `gorm:"type:varchar(255);not null" json:"file_name"`
	FileType     string         `gorm:"type:varchar(10)" json:"file_type"`
	FileSize     int64          `gorm:"default:0" json:"file_size"`
	Title        string         `gorm:"type:varchar(255)" json:"title" validate:"max=255"`
	Position     int            `gorm:"default:0" json:"position"`
	HasThumbnail bool           `gorm:"default:false" json:"has_thumbnail"`
	InS3         bool           `gorm:"default:false" json:"in_s3"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the UUID used in file paths and public URLs
func (i *BusinessImage) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == "" {
		i.UUID = uuid.New().String()
	}
	return nil
}
