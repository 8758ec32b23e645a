package models

import (
	"time"

	"gorm.io/gorm"
)

type Favorite struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BusinessID uint           `gorm:"index" json:"business_id"`
	Business   Business       `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ToggleFavorite creates or removes a favorite mark
func ToggleFavorite(db *gorm.DB, userID, businessID uint) error {
	var fav Favorite
	result := db.Where("user_id = ? AND business_id = ?", userID, businessID).First(&fav)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			newFav := Favorite{
				UserID:     userID,
				BusinessID: businessID,
			}
			return db.Create(&newFav).Error
		}
		return result.Error
	}

	// Hard delete so the unique user+business index stays free for the
	// next toggle
	return db.Delete(&fav).Error
}

// IsFavorite reports whether the user has favorited the business
func IsFavorite(db *gorm.DB, userID, businessID uint) bool {
	var fav Favorite
	err := db.Where("user_id = ? AND business_id = ?", userID, businessID).First(&fav).Error
	return err == nil
}
