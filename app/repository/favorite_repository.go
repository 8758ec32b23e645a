package repository

import (
	"github.com/antojadoapp/antojado/app/models"
	"gorm.io/gorm"
)

// favoriteRepository implements the FavoriteRepository interface
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository instance
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle creates or removes the favorite mark of a user on a business
func (r *favoriteRepository) Toggle(userID, businessID uint) error {
	return models.ToggleFavorite(r.db, userID, businessID)
}

// IsFavorite reports whether the user has favorited the business
func (r *favoriteRepository) IsFavorite(userID, businessID uint) bool {
	return models.IsFavorite(r.db, userID, businessID)
}

// ListByUser retrieves the businesses a user has favorited, newest first
func (r *favoriteRepository) ListByUser(userID uint) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.
		Joins("JOIN favorites ON favorites.business_id = businesses.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&businesses).Error
	return businesses, err
}

// CountByBusiness returns how many users favorited the business
func (r *favoriteRepository) CountByBusiness(businessID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).Where("business_id = ?", businessID).Count(&count).Error
	return count, err
}
