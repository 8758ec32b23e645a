package repository

import (
	"strings"

	"github.com/antojadoapp/antojado/app/models"
	"gorm.io/gorm"
)

// businessRepository implements the BusinessRepository interface
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository instance
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Create creates a new business profile in the database
func (r *businessRepository) Create(business *models.Business) error {
	return r.db.Create(business).Error
}

// GetByID retrieves a business by its ID
func (r *businessRepository) GetByID(id uint) (*models.Business, error) {
	var business models.Business
	err := r.db.First(&business, id).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// GetByUserID retrieves the business owned by the given user account
func (r *businessRepository) GetByUserID(userID uint) (*models.Business, error) {
	var business models.Business
	err := r.db.Where("user_id = ?", userID).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// GetByShareCode resolves a short share code to its business
func (r *businessRepository) GetByShareCode(code string) (*models.Business, error) {
	var business models.Business
	err := r.db.Where("share_code = ?", code).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// Update updates an existing business in the database
func (r *businessRepository) Update(business *models.Business) error {
	return r.db.Save(business).Error
}

// Delete soft deletes a business by its ID
func (r *businessRepository) Delete(id uint) error {
	return r.db.Delete(&models.Business{}, id).Error
}

// List retrieves a paginated directory listing, featured plans first, then
// best rated.
func (r *businessRepository) List(offset, limit int) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.
		Order("subscription_plan = 'destacado' DESC").
		Order("rating DESC, review_count DESC").
		Offset(offset).Limit(limit).
		Find(&businesses).Error
	return businesses, err
}

// GetFeatured retrieves businesses with featured placement
func (r *businessRepository) GetFeatured(limit int) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.
		Where("subscription_plan = ?", models.PLAN_DESTACADO).
		Order("rating DESC, review_count DESC").
		Limit(limit).
		Find(&businesses).Error
	return businesses, err
}

// Search searches businesses by name, category or address
func (r *businessRepository) Search(query string) ([]models.Business, error) {
	var businesses []models.Business
	searchPattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.
		Where("name LIKE ? OR category LIKE ? OR address LIKE ?", searchPattern, searchPattern, searchPattern).
		Order("subscription_plan = 'destacado' DESC").
		Order("rating DESC").
		Find(&businesses).Error
	return businesses, err
}

// Count returns the total number of businesses
func (r *businessRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Business{}).Count(&count).Error
	return count, err
}

// GetMenu retrieves the menu of a business in display order
func (r *businessRepository) GetMenu(businessID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Where("business_id = ?", businessID).Order("position ASC, id ASC").Find(&items).Error
	return items, err
}

// CountMenuItems returns the number of menu items of a business
func (r *businessRepository) CountMenuItems(businessID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.MenuItem{}).Where("business_id = ?", businessID).Count(&count).Error
	return count, err
}

// CreateMenuItem appends a menu item
func (r *businessRepository) CreateMenuItem(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// DeleteMenuItem removes a menu item, scoped to the owning business
func (r *businessRepository) DeleteMenuItem(businessID, itemID uint) error {
	return r.db.Where("business_id = ?", businessID).Delete(&models.MenuItem{}, itemID).Error
}

// GetImages retrieves the gallery of a business in display order
func (r *businessRepository) GetImages(businessID uint) ([]models.BusinessImage, error) {
	var images []models.BusinessImage
	err := r.db.Where("business_id = ?", businessID).Order("position ASC, id ASC").Find(&images).Error
	return images, err
}

// CountImages returns the number of gallery images of a business
func (r *businessRepository) CountImages(businessID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.BusinessImage{}).Where("business_id = ?", businessID).Count(&count).Error
	return count, err
}

// CreateImage stores a gallery image record
func (r *businessRepository) CreateImage(image *models.BusinessImage) error {
	return r.db.Create(image).Error
}

// GetImageByUUID retrieves a gallery image by its UUID
func (r *businessRepository) GetImageByUUID(uuid string) (*models.BusinessImage, error) {
	var image models.BusinessImage
	err := r.db.Where("uuid = ?", uuid).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// UpdateImage updates a gallery image record
func (r *businessRepository) UpdateImage(image *models.BusinessImage) error {
	return r.db.Save(image).Error
}

// DeleteImage removes a gallery image, scoped to the owning business
func (r *businessRepository) DeleteImage(businessID, imageID uint) error {
	return r.db.Where("business_id = ?", businessID).Delete(&models.BusinessImage{}, imageID).Error
}
