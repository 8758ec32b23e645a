package reviews

import (
	"errors"

	"gorm.io/gorm"

	"github.com/antojadoapp/antojado/app/models"
)

// Repository provides the DB operations used by the aggregation service.
// Rating and count are written through UpdateBusinessRating in one call so
// display surfaces never observe one without the other.
type Repository interface {
	FindByBusiness(businessID uint) ([]models.Review, error)
	FindByBusinessAndAuthor(businessID, userID uint) (*models.Review, error)
	GetByID(id uint) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id uint) error
	UpdateBusinessRating(businessID uint, rating float64, reviewCount int) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a review repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByBusiness(businessID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Where("business_id = ?", businessID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, storageErr("find", err)
	}
	return reviews, nil
}

func (r *gormRepository) FindByBusinessAndAuthor(businessID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("business_id = ? AND user_id = ?", businessID, userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, storageErr("find", err)
	}
	return &review, nil
}

func (r *gormRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, storageErr("get", err)
	}
	return &review, nil
}

func (r *gormRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return storageErr("create", err)
	}
	return nil
}

func (r *gormRepository) Update(review *models.Review) error {
	if err := r.db.Save(review).Error; err != nil {
		return storageErr("update", err)
	}
	return nil
}

// Delete removes the row for good. Review has no soft-delete column, so the
// business_author unique key is immediately reusable by the same author.
func (r *gormRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Review{}, id).Error; err != nil {
		return storageErr("delete", err)
	}
	return nil
}

func (r *gormRepository) UpdateBusinessRating(businessID uint, rating float64, reviewCount int) error {
	err := r.db.Model(&models.Business{}).
		Where("id = ?", businessID).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		}).Error
	if err != nil {
		return storageErr("update business rating", err)
	}
	return nil
}
