package repository

import (
	"github.com/antojadoapp/antojado/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// BusinessRepository defines the interface for business-profile operations,
// including the owned menu and gallery collections.
type BusinessRepository interface {
	Create(business *models.Business) error
	GetByID(id uint) (*models.Business, error)
	GetByUserID(userID uint) (*models.Business, error)
	GetByShareCode(code string) (*models.Business, error)
	Update(business *models.Business) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Business, error)
	GetFeatured(limit int) ([]models.Business, error)
	Search(query string) ([]models.Business, error)
	Count() (int64, error)

	GetMenu(businessID uint) ([]models.MenuItem, error)
	CountMenuItems(businessID uint) (int64, error)
	CreateMenuItem(item *models.MenuItem) error
	DeleteMenuItem(businessID, itemID uint) error

	GetImages(businessID uint) ([]models.BusinessImage, error)
	CountImages(businessID uint) (int64, error)
	CreateImage(image *models.BusinessImage) error
	GetImageByUUID(uuid string) (*models.BusinessImage, error)
	UpdateImage(image *models.BusinessImage) error
	DeleteImage(businessID, imageID uint) error
}

// FavoriteRepository defines the interface for favorite toggling and lists
type FavoriteRepository interface {
	Toggle(userID, businessID uint) error
	IsFavorite(userID, businessID uint) bool
	ListByUser(userID uint) ([]models.Business, error)
	CountByBusiness(businessID uint) (int64, error)
}

// Repositories holds all repository instances
type Repositories struct {
	User     UserRepository
	Business BusinessRepository
	Favorite FavoriteRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Business: NewBusinessRepository(db),
		Favorite: NewFavoriteRepository(db),
	}
}
