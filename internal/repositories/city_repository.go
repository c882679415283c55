package repositories

import (
	"errors"

	"ume_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCityNotFound = errors.New("city not found")

type CityRepository interface {
	FindAll(db *gorm.DB) ([]models.City, error)
	SearchByPrefix(db *gorm.DB, prefix string, limit int) ([]models.City, error)
	FindByID(db *gorm.DB, id uint) (*models.City, error)
}

type CityRepositoryImpl struct{}

func NewCityRepository() CityRepository {
	return &CityRepositoryImpl{}
}

func (r *CityRepositoryImpl) FindAll(db *gorm.DB) ([]models.City, error) {
	var cities []models.City
	err := db.Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *CityRepositoryImpl) SearchByPrefix(db *gorm.DB, prefix string, limit int) ([]models.City, error) {
	var cities []models.City
	err := db.Where("name ILIKE ?", prefix+"%").Order("name ASC").Limit(limit).Find(&cities).Error
	return cities, err
}

func (r *CityRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.City, error) {
	var city models.City
	err := db.First(&city, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &city, nil
}
