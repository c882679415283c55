package repositories

import (
	"ume_backend/internal/models"

	"gorm.io/gorm"
)

type PhotoRepository interface {
	CreateBatch(db *gorm.DB, photos []*models.Photo) error
	CountByUser(db *gorm.DB, userID uint) (int64, error)
	FindByUser(db *gorm.DB, userID uint) ([]models.Photo, error)
	HasAvatar(db *gorm.DB, userID uint) (bool, error)
}

type PhotoRepositoryImpl struct{}

func NewPhotoRepository() PhotoRepository {
	return &PhotoRepositoryImpl{}
}

func (r *PhotoRepositoryImpl) CreateBatch(db *gorm.DB, photos []*models.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	return db.Create(photos).Error
}

// CountByUser считает фото, занимающие квоту (верификационные не считаются)
func (r *PhotoRepositoryImpl) CountByUser(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Photo{}).
		Where("user_id = ? AND photo_type <> ?", userID, models.PhotoTypeVerification).
		Count(&count).Error
	return count, err
}

// FindByUser возвращает фото пользователя в порядке вставки
func (r *PhotoRepositoryImpl) FindByUser(db *gorm.DB, userID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := db.Where("user_id = ?", userID).Order("id ASC").Find(&photos).Error
	return photos, err
}

func (r *PhotoRepositoryImpl) HasAvatar(db *gorm.DB, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Photo{}).
		Where("user_id = ? AND photo_type = ?", userID, models.PhotoTypeAvatar).
		Count(&count).Error
	return count > 0, err
}
