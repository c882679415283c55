package repositories

import (
	"errors"

	"ume_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("auth token not found")

type TokenRepository interface {
	Create(db *gorm.DB, token *models.AuthToken) error
	FindByToken(db *gorm.DB, token string) (*models.AuthToken, error)
	Deactivate(db *gorm.DB, token string) error
	DeactivateByUserID(db *gorm.DB, userID uint) error
}

type TokenRepositoryImpl struct{}

func NewTokenRepository() TokenRepository {
	return &TokenRepositoryImpl{}
}

func (r *TokenRepositoryImpl) Create(db *gorm.DB, token *models.AuthToken) error {
	return db.Create(token).Error
}

func (r *TokenRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.AuthToken, error) {
	var authToken models.AuthToken
	err := db.First(&authToken, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &authToken, nil
}

// Deactivate переводит токен в is_active = false.
// Идемпотентно: повторный отзыв и отзыв неизвестного токена - no-op.
func (r *TokenRepositoryImpl) Deactivate(db *gorm.DB, token string) error {
	return db.Model(&models.AuthToken{}).Where("token = ?", token).Update("is_active", false).Error
}

func (r *TokenRepositoryImpl) DeactivateByUserID(db *gorm.DB, userID uint) error {
	return db.Model(&models.AuthToken{}).Where("user_id = ?", userID).Update("is_active", false).Error
}
