package services

import (
	"errors"

	"ume_backend/internal/auth"
	"ume_backend/internal/models"
	"ume_backend/internal/repositories"

	"gorm.io/gorm"
)

var (
	// ErrInvalidToken - токен не найден или деактивирован.
	// Наружу обе причины схлопываются в один Unauthorized.
	ErrInvalidToken = errors.New("invalid or revoked token")
	// ErrTokenUserNotFound - осиротевший токен: владелец удален.
	// При корректном каскадном удалении не встречается, но обрабатывается.
	ErrTokenUserNotFound = errors.New("token owner not found")
)

// TokenService - выпуск, проверка и отзыв непрозрачных bearer-токенов.
// Единственные ворота для всех аутентифицированных операций.
type TokenService interface {
	Issue(db *gorm.DB, userID uint) (string, error)
	Validate(db *gorm.DB, token string) (*models.User, error)
	Revoke(db *gorm.DB, token string) error
}

type TokenServiceImpl struct {
	tokenRepo repositories.TokenRepository
	userRepo  repositories.UserRepository
}

func NewTokenService(tokenRepo repositories.TokenRepository, userRepo repositories.UserRepository) TokenService {
	return &TokenServiceImpl{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
	}
}

// Issue генерирует и сохраняет активный токен для пользователя.
// Лимита сессий нет: несколько активных токенов на пользователя допустимы.
func (s *TokenServiceImpl) Issue(db *gorm.DB, userID uint) (string, error) {
	token, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}

	authToken := &models.AuthToken{
		Token:    token,
		UserID:   userID,
		IsActive: true,
	}
	if err := s.tokenRepo.Create(db, authToken); err != nil {
		return "", err
	}
	return token, nil
}

// Validate разрешает токен во владельца.
func (s *TokenServiceImpl) Validate(db *gorm.DB, token string) (*models.User, error) {
	authToken, err := s.tokenRepo.FindByToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !authToken.IsActive {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, authToken.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrTokenUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Revoke деактивирует токен. Идемпотентно.
func (s *TokenServiceImpl) Revoke(db *gorm.DB, token string) error {
	return s.tokenRepo.Deactivate(db, token)
}
