package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ume_backend/internal/auth"
	"ume_backend/internal/email"
	"ume_backend/internal/logger"
	"ume_backend/internal/models"
	"ume_backend/internal/repositories"
	"ume_backend/internal/services/dto"
	"ume_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const invalidCredentialsMsg = "Неверный email или пароль"

// AuthService - регистрация и парольные операции.
// Пароль появляется у пользователя только после верификации,
// до этого момента вход невозможен.
type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegistrationRequest) (*models.User, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ChangePassword(ctx context.Context, db *gorm.DB, req *dto.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokenRepo     repositories.TokenRepository
	cityRepo      repositories.CityRepository
	tokenService  TokenService
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	cityRepo repositories.CityRepository,
	tokenService TokenService,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		cityRepo:      cityRepo,
		tokenService:  tokenService,
		emailProvider: emailProvider,
	}
}

// Register создает пользователя в статусе pending без пароля.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegistrationRequest) (*models.User, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, apperrors.ValidationError([]apperrors.FieldError{
			{Field: "birth_date", Message: "Некорректная дата рождения", Type: "datetime"},
		})
	}

	if _, err := s.cityRepo.FindByID(db, req.CityID); err != nil {
		if errors.Is(err, repositories.ErrCityNotFound) {
			return nil, apperrors.ValidationError([]apperrors.FieldError{
				{Field: "city_id", Message: "Город не найден", Type: "exists"},
			})
		}
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:     req.Email,
		Name:      req.Name,
		BirthDate: birthDate,
		Height:    req.Height,
		BodyType:  models.BodyType(req.BodyType),
		Gender:    models.Gender(req.Gender),
		CityID:    req.CityID,
		Status:    models.StatusPending,
	}
	if len(req.DeviceInfo) > 0 {
		raw, err := json.Marshal(req.DeviceInfo)
		if err == nil {
			user.DeviceInfo = datatypes.JSON(raw)
		}
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.NewConflictError("Пользователь с таким email уже существует")
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login выдает bearer-токен по email и паролю.
// Неизвестный email, отсутствие пароля, неверный пароль и
// заблокированный статус наружу неразличимы.
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
		}
		return nil, apperrors.InternalError(err)
	}

	if user.PasswordHash == nil || !auth.CheckPasswordHash(req.Password, *user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
	}
	if user.Status != models.StatusActive {
		return nil, apperrors.NewUnauthorizedError(invalidCredentialsMsg)
	}

	token, err := s.tokenService.Issue(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateLastLogin(db, user.ID); err != nil {
		logger.CtxWarn(ctx, "failed to stamp last login", "user_id", user.ID, "error", err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return &dto.TokenResponse{
		Success: true,
		UserID:  user.ID,
		Token:   token,
	}, nil
}

// ChangePassword меняет пароль после проверки старого.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, db *gorm.DB, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewUnauthorizedError(invalidCredentialsMsg)
		}
		return apperrors.InternalError(err)
	}

	if user.PasswordHash == nil || !auth.CheckPasswordHash(req.OldPassword, *user.PasswordHash) {
		return apperrors.NewUnauthorizedError(invalidCredentialsMsg)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password changed", "user_id", user.ID)
	return nil
}

// ResetPassword генерирует новый пароль и отправляет его на почту.
// Для неизвестного email молча возвращает успех, чтобы не раскрывать
// существование аккаунта. Все активные токены пользователя отзываются.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxInfo(ctx, "password reset requested for unknown email")
			return nil
		}
		return apperrors.InternalError(err)
	}

	password, err := auth.GeneratePassword(auth.DefaultPasswordLength)
	if err != nil {
		return apperrors.InternalError(err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.tokenRepo.DeactivateByUserID(db, user.ID); err != nil {
		logger.CtxWarn(ctx, "failed to revoke tokens after reset", "user_id", user.ID, "error", err)
	}

	// Пароль уже зафиксирован, падение почты не откатывает сброс
	go func(to, password string, userID uint) {
		if err := s.emailProvider.SendPassword(to, password); err != nil {
			logger.Error("failed to send reset password email", "user_id", userID, "error", err)
		}
	}(user.Email, password, user.ID)

	logger.CtxInfo(ctx, "password reset", "user_id", user.ID)
	return nil
}
