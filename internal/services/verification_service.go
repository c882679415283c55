package services

import (
	"context"
	"errors"
	"mime/multipart"

	"ume_backend/internal/auth"
	"ume_backend/internal/email"
	"ume_backend/internal/logger"
	"ume_backend/internal/models"
	"ume_backend/internal/repositories"
	"ume_backend/internal/services/dto"
	"ume_backend/internal/storage"
	"ume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// VerificationService - фотоверификация зарегистрированного пользователя.
// Успешная подача сразу активирует аккаунт и выдает пароль на почту,
// отдельной очереди модерации нет.
type VerificationService interface {
	Submit(ctx context.Context, db *gorm.DB, userID uint, avatar, verificationPhoto *multipart.FileHeader) (*dto.VerificationResponse, error)
	Status(db *gorm.DB, userID uint) (*dto.VerificationStatusResponse, error)
}

type VerificationServiceImpl struct {
	userRepo      repositories.UserRepository
	photoRepo     repositories.PhotoRepository
	storage       storage.Storage
	emailProvider email.Provider
	maxSize       int64
	runTx         func(db *gorm.DB, fn func(tx *gorm.DB) error) error
}

func NewVerificationService(
	userRepo repositories.UserRepository,
	photoRepo repositories.PhotoRepository,
	st storage.Storage,
	emailProvider email.Provider,
	maxSize int64,
) VerificationService {
	return &VerificationServiceImpl{
		userRepo:      userRepo,
		photoRepo:     photoRepo,
		storage:       st,
		emailProvider: emailProvider,
		maxSize:       maxSize,
		runTx: func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
			return db.Transaction(fn)
		},
	}
}

// Submit принимает пару файлов (аватар + верификационное фото),
// переводит пользователя pending -> active и выдает первый пароль.
// Файлы пишутся до транзакции, при откате записанное удаляется.
func (s *VerificationServiceImpl) Submit(ctx context.Context, db *gorm.DB, userID uint, avatar, verificationPhoto *multipart.FileHeader) (*dto.VerificationResponse, error) {
	avatarExt, err := photoExtension(avatar.Filename)
	if err != nil {
		return nil, err
	}
	verificationExt, err := photoExtension(verificationPhoto.Filename)
	if err != nil {
		return nil, err
	}
	if err := checkPhotoSize(avatar, s.maxSize); err != nil {
		return nil, err
	}
	if err := checkPhotoSize(verificationPhoto, s.maxSize); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("Пользователь не найден")
		}
		return nil, apperrors.InternalError(err)
	}

	hasAvatar, err := s.photoRepo.HasAvatar(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if hasAvatar || user.Status != models.StatusPending {
		return nil, apperrors.NewConflictError("Пользователь уже прошел верификацию")
	}

	avatarPath := photoPath(userID, "avatar", avatarExt)
	verificationPath := photoPath(userID, "verification", verificationExt)

	var written []string
	if err := saveUpload(ctx, s.storage, avatar, avatarPath, contentTypeForExt(avatarExt)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	written = append(written, avatarPath)
	if err := saveUpload(ctx, s.storage, verificationPhoto, verificationPath, contentTypeForExt(verificationExt)); err != nil {
		cleanupFiles(ctx, s.storage, written)
		return nil, apperrors.InternalError(err)
	}
	written = append(written, verificationPath)

	password, err := auth.GeneratePassword(auth.DefaultPasswordLength)
	if err != nil {
		cleanupFiles(ctx, s.storage, written)
		return nil, apperrors.InternalError(err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		cleanupFiles(ctx, s.storage, written)
		return nil, apperrors.InternalError(err)
	}

	err = s.runTx(db, func(tx *gorm.DB) error {
		photos := []*models.Photo{
			{UserID: userID, FilePath: avatarPath, PhotoType: models.PhotoTypeAvatar},
			{UserID: userID, FilePath: verificationPath, PhotoType: models.PhotoTypeVerification},
		}
		if err := s.photoRepo.CreateBatch(tx, photos); err != nil {
			return err
		}
		if err := s.userRepo.UpdatePassword(tx, userID, hash); err != nil {
			return err
		}
		return s.userRepo.UpdateStatus(tx, userID, models.StatusActive)
	})
	if err != nil {
		cleanupFiles(ctx, s.storage, written)
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("Пользователь не найден")
		}
		return nil, apperrors.InternalError(err)
	}

	// Статус уже зафиксирован, падение почты не откатывает верификацию
	go func(to, password string, userID uint) {
		if err := s.emailProvider.SendPassword(to, password); err != nil {
			logger.Error("failed to send verification password email", "user_id", userID, "error", err)
		}
	}(user.Email, password, userID)

	logger.CtxInfo(ctx, "user verified", "user_id", userID)
	return &dto.VerificationResponse{
		Success:          true,
		Message:          "Фотографии успешно загружены",
		UserID:           userID,
		AvatarPath:       avatarPath,
		VerificationPath: verificationPath,
	}, nil
}

// Status возвращает текущий статус пользователя для поллинга клиентом.
func (s *VerificationServiceImpl) Status(db *gorm.DB, userID uint) (*dto.VerificationStatusResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("Пользователь не найден")
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.VerificationStatusResponse{
		Success: true,
		Status:  user.Status,
	}, nil
}
