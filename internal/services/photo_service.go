package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"ume_backend/internal/logger"
	"ume_backend/internal/models"
	"ume_backend/internal/repositories"
	"ume_backend/internal/services/dto"
	"ume_backend/internal/storage"
	"ume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PhotoService - догрузка фотографий в галерею профиля.
type PhotoService interface {
	UploadProfilePhotos(ctx context.Context, db *gorm.DB, userID uint, files []*multipart.FileHeader) (*dto.UploadPhotosResponse, error)
}

type PhotoServiceImpl struct {
	userRepo  repositories.UserRepository
	photoRepo repositories.PhotoRepository
	storage   storage.Storage
	maxPhotos int
	maxSize   int64
}

func NewPhotoService(
	userRepo repositories.UserRepository,
	photoRepo repositories.PhotoRepository,
	st storage.Storage,
	maxPhotos int,
	maxSize int64,
) PhotoService {
	return &PhotoServiceImpl{
		userRepo:  userRepo,
		photoRepo: photoRepo,
		storage:   st,
		maxPhotos: maxPhotos,
		maxSize:   maxSize,
	}
}

// UploadProfilePhotos принимает пакет файлов целиком или отклоняет целиком.
// Расширения и квота проверяются до первой записи на диск.
func (s *PhotoServiceImpl) UploadProfilePhotos(ctx context.Context, db *gorm.DB, userID uint, files []*multipart.FileHeader) (*dto.UploadPhotosResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("Файлы не переданы")
	}

	exts := make([]string, 0, len(files))
	for _, fh := range files {
		ext, err := photoExtension(fh.Filename)
		if err != nil {
			return nil, err
		}
		if err := checkPhotoSize(fh, s.maxSize); err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}

	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("Пользователь не найден")
		}
		return nil, apperrors.InternalError(err)
	}

	count, err := s.photoRepo.CountByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if int(count)+len(files) > s.maxPhotos {
		return nil, apperrors.NewQuotaExceededError(
			fmt.Sprintf("Превышен лимит фотографий: максимум %d", s.maxPhotos))
	}

	var written []string
	photos := make([]*models.Photo, 0, len(files))
	for i, fh := range files {
		path := photoPath(userID, "gallery", exts[i])
		if err := saveUpload(ctx, s.storage, fh, path, contentTypeForExt(exts[i])); err != nil {
			cleanupFiles(ctx, s.storage, written)
			return nil, apperrors.InternalError(err)
		}
		written = append(written, path)
		photos = append(photos, &models.Photo{
			UserID:    userID,
			FilePath:  path,
			PhotoType: models.PhotoTypeGallery,
		})
	}

	if err := s.photoRepo.CreateBatch(db, photos); err != nil {
		cleanupFiles(ctx, s.storage, written)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile photos uploaded", "user_id", userID, "count", len(files))
	return &dto.UploadPhotosResponse{
		Success: true,
		Message: "Фотографии успешно загружены",
		Paths:   written,
	}, nil
}
