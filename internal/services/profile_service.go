package services

import (
	"context"
	"errors"
	"time"

	"ume_backend/internal/logger"
	"ume_backend/internal/models"
	"ume_backend/internal/repositories"
	"ume_backend/internal/services/dto"
	"ume_backend/internal/storage"
	"ume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ProfileService - чтение и редактирование собственного профиля.
type ProfileService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID uint) (*dto.UserData, error)
	EditProfile(ctx context.Context, db *gorm.DB, userID uint, req *dto.EditProfileRequest) error
}

type ProfileServiceImpl struct {
	userRepo  repositories.UserRepository
	photoRepo repositories.PhotoRepository
	cityRepo  repositories.CityRepository
	storage   storage.Storage
}

func NewProfileService(
	userRepo repositories.UserRepository,
	photoRepo repositories.PhotoRepository,
	cityRepo repositories.CityRepository,
	st storage.Storage,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:  userRepo,
		photoRepo: photoRepo,
		cityRepo:  cityRepo,
		storage:   st,
	}
}

// GetProfile собирает read-модель профиля: возраст считается на момент
// запроса, верификационное фото наружу не отдается.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, userID uint) (*dto.UserData, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("Пользователь не найден")
		}
		return nil, apperrors.InternalError(err)
	}

	photos, err := s.photoRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var avatarURL string
	gallery := []string{}
	for _, photo := range photos {
		if !photo.IsPublic() {
			continue
		}
		url, err := s.storage.GetURL(ctx, photo.FilePath)
		if err != nil {
			logger.CtxWarn(ctx, "failed to build photo url", "path", photo.FilePath, "error", err)
			continue
		}
		if photo.PhotoType == models.PhotoTypeAvatar && avatarURL == "" {
			avatarURL = url
			continue
		}
		gallery = append(gallery, url)
	}

	var cityName string
	if user.City != nil {
		cityName = user.City.FullName()
	}

	return &dto.UserData{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Age:      calculateAge(user.BirthDate, time.Now()),
		Status:   user.Status,
		Height:   user.Height,
		BodyType: user.BodyType,
		Gender:   user.Gender,
		City:     cityName,
		CityID:   user.CityID,
		Avatar:   avatarURL,
		Photos:   gallery,
		Bio:      user.Bio,
		Desires:  user.Desires,
	}, nil
}

// EditProfile обновляет редактируемые поля. Статус, email и фото
// через этот путь не меняются.
func (s *ProfileServiceImpl) EditProfile(ctx context.Context, db *gorm.DB, userID uint, req *dto.EditProfileRequest) error {
	if _, err := s.cityRepo.FindByID(db, req.CityID); err != nil {
		if errors.Is(err, repositories.ErrCityNotFound) {
			return apperrors.ValidationError([]apperrors.FieldError{
				{Field: "city_id", Message: "Город не найден", Type: "exists"},
			})
		}
		return apperrors.InternalError(err)
	}

	fields := map[string]interface{}{
		"name":      req.Name,
		"height":    req.Height,
		"body_type": req.BodyType,
		"city_id":   req.CityID,
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Desires != nil {
		fields["desires"] = *req.Desires
	}

	if err := s.userRepo.UpdateProfile(db, userID, fields); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("Пользователь не найден")
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile updated", "user_id", userID)
	return nil
}

// calculateAge - полных лет на момент now
func calculateAge(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}
