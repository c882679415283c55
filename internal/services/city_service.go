package services

import (
	"strings"
	"unicode"

	"ume_backend/internal/config"
	"ume_backend/internal/models"
	"ume_backend/internal/repositories"
	"ume_backend/internal/services/dto"
	"ume_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CityService - справочник городов для регистрации и профиля.
type CityService interface {
	List(db *gorm.DB) (*dto.CityListResponse, error)
	Search(db *gorm.DB, query string) (*dto.CityListResponse, error)
}

type CityServiceImpl struct {
	cityRepo repositories.CityRepository
}

func NewCityService(cityRepo repositories.CityRepository) CityService {
	return &CityServiceImpl{cityRepo: cityRepo}
}

func (s *CityServiceImpl) List(db *gorm.DB) (*dto.CityListResponse, error) {
	cities, err := s.cityRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return citiesToResponse(cities), nil
}

// Search ищет города по префиксу без учета регистра.
// Пустой после нормализации запрос дает пустой список.
func (s *CityServiceImpl) Search(db *gorm.DB, query string) (*dto.CityListResponse, error) {
	prefix := normalizeCityQuery(query)
	if prefix == "" {
		return &dto.CityListResponse{Success: true, Items: []dto.CityItem{}}, nil
	}

	cities, err := s.cityRepo.SearchByPrefix(db, prefix, config.LimitCityEntitiesForSearch)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return citiesToResponse(cities), nil
}

func citiesToResponse(cities []models.City) *dto.CityListResponse {
	items := make([]dto.CityItem, 0, len(cities))
	for _, city := range cities {
		items = append(items, dto.CityItem{
			ID:   city.ID,
			Name: city.FullName(),
		})
	}
	return &dto.CityListResponse{Success: true, Items: items}
}

// normalizeCityQuery обрезает пробелы и приводит первую букву к заглавной
func normalizeCityQuery(query string) string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ""
	}
	runes := []rune(strings.ToLower(trimmed))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
