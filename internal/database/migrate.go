package database

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ume_backend/internal/logger"
	"ume_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate прогоняет автомиграцию схемы.
// Порядок важен: города раньше пользователей из-за внешнего ключа.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.City{},
		&models.User{},
		&models.Photo{},
		&models.AuthToken{},
	)
}

type cityEntry struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

// SeedCities загружает справочник городов из JSON-файла.
// Повторный запуск на заполненной таблице ничего не делает.
func SeedCities(db *gorm.DB, path string) error {
	if path == "" {
		logger.Warn("Cities seed path is not set. Skipping city seeding.")
		return nil
	}

	var count int64
	if err := db.Model(&models.City{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count cities: %w", err)
	}
	if count > 0 {
		logger.Info("Cities table already seeded", "count", count)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read cities seed file: %w", err)
	}

	var entries []cityEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse cities seed file: %w", err)
	}

	cities := make([]models.City, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.City)
		region := strings.TrimSpace(entry.Region)
		if name == "" || region == "" {
			continue
		}
		cities = append(cities, models.City{Name: name, Region: region})
	}
	if len(cities) == 0 {
		logger.Warn("Cities seed file contains no usable entries", "path", path)
		return nil
	}

	if err := db.CreateInBatches(cities, 500).Error; err != nil {
		return fmt.Errorf("failed to insert cities: %w", err)
	}

	logger.Info("Cities seeded", "count", len(cities))
	return nil
}
