package services

import (
	"ume_backend/internal/email"
	"ume_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	TokenService        TokenService
	VerificationService VerificationService
	PhotoService        PhotoService
	ProfileService      ProfileService
	CityService         CityService
	EmailProvider       email.Provider
	Storage             storage.Storage
}
