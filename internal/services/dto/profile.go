package dto

import "ume_backend/internal/models"

// UserData - read-модель профиля.
// Возраст вычисляется на каждое чтение, URL фото абсолютные.
type UserData struct {
	ID       uint            `json:"id"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Age      int             `json:"age"`
	Status   models.Status   `json:"status"`
	Height   int             `json:"height"`
	BodyType models.BodyType `json:"body_type"`
	Gender   models.Gender   `json:"gender"`
	City     string          `json:"city"`
	CityID   uint            `json:"city_id"`
	Avatar   string          `json:"avatar"`
	Photos   []string        `json:"photos"`
	Bio      *string         `json:"bio"`
	Desires  *string         `json:"desires"`
}

// EditProfileRequest - редактируемые поля профиля.
// Статус, email и фото через этот путь неизменяемы.
type EditProfileRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=30,personname"`
	Height   int     `json:"height" validate:"required,min=100,max=250"`
	BodyType string  `json:"body_type" validate:"required,oneof=average slim athletic full muscular"`
	CityID   uint    `json:"city_id" validate:"required"`
	Bio      *string `json:"bio" validate:"omitempty,max=1000"`
	Desires  *string `json:"desires" validate:"omitempty,max=1000"`
}
