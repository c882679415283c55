package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	Name         string    `gorm:"size:30;not null"`
	PasswordHash *string   `gorm:"size:255"` // nil до первой выдачи пароля
	BirthDate    time.Time `gorm:"type:date;not null"`
	Height       int       `gorm:"not null"`
	BodyType     BodyType  `gorm:"type:varchar(20);not null"`
	Gender       Gender    `gorm:"type:varchar(10);not null"`
	CityID       uint      `gorm:"not null"`
	Status       Status    `gorm:"type:varchar(20);default:'pending'"`
	Bio          *string   `gorm:"size:1000"`
	Desires      *string   `gorm:"size:1000"`
	DeviceInfo   datatypes.JSON
	LastLogin    *time.Time

	// Relations
	City       *City       `gorm:"foreignKey:CityID"`
	Photos     []Photo     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthTokens []AuthToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// AuthToken - непрозрачный bearer-токен.
// Деактивация односторонняя: токены не удаляются, только помечаются.
type AuthToken struct {
	Token     string    `gorm:"size:64;primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_token_active"`
	IsActive  bool      `gorm:"default:true;index:idx_token_active"`
	CreatedAt time.Time `gorm:"default:now()"`
}
