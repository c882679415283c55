package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ume_backend/internal/auth"
	"ume_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedCity создает город, если его еще нет, и возвращает его
func SeedCity(t *testing.T, db *gorm.DB, name, region string) *models.City {
	t.Helper()

	var city models.City
	err := db.Where("name = ? AND region = ?", name, region).First(&city).Error
	if err == nil {
		return &city
	}
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("Не удалось найти город: %v", err)
	}

	city = models.City{Name: name, Region: region}
	require.NoError(t, db.Create(&city).Error, "Не удалось создать город")
	return &city
}

// CreateUser создает пользователя напрямую в БД.
// rawPassword хешируется; пустой rawPassword оставляет пользователя без пароля.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User, rawPassword string) {
	t.Helper()

	if rawPassword != "" {
		hash, err := auth.HashPassword(rawPassword)
		require.NoError(t, err, "Не удалось хешировать пароль")
		user.PasswordHash = &hash
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	if user.BirthDate.IsZero() {
		user.BirthDate = time.Date(1995, 5, 15, 0, 0, 0, 0, time.UTC)
	}
	if user.Height == 0 {
		user.Height = 170
	}
	if user.BodyType == "" {
		user.BodyType = models.BodyTypeSlim
	}
	if user.Gender == "" {
		user.Gender = models.GenderFemale
	}

	require.NoError(t, db.Create(user).Error, "Не удалось создать пользователя")
}

// CreateAndLoginUser создает активного пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, cityID uint) (string, *models.User) {
	t.Helper()

	email := fmt.Sprintf("user_%d@test.com", time.Now().UnixNano())
	password := "password123"

	user := &models.User{
		Email:  email,
		Name:   "Анна",
		CityID: cityID,
		Status: models.StatusActive,
	}
	CreateUser(t, ts.DB, user, password)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/token/", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+body)

	var loginResponse struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &loginResponse))
	require.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token, user
}
