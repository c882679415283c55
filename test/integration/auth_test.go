package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"ume_backend/internal/models"
	"ume_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

func registrationBody(email string, cityID uint) map[string]interface{} {
	return map[string]interface{}{
		"email":      email,
		"name":       "Анна",
		"birth_date": "1995-05-15",
		"height":     170,
		"body_type":  "slim",
		"gender":     "female",
		"city_id":    cityID,
	}
}

// TestRegistrationFlow - регистрация создает pending-анкету без пароля,
// логин до верификации невозможен
func TestRegistrationFlow(t *testing.T) {
	ts := GetTestServer(t)
	email := uniqueEmail("reg")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/registration/", "",
		registrationBody(email, testCity.ID))
	assert.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, "user_id")

	var user models.User
	require.NoError(t, ts.DB.Where("email = ?", email).First(&user).Error)
	assert.Equal(t, models.StatusPending, user.Status)
	assert.Nil(t, user.PasswordHash)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/token/", "", map[string]interface{}{
		"email":    email,
		"password": "any-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}

func TestRegistrationDuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	email := uniqueEmail("dup")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/registration/", "",
		registrationBody(email, testCity.ID))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/registration/", "",
		registrationBody(email, testCity.ID))
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	assert.Contains(t, body, "CONFLICT")
}

func TestRegistrationValidation(t *testing.T) {
	ts := GetTestServer(t)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"bad email", func(b map[string]interface{}) { b["email"] = "not-an-email" }},
		{"underage", func(b map[string]interface{}) { b["birth_date"] = time.Now().AddDate(-17, 0, 0).Format("2006-01-02") }},
		{"bad body type", func(b map[string]interface{}) { b["body_type"] = "unknown" }},
		{"name with digits", func(b map[string]interface{}) { b["name"] = "Анна123" }},
		{"height out of range", func(b map[string]interface{}) { b["height"] = 300 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := registrationBody(uniqueEmail("val"), testCity.ID)
			tc.mutate(body)

			res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/registration/", "", body)
			assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, resBody)
			assert.Contains(t, resBody, "VALIDATION_ERROR")
		})
	}
}

func TestLoginAndAuthenticatedAccess(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginUser(t, ts, testCity.ID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/users/me/", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, user.Email)

	// Без токена и с мусорным токеном доступ закрыт
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me/", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := GetTestServer(t)

	_, user := helpers.CreateAndLoginUser(t, ts, testCity.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/token/", "", map[string]interface{}{
		"email":    user.Email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}

func TestChangePassword(t *testing.T) {
	ts := GetTestServer(t)

	_, user := helpers.CreateAndLoginUser(t, ts, testCity.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users/change_password/", "", map[string]interface{}{
		"email":            user.Email,
		"old_password":     "password123",
		"new_password":     "fresh-password",
		"confirm_password": "fresh-password",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	// Старый пароль больше не работает, новый работает
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/token/", "", map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/token/", "", map[string]interface{}{
		"email":    user.Email,
		"password": "fresh-password",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestChangePasswordMismatchedConfirmation(t *testing.T) {
	ts := GetTestServer(t)

	_, user := helpers.CreateAndLoginUser(t, ts, testCity.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users/change_password/", "", map[string]interface{}{
		"email":            user.Email,
		"old_password":     "password123",
		"new_password":     "fresh-password",
		"confirm_password": "different-password",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, body)
}

// TestResetPassword - сброс отзывает активные сессии,
// неизвестный email наружу неотличим от известного
func TestResetPassword(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginUser(t, ts, testCity.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/users/reset_password/", "", map[string]interface{}{
		"email": user.Email,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/users/reset_password/", "", map[string]interface{}{
		"email": uniqueEmail("ghost"),
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}
