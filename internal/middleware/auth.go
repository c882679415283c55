package middleware

import (
	"strings"
	"ume_backend/internal/logger"
	"ume_backend/internal/services"
	"ume_backend/pkg/apperrors"
	"ume_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const invalidCredentialsMsg = "Не удалось проверить учетные данные"

// AuthMiddleware проверяет bearer-токен и кладет владельца в контекст.
// Причина отказа (нет заголовка, неизвестный или отозванный токен,
// удаленный владелец) наружу не раскрывается.
func AuthMiddleware(tokenService services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError(invalidCredentialsMsg))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError(invalidCredentialsMsg))
			return
		}

		db, ok := c.Get(string(contextkeys.DBContextKey))
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(nil))
			return
		}

		user, err := tokenService.Validate(db.(*gorm.DB), tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError(invalidCredentialsMsg))
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get("userID")
	if !exists {
		return 0
	}

	id, ok := userID.(uint)
	if !ok {
		return 0
	}

	return id
}
