package handlers

import (
	"net/http"
	"strconv"

	"ume_backend/internal/services"
	"ume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

// RegisterRoutes регистрирует маршруты верификации.
// Маршруты публичные: на этом этапе у пользователя еще нет пароля.
func (h *VerificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	verification := rg.Group("/verification")
	{
		verification.POST("/", h.Submit)
		verification.GET("/status/:id", h.Status)
	}
}

// Submit принимает аватар и верификационное фото одной формой
func (h *VerificationHandler) Submit(c *gin.Context) {
	userIDStr := c.PostForm("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil || userID == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Некорректный user_id"))
		return
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Файл avatar не передан"))
		return
	}
	verificationPhoto, err := c.FormFile("verification_photo")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Файл verification_photo не передан"))
		return
	}

	resp, err := h.verificationService.Submit(c.Request.Context(), h.GetDB(c), uint(userID), avatar, verificationPhoto)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Status отдает текущий статус анкеты для поллинга клиентом
func (h *VerificationHandler) Status(c *gin.Context) {
	userID, err := ParseParamUint(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	resp, err := h.verificationService.Status(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
