package handlers

import (
	"net/http"

	"ume_backend/internal/middleware"
	"ume_backend/internal/services"
	"ume_backend/internal/services/dto"
	"ume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	profileService services.ProfileService
	photoService   services.PhotoService
	tokenService   services.TokenService
}

func NewUserHandler(
	base *BaseHandler,
	profileService services.ProfileService,
	photoService services.PhotoService,
	tokenService services.TokenService,
) *UserHandler {
	return &UserHandler{
		BaseHandler:    base,
		profileService: profileService,
		photoService:   photoService,
		tokenService:   tokenService,
	}
}

// RegisterRoutes регистрирует маршруты профиля, все под bearer-токеном
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(h.tokenService))
	{
		users.GET("/me/", h.Me)
		users.POST("/edit/", h.Edit)
		users.POST("/photos/upload/", h.UploadPhotos)
	}
}

// Me возвращает профиль владельца токена
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	data, err := h.profileService.GetProfile(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": data})
}

func (h *UserHandler) Edit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EditProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.profileService.EditProfile(c.Request.Context(), h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Профиль успешно обновлен",
	})
}

// UploadPhotos догружает фотографии в галерею, пакет принимается целиком
func (h *UserHandler) UploadPhotos(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Некорректная multipart-форма"))
		return
	}

	files := form.File["photos"]
	resp, err := h.photoService.UploadProfilePhotos(c.Request.Context(), h.GetDB(c), userID, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
