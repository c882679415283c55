package handlers

import (
	"net/http"

	"ume_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CityHandler struct {
	*BaseHandler
	cityService services.CityService
}

func NewCityHandler(base *BaseHandler, cityService services.CityService) *CityHandler {
	return &CityHandler{
		BaseHandler: base,
		cityService: cityService,
	}
}

// RegisterRoutes регистрирует публичный справочник городов
func (h *CityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cities := rg.Group("/cities")
	{
		cities.GET("/", h.List)
		cities.GET("/search", h.Search)
		cities.GET("/search/", h.Search)
	}
}

func (h *CityHandler) List(c *gin.Context) {
	resp, err := h.cityService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search ищет города по префиксу из query-параметра q
func (h *CityHandler) Search(c *gin.Context) {
	resp, err := h.cityService.Search(h.GetDB(c), c.Query("q"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
