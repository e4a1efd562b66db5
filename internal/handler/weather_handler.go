package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enuri14/EcoTour-Enuri/internal/dto"
	"github.com/enuri14/EcoTour-Enuri/internal/service"
	"github.com/enuri14/EcoTour-Enuri/pkg/response"
)

// WeatherHandler handles destination forecast HTTP requests
type WeatherHandler struct {
	weatherService service.WeatherService
}

// NewWeatherHandler creates a new WeatherHandler
func NewWeatherHandler(weatherService service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// Get handles GET /weather?lat=&lon=
func (h *WeatherHandler) Get(c *gin.Context) {
	var query dto.WeatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "lat and lon query parameters are required")
		return
	}

	forecast, err := h.weatherService.GetCurrentWeather(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Weather service unavailable", "")
		return
	}

	response.Success(c, forecast)
}
