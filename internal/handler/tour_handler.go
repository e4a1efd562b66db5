package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/enuri14/EcoTour-Enuri/internal/domain"
	"github.com/enuri14/EcoTour-Enuri/internal/dto"
	"github.com/enuri14/EcoTour-Enuri/internal/service"
	"github.com/enuri14/EcoTour-Enuri/pkg/response"
)

// TourHandler handles tour catalog HTTP requests
type TourHandler struct {
	tourService service.TourService
}

// NewTourHandler creates a new TourHandler
func NewTourHandler(tourService service.TourService) *TourHandler {
	return &TourHandler{tourService: tourService}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid tour ID")
		return 0, false
	}
	return id, true
}

// List handles GET /tours
func (h *TourHandler) List(c *gin.Context) {
	var filter dto.TourListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	tours, total, err := h.tourService.ListTours(c.Request.Context(), &filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	tourResponses := make([]*dto.TourResponse, len(tours))
	for i, tour := range tours {
		tourResponses[i] = dto.ToTourResponse(tour)
	}

	filter.SetDefaults()
	response.Paginated(c, tourResponses, filter.Offset/filter.Limit+1, filter.Limit, int64(total))
}

// Get handles GET /tours/:id
func (h *TourHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tour, err := h.tourService.GetTour(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTourNotFound) {
			response.NotFound(c, "Tour not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.ToTourResponse(tour))
}

// GetAvailability handles GET /availability/:id
func (h *TourHandler) GetAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	availability, err := h.tourService.GetAvailability(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTourNotFound) {
			response.NotFound(c, "Tour not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, availability)
}

// Create handles POST /tours (admin)
func (h *TourHandler) Create(c *gin.Context) {
	var req dto.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tour, availability, err := h.tourService.CreateTour(c.Request.Context(), &req)
	if err != nil {
		if domain.IsValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Created(c, &dto.TourWithAvailabilityResponse{
		Tour:         dto.ToTourResponse(tour),
		Availability: availability,
	})
}

// Update handles PUT /tours/:id (admin)
func (h *TourHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tour, availability, err := h.tourService.UpdateTour(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrTourNotFound) {
			response.NotFound(c, "Tour not found")
			return
		}
		if domain.IsValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, &dto.TourWithAvailabilityResponse{
		Tour:         dto.ToTourResponse(tour),
		Availability: availability,
	})
}

// Delete handles DELETE /tours/:id (admin)
func (h *TourHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tourService.DeleteTour(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTourNotFound) {
			response.NotFound(c, "Tour not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
