package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutime/timetable-api/internal/service"
	"github.com/edutime/timetable-api/pkg/response"
)

// ReferenceHandler serves the immutable day and time-slot catalogs.
type ReferenceHandler struct {
	service *service.ReferenceService
}

// NewReferenceHandler creates a new handler.
func NewReferenceHandler(svc *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: svc}
}

// Days godoc
// @Summary List teaching days
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /days [get]
func (h *ReferenceHandler) Days(c *gin.Context) {
	days, err := h.service.Days(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days, nil)
}

// TimeSlots godoc
// @Summary List time slots of a shift
// @Tags Reference
// @Produce json
// @Param shift query int false "Shift (1 or 2, default 1)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /time-slots [get]
func (h *ReferenceHandler) TimeSlots(c *gin.Context) {
	slots, err := h.service.TimeSlots(c.Request.Context(), intQuery(c, "shift", 1))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}
