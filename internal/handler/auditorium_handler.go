package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutime/timetable-api/internal/models"
	"github.com/edutime/timetable-api/internal/service"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
	"github.com/edutime/timetable-api/pkg/response"
)

// AuditoriumHandler wires HTTP endpoints to the auditorium service.
type AuditoriumHandler struct {
	service *service.AuditoriumService
}

// NewAuditoriumHandler creates a new handler.
func NewAuditoriumHandler(svc *service.AuditoriumService) *AuditoriumHandler {
	return &AuditoriumHandler{service: svc}
}

// List godoc
// @Summary List auditoriums of a building
// @Tags Auditoriums
// @Produce json
// @Param id path string true "Building ID"
// @Param name query string false "Filter by name fragment"
// @Param department query string false "Filter by department fragment"
// @Param min_capacity query int false "Minimum capacity"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /buildings/{id}/auditoriums [get]
func (h *AuditoriumHandler) List(c *gin.Context) {
	filter := models.AuditoriumFilter{
		Name:        c.Query("name"),
		Department:  c.Query("department"),
		MinCapacity: intQuery(c, "min_capacity", 0),
		Page:        intQuery(c, "page", 1),
		PageSize:    intQuery(c, "page_size", 20),
	}

	auditoriums, pagination, err := h.service.List(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, auditoriums, pagination)
}

// Get godoc
// @Summary Get auditorium
// @Tags Auditoriums
// @Produce json
// @Param id path string true "Auditorium ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auditoriums/{id} [get]
func (h *AuditoriumHandler) Get(c *gin.Context) {
	auditorium, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, auditorium, nil)
}

// Create godoc
// @Summary Create auditorium
// @Tags Auditoriums
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Param payload body service.CreateAuditoriumRequest true "Auditorium payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /buildings/{id}/auditoriums [post]
func (h *AuditoriumHandler) Create(c *gin.Context) {
	var req service.CreateAuditoriumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid auditorium payload"))
		return
	}

	auditorium, err := h.service.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, auditorium)
}

// Update godoc
// @Summary Update auditorium
// @Tags Auditoriums
// @Accept json
// @Produce json
// @Param id path string true "Auditorium ID"
// @Param payload body service.UpdateAuditoriumRequest true "Auditorium payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /auditoriums/{id} [put]
func (h *AuditoriumHandler) Update(c *gin.Context) {
	var req service.UpdateAuditoriumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid auditorium payload"))
		return
	}

	auditorium, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, auditorium, nil)
}

// Delete godoc
// @Summary Delete auditorium
// @Tags Auditoriums
// @Param id path string true "Auditorium ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /auditoriums/{id} [delete]
func (h *AuditoriumHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
