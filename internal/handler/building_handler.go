package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edutime/timetable-api/internal/models"
	"github.com/edutime/timetable-api/internal/service"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
	"github.com/edutime/timetable-api/pkg/response"
)

// BuildingHandler wires HTTP endpoints to the building service.
type BuildingHandler struct {
	service *service.BuildingService
}

// NewBuildingHandler creates a new handler.
func NewBuildingHandler(svc *service.BuildingService) *BuildingHandler {
	return &BuildingHandler{service: svc}
}

// List godoc
// @Summary List buildings
// @Tags Buildings
// @Produce json
// @Param name query string false "Filter by name fragment"
// @Param address query string false "Filter by address fragment"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /buildings [get]
func (h *BuildingHandler) List(c *gin.Context) {
	filter := models.BuildingFilter{
		Name:     c.Query("name"),
		Address:  c.Query("address"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 20),
	}

	buildings, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, buildings, pagination)
}

// Get godoc
// @Summary Get building
// @Tags Buildings
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /buildings/{id} [get]
func (h *BuildingHandler) Get(c *gin.Context) {
	building, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, building, nil)
}

// Create godoc
// @Summary Create building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param payload body service.CreateBuildingRequest true "Building payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /buildings [post]
func (h *BuildingHandler) Create(c *gin.Context) {
	var req service.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid building payload"))
		return
	}

	building, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, building)
}

// Update godoc
// @Summary Update building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Param payload body service.UpdateBuildingRequest true "Building payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /buildings/{id} [put]
func (h *BuildingHandler) Update(c *gin.Context) {
	var req service.UpdateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid building payload"))
		return
	}

	building, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, building, nil)
}

// Delete godoc
// @Summary Delete building
// @Tags Buildings
// @Param id path string true "Building ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /buildings/{id} [delete]
func (h *BuildingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
