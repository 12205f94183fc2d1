package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edutime/timetable-api/internal/middleware"
	"github.com/edutime/timetable-api/internal/models"
	"github.com/edutime/timetable-api/internal/service"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
	"github.com/edutime/timetable-api/pkg/response"
)

// ScheduleHandler wires HTTP endpoints to the schedule and timetable services.
type ScheduleHandler struct {
	schedules *service.ScheduleService
	timetable *service.TimetableService
	exports   *service.ExportService
	metrics   *service.MetricsService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(schedules *service.ScheduleService, timetable *service.TimetableService, exports *service.ExportService, metrics *service.MetricsService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, timetable: timetable, exports: exports, metrics: metrics}
}

// Create godoc
// @Summary Create schedule
// @Description Assign a recurring lesson to a weekly slot; week_type "both" persists an odd and an even row together
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}

	result, err := h.schedules.Create(c.Request.Context(), req)
	if err != nil {
		var conflictErr *models.ScheduleConflictError
		if errors.As(err, &conflictErr) {
			h.metrics.RecordConflict(conflictErr.Dimension)
		}
		response.Error(c, err)
		return
	}

	h.metrics.RecordScheduleCreated(len(result.IDs))
	response.Created(c, result)
}

// Get godoc
// @Summary Get schedule
// @Description Load one schedule row by ID
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.schedules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Weekly godoc
// @Summary Weekly building grid
// @Description Dense day-by-slot grid for a building, shift and week parity over a date window
// @Tags Schedules
// @Produce json
// @Param building_id query string true "Building ID"
// @Param shift query int true "Shift (1 or 2)"
// @Param week_type query string true "Week parity (odd or even)"
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/weekly [get]
func (h *ScheduleHandler) Weekly(c *gin.Context) {
	req, err := weeklyRequestFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	grid, err := h.timetable.WeeklySchedule(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Week godoc
// @Summary Auditorium week view
// @Description Auditorium-by-day grid for the calendar week containing the reference date; a logged-in teacher's own lessons are flagged
// @Tags Schedules
// @Produce json
// @Param building_id query string true "Building ID"
// @Param shift query int true "Shift (1 or 2)"
// @Param date query string false "Reference date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/week [get]
func (h *ScheduleHandler) Week(c *gin.Context) {
	shift, err := strconv.Atoi(c.DefaultQuery("shift", "1"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid shift"))
		return
	}

	req := service.WeekViewRequest{
		BuildingID:    c.Query("building_id"),
		Shift:         shift,
		ReferenceDate: c.Query("date"),
	}
	if claims := middleware.CurrentClaims(c); claims != nil && claims.TeacherID != nil {
		req.ViewerTeacherID = *claims.TeacherID
	}

	view, err := h.timetable.WeekView(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// ExportCSV godoc
// @Summary Export weekly grid as CSV
// @Tags Schedules
// @Produce text/csv
// @Param building_id query string true "Building ID"
// @Param shift query int true "Shift (1 or 2)"
// @Param week_type query string true "Week parity (odd or even)"
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/weekly/export/csv [get]
func (h *ScheduleHandler) ExportCSV(c *gin.Context) {
	req, err := weeklyRequestFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload, err := h.exports.WeeklyCSV(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timetable.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// ExportPDF godoc
// @Summary Export weekly grid as PDF
// @Tags Schedules
// @Produce application/pdf
// @Param building_id query string true "Building ID"
// @Param shift query int true "Shift (1 or 2)"
// @Param week_type query string true "Week parity (odd or even)"
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Success 200 {string} string "PDF payload"
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/weekly/export/pdf [get]
func (h *ScheduleHandler) ExportPDF(c *gin.Context) {
	req, err := weeklyRequestFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload, err := h.exports.WeeklyPDF(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timetable.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}

func weeklyRequestFromQuery(c *gin.Context) (*service.WeeklyScheduleRequest, error) {
	shift, err := strconv.Atoi(c.DefaultQuery("shift", "1"))
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid shift")
	}
	return &service.WeeklyScheduleRequest{
		BuildingID: c.Query("building_id"),
		Shift:      shift,
		WeekType:   c.Query("week_type"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
	}, nil
}
