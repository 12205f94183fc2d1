package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edutime/timetable-api/internal/models"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
)

type timetableScheduleRepository interface {
	ListForBuilding(ctx context.Context, buildingID string, shift int, weekType models.WeekType, startDate, endDate time.Time) ([]models.BuildingLessonRow, error)
	ListForWeek(ctx context.Context, buildingID string, shift int, weekType models.WeekType, monday, sunday time.Time) ([]models.WeekLessonRow, error)
}

type timetableAuditoriumRepository interface {
	ListAllByBuilding(ctx context.Context, buildingID string) ([]models.Auditorium, error)
}

type timetableBuildingRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type viewCache interface {
	Enabled() bool
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
}

// WeeklyScheduleRequest selects the building grid projection.
type WeeklyScheduleRequest struct {
	BuildingID string `validate:"required"`
	Shift      int    `validate:"required,oneof=1 2"`
	WeekType   string `validate:"required,oneof=odd even"`
	StartDate  string `validate:"required,datetime=2006-01-02"`
	EndDate    string `validate:"required,datetime=2006-01-02"`
}

// WeekViewRequest selects the auditorium week view. ReferenceDate defaults
// to today; ViewerTeacherID marks the viewer's own lessons when set.
type WeekViewRequest struct {
	BuildingID      string `validate:"required"`
	Shift           int    `validate:"required,oneof=1 2"`
	ReferenceDate   string `validate:"omitempty,datetime=2006-01-02"`
	ViewerTeacherID string
}

// TimetableService renders the two read-side projections: the day-by-slot
// building grid and the auditorium-by-day week view.
type TimetableService struct {
	schedules   timetableScheduleRepository
	auditoriums timetableAuditoriumRepository
	buildings   timetableBuildingRepository
	cache       viewCache
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewTimetableService instantiates TimetableService.
func NewTimetableService(schedules timetableScheduleRepository, auditoriums timetableAuditoriumRepository, buildings timetableBuildingRepository, cache viewCache, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		schedules:   schedules,
		auditoriums: auditoriums,
		buildings:   buildings,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// WeeklySchedule builds the dense day-by-slot grid for a building, shift and
// parity over a date window. Every valid day/slot cell is present; free
// slots are nil.
func (s *TimetableService) WeeklySchedule(ctx context.Context, req WeeklyScheduleRequest) (models.WeeklyGrid, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid weekly schedule query")
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	if endDate.Before(startDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must not be before start date")
	}

	if err := s.checkBuilding(ctx, req.BuildingID); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("timetable:grid:%s:%d:%s:%s:%s", req.BuildingID, req.Shift, req.WeekType, req.StartDate, req.EndDate)
	if s.cache != nil && s.cache.Enabled() {
		var cached models.WeeklyGrid
		if s.cache.Get(ctx, cacheKey, &cached) {
			return cached, nil
		}
	}

	rows, err := s.schedules.ListForBuilding(ctx, req.BuildingID, req.Shift, models.WeekType(req.WeekType), startDate, endDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly schedule")
	}

	maxSlot := models.LessonsPerShift(req.Shift)
	grid := make(models.WeeklyGrid, len(models.DayNames))
	for _, day := range models.DayNames {
		cells := make(map[int]*models.LessonSummary, maxSlot)
		for n := 1; n <= maxSlot; n++ {
			cells[n] = nil
		}
		grid[day] = cells
	}

	for _, row := range rows {
		if row.DayID < 1 || row.DayID > len(models.DayNames) || row.LessonNumber < 1 || row.LessonNumber > maxSlot {
			continue
		}
		grid[models.DayNames[row.DayID-1]][row.LessonNumber] = &models.LessonSummary{
			Subject:     row.Subject,
			SubjectType: row.SubjectType,
			Teacher:     row.Teacher,
			Group:       row.Group,
			Auditorium:  row.Auditorium,
			StartDate:   row.StartDate.Format("2006-01-02"),
			EndDate:     row.EndDate.Format("2006-01-02"),
			Description: row.Description,
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, grid)
	}
	return grid, nil
}

// WeekView builds the auditorium-by-day grid for the calendar week that
// contains the reference date. Every auditorium of the building appears,
// including rooms with zero lessons; each day carries a fixed-length slot
// array with nil cells for free periods.
func (s *TimetableService) WeekView(ctx context.Context, req WeekViewRequest) (*models.WeekView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid week view query")
	}

	reference := s.now()
	if req.ReferenceDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReferenceDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid reference date")
		}
		reference = parsed
	}

	if err := s.checkBuilding(ctx, req.BuildingID); err != nil {
		return nil, err
	}

	monday, sunday := WeekWindow(reference)
	weekNumber := WeekNumber(monday)
	parity := WeekParity(monday)

	auditoriums, err := s.auditoriums.ListAllByBuilding(ctx, req.BuildingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load auditoriums")
	}

	rows, err := s.schedules.ListForWeek(ctx, req.BuildingID, req.Shift, parity, monday, sunday)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week lessons")
	}

	maxSlot := models.LessonsPerShift(req.Shift)
	lessons := make(map[string]map[string][]*models.WeekLesson, len(auditoriums))
	for _, a := range auditoriums {
		days := make(map[string][]*models.WeekLesson, len(models.DayNames))
		for _, day := range models.DayNames {
			days[day] = make([]*models.WeekLesson, maxSlot)
		}
		lessons[a.Name] = days
	}

	for _, row := range rows {
		days, ok := lessons[row.Auditorium]
		if !ok || row.DayID < 1 || row.DayID > len(models.DayNames) || row.LessonNumber < 1 || row.LessonNumber > maxSlot {
			continue
		}
		days[models.DayNames[row.DayID-1]][row.LessonNumber-1] = &models.WeekLesson{
			ScheduleID:    row.ScheduleID,
			TimeSlot:      row.LessonNumber,
			Subject:       row.Subject,
			Teacher:       row.Teacher,
			IsThisTeacher: req.ViewerTeacherID != "" && row.TeacherID == req.ViewerTeacherID,
		}
	}

	return &models.WeekView{
		BuildingID:    req.BuildingID,
		Shift:         req.Shift,
		WeekNumber:    weekNumber,
		WeekStartDate: monday.Format("2006-01-02"),
		WeekEndDate:   sunday.Format("2006-01-02"),
		WeekType:      parity,
		Lessons:       lessons,
	}, nil
}

func (s *TimetableService) checkBuilding(ctx context.Context, buildingID string) error {
	exists, err := s.buildings.Exists(ctx, buildingID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check building")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "building not found")
	}
	return nil
}
