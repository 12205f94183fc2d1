package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/edutime/timetable-api/internal/models"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
)

type scheduleWriteRepository interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	LockSlot(ctx context.Context, tx *sqlx.Tx, dayID, timeSlotID, shift int) error
	FindOverlapping(ctx context.Context, tx *sqlx.Tx, dayID, timeSlotID, shift int, weekType models.WeekType, startDate, endDate time.Time) ([]models.Schedule, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, schedule *models.Schedule) error
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
}

type entityResolver interface {
	Resolve(ctx context.Context, groupName, subjectName, subjectType, teacherName string) (*ResolvedEntities, error)
}

type auditoriumExistsRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type scheduleReferenceRepository interface {
	DayExists(ctx context.Context, id int) (bool, error)
	FindTimeSlot(ctx context.Context, id int) (*models.TimeSlot, error)
}

type scheduleCacheInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// CreateScheduleRequest describes the payload for creating a schedule. Group,
// subject and teacher arrive as names and are resolved to rows, created on
// first mention. The auditorium arrives as an ID.
type CreateScheduleRequest struct {
	GroupName    string  `json:"group_name" validate:"required"`
	SubjectName  string  `json:"subject_name" validate:"required"`
	SubjectType  string  `json:"subject_type" validate:"required"`
	TeacherName  string  `json:"teacher_name" validate:"required"`
	AuditoriumID string  `json:"auditorium_id" validate:"required"`
	DayID        int     `json:"day_id" validate:"required,min=1,max=6"`
	TimeSlotID   int     `json:"time_slot_id" validate:"required"`
	Shift        int     `json:"shift" validate:"required,oneof=1 2"`
	WeekType     string  `json:"week_type" validate:"required,oneof=odd even both"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Description  *string `json:"description,omitempty"`
}

// CreateScheduleResult lists the IDs of the persisted rows, one per week-type
// variant.
type CreateScheduleResult struct {
	IDs []string `json:"ids"`
}

// ScheduleService owns the schedule write path: resolve names, check the
// three-dimension conflict rule, persist. A "both" week type expands into one
// odd and one even row committed together or not at all.
type ScheduleService struct {
	repo        scheduleWriteRepository
	resolver    entityResolver
	auditoriums auditoriumExistsRepository
	reference   scheduleReferenceRepository
	cache       scheduleCacheInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo scheduleWriteRepository, resolver entityResolver, auditoriums auditoriumExistsRepository, reference scheduleReferenceRepository, cache scheduleCacheInvalidator, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		repo:        repo,
		resolver:    resolver,
		auditoriums: auditoriums,
		reference:   reference,
		cache:       cache,
		validator:   validate,
		logger:      logger,
	}
}

// Create validates and persists a schedule request. Entity resolution runs
// before the write transaction; newly created teachers, groups and subjects
// survive even when the schedule itself is later rejected.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*CreateScheduleResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	weekType := models.WeekType(req.WeekType)
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid start date")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid end date")
	}
	if !endDate.After(startDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must be after start date")
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, req.GroupName, req.SubjectName, req.SubjectType, req.TeacherName)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Schedule, 0, 2)
	for _, variant := range weekType.Variants() {
		candidates = append(candidates, models.Schedule{
			GroupID:      resolved.GroupID,
			SubjectID:    resolved.SubjectID,
			TeacherID:    resolved.TeacherID,
			AuditoriumID: req.AuditoriumID,
			DayID:        req.DayID,
			TimeSlotID:   req.TimeSlotID,
			Shift:        req.Shift,
			WeekType:     variant,
			StartDate:    startDate,
			EndDate:      endDate,
			Description:  req.Description,
		})
	}

	// One transaction for the whole expansion: the slot lock serializes
	// concurrent check-then-insert sequences on the same weekly key, and a
	// conflict on the second variant rolls back the first.
	ids := make([]string, 0, len(candidates))
	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.LockSlot(ctx, tx, req.DayID, req.TimeSlotID, req.Shift); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock schedule slot")
		}
		for i := range candidates {
			if err := s.ensureNoConflict(ctx, tx, &candidates[i]); err != nil {
				return err
			}
			if err := s.repo.CreateTx(ctx, tx, &candidates[i]); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
			}
			ids = append(ids, candidates[i].ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}

	s.logger.Info("schedule created",
		zap.Strings("ids", ids),
		zap.Int("day_id", req.DayID),
		zap.Int("time_slot_id", req.TimeSlotID),
		zap.Int("shift", req.Shift),
		zap.String("week_type", req.WeekType))
	return &CreateScheduleResult{IDs: ids}, nil
}

// Get loads one schedule by ID.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return schedule, nil
}

// checkReferences verifies that caller-supplied foreign keys point at real
// rows and that the slot belongs to the requested shift.
func (s *ScheduleService) checkReferences(ctx context.Context, req CreateScheduleRequest) error {
	exists, err := s.auditoriums.Exists(ctx, req.AuditoriumID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check auditorium")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "auditorium not found")
	}

	dayOK, err := s.reference.DayExists(ctx, req.DayID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check day")
	}
	if !dayOK {
		return appErrors.Clone(appErrors.ErrNotFound, "day not found")
	}

	slot, err := s.reference.FindTimeSlot(ctx, req.TimeSlotID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check time slot")
	}
	if slot.Shift != req.Shift {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("time slot %d belongs to shift %d", req.TimeSlotID, slot.Shift))
	}

	return nil
}

// ensureNoConflict applies the three-dimension rule against every committed
// schedule sharing the slot key with an overlapping date range. The first
// hit wins, checked in auditorium, teacher, group order.
func (s *ScheduleService) ensureNoConflict(ctx context.Context, tx *sqlx.Tx, candidate *models.Schedule) error {
	existing, err := s.repo.FindOverlapping(ctx, tx, candidate.DayID, candidate.TimeSlotID, candidate.Shift, candidate.WeekType, candidate.StartDate, candidate.EndDate)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check schedule conflicts")
	}

	// Dimension order matters: an auditorium clash anywhere in the result
	// set outranks a teacher clash, which outranks a group clash.
	for _, item := range existing {
		if item.AuditoriumID == candidate.AuditoriumID {
			return wrapConflict(models.ConflictAuditorium, "auditorium already booked for this slot", item)
		}
	}
	for _, item := range existing {
		if item.TeacherID == candidate.TeacherID {
			return wrapConflict(models.ConflictTeacher, "teacher already scheduled for this slot", item)
		}
	}
	for _, item := range existing {
		if item.GroupID == candidate.GroupID {
			return wrapConflict(models.ConflictGroup, "group already scheduled for this slot", item)
		}
	}
	return nil
}

func wrapConflict(dimension, message string, existing models.Schedule) error {
	conflict := models.ScheduleConflict{
		ScheduleID:   existing.ID,
		Dimension:    dimension,
		DayID:        existing.DayID,
		TimeSlotID:   existing.TimeSlotID,
		Shift:        existing.Shift,
		WeekType:     existing.WeekType,
		AuditoriumID: existing.AuditoriumID,
		TeacherID:    existing.TeacherID,
		GroupID:      existing.GroupID,
	}
	domainErr := &models.ScheduleConflictError{Dimension: dimension, Message: message, Conflict: conflict}
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, fmt.Sprintf("schedule conflict: %s", message))
}
