package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/edutime/timetable-api/internal/models"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
)

type referenceCatalogRepository interface {
	ListDays(ctx context.Context) ([]models.Day, error)
	ListTimeSlots(ctx context.Context, shift int) ([]models.TimeSlot, error)
}

// ReferenceService exposes the immutable day and time-slot catalogs.
type ReferenceService struct {
	repo   referenceCatalogRepository
	logger *zap.Logger
}

// NewReferenceService instantiates ReferenceService.
func NewReferenceService(repo referenceCatalogRepository, logger *zap.Logger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{repo: repo, logger: logger}
}

// Days returns the teaching-day catalog.
func (s *ReferenceService) Days(ctx context.Context) ([]models.Day, error) {
	days, err := s.repo.ListDays(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list days")
	}
	return days, nil
}

// TimeSlots returns the lesson periods of a shift in order.
func (s *ReferenceService) TimeSlots(ctx context.Context, shift int) ([]models.TimeSlot, error) {
	if shift != 1 && shift != 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "shift must be 1 or 2")
	}
	slots, err := s.repo.ListTimeSlots(ctx, shift)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	return slots, nil
}
