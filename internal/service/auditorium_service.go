package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edutime/timetable-api/internal/models"
	appErrors "github.com/edutime/timetable-api/pkg/errors"
)

type auditoriumRepository interface {
	ListByBuilding(ctx context.Context, buildingID string, filter models.AuditoriumFilter) ([]models.Auditorium, int, error)
	FindByID(ctx context.Context, id string) (*models.Auditorium, error)
	Create(ctx context.Context, auditorium *models.Auditorium) error
	Update(ctx context.Context, auditorium *models.Auditorium) error
	Delete(ctx context.Context, id string) error
}

// CreateAuditoriumRequest describes payload for creating an auditorium.
type CreateAuditoriumRequest struct {
	Name                string  `json:"name" validate:"required"`
	Capacity            int     `json:"capacity" validate:"required,gt=0"`
	Department          *string `json:"department,omitempty"`
	HasProjector        bool    `json:"has_projector"`
	HasElectronicScreen bool    `json:"has_electronic_screen"`
	Description         *string `json:"description,omitempty"`
}

// UpdateAuditoriumRequest updates an existing auditorium.
type UpdateAuditoriumRequest struct {
	Name                string  `json:"name" validate:"required"`
	Capacity            int     `json:"capacity" validate:"required,gt=0"`
	Department          *string `json:"department,omitempty"`
	HasProjector        bool    `json:"has_projector"`
	HasElectronicScreen bool    `json:"has_electronic_screen"`
	Description         *string `json:"description,omitempty"`
}

// AuditoriumService manages a building's rooms.
type AuditoriumService struct {
	repo      auditoriumRepository
	buildings timetableBuildingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuditoriumService instantiates AuditoriumService.
func NewAuditoriumService(repo auditoriumRepository, buildings timetableBuildingRepository, validate *validator.Validate, logger *zap.Logger) *AuditoriumService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditoriumService{repo: repo, buildings: buildings, validator: validate, logger: logger}
}

// List returns a building's auditoriums with pagination metadata.
func (s *AuditoriumService) List(ctx context.Context, buildingID string, filter models.AuditoriumFilter) ([]models.Auditorium, *models.Pagination, error) {
	if err := s.checkBuilding(ctx, buildingID); err != nil {
		return nil, nil, err
	}

	auditoriums, total, err := s.repo.ListByBuilding(ctx, buildingID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list auditoriums")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return auditoriums, pagination, nil
}

// Get loads one auditorium.
func (s *AuditoriumService) Get(ctx context.Context, id string) (*models.Auditorium, error) {
	auditorium, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "auditorium not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load auditorium")
	}
	return auditorium, nil
}

// Create registers a room inside a building.
func (s *AuditoriumService) Create(ctx context.Context, buildingID string, req CreateAuditoriumRequest) (*models.Auditorium, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid auditorium payload")
	}
	if err := s.checkBuilding(ctx, buildingID); err != nil {
		return nil, err
	}

	auditorium := models.Auditorium{
		Name:                req.Name,
		BuildingID:          buildingID,
		Capacity:            req.Capacity,
		Department:          req.Department,
		HasProjector:        req.HasProjector,
		HasElectronicScreen: req.HasElectronicScreen,
		Description:         req.Description,
	}
	if err := s.repo.Create(ctx, &auditorium); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create auditorium")
	}
	return &auditorium, nil
}

// Update modifies an auditorium.
func (s *AuditoriumService) Update(ctx context.Context, id string, req UpdateAuditoriumRequest) (*models.Auditorium, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid auditorium payload")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Capacity = req.Capacity
	existing.Department = req.Department
	existing.HasProjector = req.HasProjector
	existing.HasElectronicScreen = req.HasElectronicScreen
	existing.Description = req.Description

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "auditorium not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update auditorium")
	}
	return existing, nil
}

// Delete removes an auditorium.
func (s *AuditoriumService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "auditorium not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete auditorium")
	}
	return nil
}

func (s *AuditoriumService) checkBuilding(ctx context.Context, buildingID string) error {
	exists, err := s.buildings.Exists(ctx, buildingID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check building")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "building not found")
	}
	return nil
}
