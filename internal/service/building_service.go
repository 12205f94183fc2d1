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

type buildingRepository interface {
	List(ctx context.Context, filter models.BuildingFilter) ([]models.Building, int, error)
	FindByID(ctx context.Context, id string) (*models.Building, error)
	Create(ctx context.Context, building *models.Building) error
	Update(ctx context.Context, building *models.Building) error
	Delete(ctx context.Context, id string) error
}

// CreateBuildingRequest describes payload for creating a building.
type CreateBuildingRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

// UpdateBuildingRequest updates an existing building.
type UpdateBuildingRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

// BuildingService manages campus buildings.
type BuildingService struct {
	repo      buildingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBuildingService instantiates BuildingService.
func NewBuildingService(repo buildingRepository, validate *validator.Validate, logger *zap.Logger) *BuildingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildingService{repo: repo, validator: validate, logger: logger}
}

// List returns buildings with pagination metadata.
func (s *BuildingService) List(ctx context.Context, filter models.BuildingFilter) ([]models.Building, *models.Pagination, error) {
	buildings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list buildings")
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
	return buildings, pagination, nil
}

// Get loads one building.
func (s *BuildingService) Get(ctx context.Context, id string) (*models.Building, error) {
	building, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}
	return building, nil
}

// Create registers a new building.
func (s *BuildingService) Create(ctx context.Context, req CreateBuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid building payload")
	}

	building := models.Building{Name: req.Name, Address: req.Address}
	if err := s.repo.Create(ctx, &building); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create building")
	}
	return &building, nil
}

// Update modifies a building.
func (s *BuildingService) Update(ctx context.Context, id string, req UpdateBuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid building payload")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Address = req.Address
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update building")
	}
	return existing, nil
}

// Delete removes a building and, through cascade, its auditoriums.
func (s *BuildingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete building")
	}
	return nil
}
