package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/classroom/schoolapi/internal/app/models"
	"github.com/classroom/schoolapi/internal/app/models/dto"
	"github.com/classroom/schoolapi/internal/app/repositories"
)

// ClassService defines the interface for class operations
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error)
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetAll(ctx context.Context) ([]*models.Class, error)
	Update(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*models.Class, error)
	Delete(ctx context.Context, id int64) error
}

type classServiceImpl struct {
	classRepo repositories.IClassRepository
	logger    zerolog.Logger
}

// NewClassService creates a new ClassService
func NewClassService(classRepo repositories.IClassRepository, logger zerolog.Logger) ClassService {
	return &classServiceImpl{
		classRepo: classRepo,
		logger:    logger,
	}
}

func (s *classServiceImpl) Create(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error) {
	class := &models.Class{
		Name: req.Name,
	}
	class.Active = true
	if req.Active != nil {
		class.Active = *req.Active
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("classID", class.ID).Str("name", class.Name).Msg("Class created")

	return class, nil
}

func (s *classServiceImpl) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

func (s *classServiceImpl) GetAll(ctx context.Context) ([]*models.Class, error) {
	return s.classRepo.GetAll(ctx)
}

func (s *classServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	class.Name = req.Name
	if req.Active != nil {
		class.Active = *req.Active
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

// Delete removes a class. Enrolled students are removed with it by the
// database cascade, so the count is logged before the delete runs.
func (s *classServiceImpl) Delete(ctx context.Context, id int64) error {
	count, err := s.classRepo.CountUsers(ctx, id)
	if err == nil && count > 0 {
		s.logger.Warn().Int64("classID", id).Int64("enrolledUsers", count).Msg("Deleting class removes its enrolled users")
	}

	return s.classRepo.Delete(ctx, id)
}
