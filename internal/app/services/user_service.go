package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/classroom/schoolapi/internal/app/models"
	"github.com/classroom/schoolapi/internal/app/models/dto"
	"github.com/classroom/schoolapi/internal/app/repositories"
	"github.com/classroom/schoolapi/internal/pkg/apperrors"
	"github.com/classroom/schoolapi/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService defines the interface for user operations
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error)
	PartialUpdate(ctx context.Context, id int64, req *dto.PartialUpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// validateEmail validates an email address
func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrInvalidEmail)
	}

	if !emailRegex.MatchString(email) {
		return apperrors.ErrInvalidEmail
	}

	return nil
}

// validatePassword checks if password meets requirements
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// parseDOB converts the wire date (YYYY-MM-DD) to a time value
func parseDOB(dob *string) (*time.Time, error) {
	if dob == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *dob)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date of birth", apperrors.ErrValidationFailed)
	}
	return &t, nil
}

// Create registers a new user account. The account starts inactive.
func (s *userServiceImpl) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return nil, err
	}

	role := models.RoleStudent
	if req.Role != nil {
		role = models.Role(*req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: invalid role", apperrors.ErrValidationFailed)
		}
	}

	user := &models.User{
		Email:          req.Email,
		Password:       hashedPassword,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PhoneNumber:    req.PhoneNumber,
		DOB:            dob,
		ProfileImage:   req.ProfileImage,
		Role:           role,
		IsActive:       false,
		StudentClassID: req.StudentClassID,
	}
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		user.Gender = &g
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User created")

	return user, nil
}

// GetByID retrieves a user by ID
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetAll retrieves all users
func (s *userServiceImpl) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// Update replaces every mutable field of a user
func (s *userServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber
	user.DOB = dob
	user.ProfileImage = req.ProfileImage
	user.StudentClassID = req.StudentClassID
	user.Gender = nil
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		user.Gender = &g
	}
	if req.Role != nil {
		user.Role = models.Role(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// PartialUpdate changes only the provided fields of a user
func (s *userServiceImpl) PartialUpdate(ctx context.Context, id int64, req *dto.PartialUpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Gender != nil {
		g := models.Gender(*req.Gender)
		user.Gender = &g
	}
	if req.DOB != nil {
		dob, err := parseDOB(req.DOB)
		if err != nil {
			return nil, err
		}
		user.DOB = dob
	}
	if req.ProfileImage != nil {
		user.ProfileImage = req.ProfileImage
	}
	if req.Role != nil {
		user.Role = models.Role(*req.Role)
	}
	if req.StudentClassID != nil {
		user.StudentClassID = req.StudentClassID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user
func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

// ChangePassword verifies the old credential and stores the new one.
// A wrong old password leaves the stored credential untouched.
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, oldPassword) {
		return apperrors.ErrWrongPassword
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("error persisting new password: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")

	return nil
}
