package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classroom/schoolapi/internal/app/models"
	"github.com/classroom/schoolapi/internal/app/models/dto"
	"github.com/classroom/schoolapi/internal/app/projection"
	"github.com/classroom/schoolapi/internal/app/services"
	"github.com/classroom/schoolapi/internal/middleware"
	"github.com/classroom/schoolapi/internal/pkg/apperrors"
)

// UserController handles user related operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// userResponse serializes a user through the field table so that
// credential and account-status columns never reach the wire.
func userResponse(user *models.User) map[string]any {
	return projection.UserFields.Project(user, nil, nil)
}

// Create handles user registration
// @Summary Create a user
// @Description Creates a new user account. Accounts start inactive until activated by an administrator.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse "Created user"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /user/ [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid user create payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.Create(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(userResponse(user)))
}

// List returns all users
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Users"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /user/ [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.userService.GetAll(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list users")
		middleware.HandleAPIError(ctx, err)
		return
	}

	payload := make([]map[string]any, 0, len(users))
	for _, user := range users {
		payload = append(payload, userResponse(user))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payload))
}

// Retrieve returns a single user by ID
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /user/{id} [get]
func (c *UserController) Retrieve(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(userResponse(user)))
}

// Update replaces a user
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "User information"
// @Success 200 {object} dto.APIResponse "Updated user"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /user/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", id).Msg("Failed to update user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(userResponse(user)))
}

// PartialUpdate changes a subset of user fields
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.PartialUpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse "Updated user"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /user/{id} [patch]
func (c *UserController) PartialUpdate(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.PartialUpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.PartialUpdate(ctx.Request.Context(), id, &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", id).Msg("Failed to partially update user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(userResponse(user)))
}

// Delete removes a user
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "No content"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /user/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		c.logger.Error().Err(err).Int64("userID", id).Msg("Failed to delete user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ChangePassword changes the authenticated user's password
// @Summary Change password
// @Description Verifies the caller's current password and replaces it with a new one.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Old and new passwords"
// @Success 200 {object} dto.SuccessResponse "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Wrong password or invalid new password"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /user/change_password/ [post]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	userIDInt, ok := userID.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.userService.ChangePassword(ctx.Request.Context(), userIDInt, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, apperrors.ErrWrongPassword) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Wrong password")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		c.logger.Error().Err(err).Int64("userID", userIDInt).Msg("Failed to change password")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password changed"})
}
