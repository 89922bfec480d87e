package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classroom/schoolapi/internal/app/models"
	"github.com/classroom/schoolapi/internal/app/models/dto"
	"github.com/classroom/schoolapi/internal/app/projection"
	"github.com/classroom/schoolapi/internal/app/services"
	"github.com/classroom/schoolapi/internal/middleware"
)

// ClassController handles class related operations
type ClassController struct {
	classService services.ClassService
	logger       zerolog.Logger
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService, logger zerolog.Logger) *ClassController {
	return &ClassController{
		classService: classService,
		logger:       logger,
	}
}

func classResponse(class *models.Class) map[string]any {
	return projection.ClassFields.Project(class, nil, nil)
}

// Create adds a new class
// @Summary Create a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse "Created class"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /class/ [post]
func (c *ClassController) Create(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.Create(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create class")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(classResponse(class)))
}

// List returns all classes
// @Summary List classes
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse "Classes"
// @Router /class/ [get]
func (c *ClassController) List(ctx *gin.Context) {
	classes, err := c.classService.GetAll(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list classes")
		middleware.HandleAPIError(ctx, err)
		return
	}

	payload := make([]map[string]any, 0, len(classes))
	for _, class := range classes {
		payload = append(payload, classResponse(class))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payload))
}

// Retrieve returns a single class by ID
// @Summary Get a class
// @Tags classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse "Class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /class/{id} [get]
func (c *ClassController) Retrieve(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid class ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classResponse(class)))
}

// Update replaces a class
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Param request body dto.UpdateClassRequest true "Class information"
// @Success 200 {object} dto.APIResponse "Updated class"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /class/{id} [put]
func (c *ClassController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid class ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	class, err := c.classService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("classID", id).Msg("Failed to update class")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classResponse(class)))
}

// Delete removes a class and, through the database cascade, its students
// @Summary Delete a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID"
// @Success 204 "No content"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /class/{id} [delete]
func (c *ClassController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid class ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.classService.Delete(ctx.Request.Context(), id); err != nil {
		c.logger.Error().Err(err).Int64("classID", id).Msg("Failed to delete class")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
