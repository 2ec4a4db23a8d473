package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fitsync/internal/model"
	"fitsync/internal/service"
)

// ClassHandler handles class catalogue endpoints.
type ClassHandler struct {
	svc service.ClassService
}

// NewClassHandler creates a new class handler.
func NewClassHandler(svc service.ClassService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// ClassRequest represents a new class.
type ClassRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Trainers    []string `json:"trainers"`
}

// List godoc
// @Summary List classes
// @Tags classes
// @Produce json
// @Success 200 {array} model.FitnessClass
// @Router /classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, classes)
}

// Create godoc
// @Summary Add a class
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ClassRequest true "Class"
// @Success 201 {object} model.FitnessClass
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	var req ClassRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	class, err := h.svc.Create(c.Request().Context(), &model.FitnessClass{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Trainers:    req.Trainers,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, class)
}
