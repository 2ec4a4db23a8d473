package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fitsync/internal/service"
)

// NewsletterHandler handles newsletter endpoints.
type NewsletterHandler struct {
	svc service.NewsletterService
}

// NewNewsletterHandler creates a new newsletter handler.
func NewNewsletterHandler(svc service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

// NewsletterRequest represents a newsletter sign-up.
type NewsletterRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Subscribe godoc
// @Summary Sign up for the newsletter
// @Tags newsletter
// @Accept json
// @Produce json
// @Param request body NewsletterRequest true "Sign-up"
// @Success 201 {object} model.NewsletterSubscriber
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /newsletter [post]
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req NewsletterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sub, err := h.svc.Subscribe(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, sub)
}

// List godoc
// @Summary List newsletter subscribers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.NewsletterSubscriber
// @Router /admin/newsletter [get]
func (h *NewsletterHandler) List(c echo.Context) error {
	subs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, subs)
}
