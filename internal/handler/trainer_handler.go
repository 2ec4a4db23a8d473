package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/service"
)

// TrainerHandler handles trainer application endpoints.
type TrainerHandler struct {
	trainers service.TrainerService
	balance  service.BalanceService
}

// NewTrainerHandler creates a new trainer handler.
func NewTrainerHandler(trainers service.TrainerService, balance service.BalanceService) *TrainerHandler {
	return &TrainerHandler{trainers: trainers, balance: balance}
}

// ApplyRequest represents a trainer application.
type ApplyRequest struct {
	Name          string   `json:"name" validate:"required"`
	Age           int      `json:"age" validate:"omitempty,gte=16,lte=100"`
	Experience    int      `json:"experience" validate:"gte=0"`
	Image         string   `json:"image" validate:"omitempty,url"`
	Bio           string   `json:"bio"`
	Skills        []string `json:"skills"`
	AvailableDays []string `json:"available_days" validate:"required,min=1"`
	AvailableTime string   `json:"available_time"`
	Slots         []string `json:"slots"`
}

// AcceptRequest represents an admin's acceptance of an application.
type AcceptRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Name   string `json:"name"`
	Role   string `json:"role" validate:"omitempty,oneof=member trainer admin"`
	Salary string `json:"salary"`
}

// RejectRequest represents an admin's rejection of an application.
type RejectRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name"`
	Feedback string `json:"feedback"`
}

// PayoutRequest represents a trainer payout. An empty amount pays the configured default.
type PayoutRequest struct {
	Amount string `json:"amount"`
}

// SessionsResponse lists upcoming session start times.
type SessionsResponse struct {
	TrainerID string      `json:"trainer_id"`
	Sessions  []time.Time `json:"sessions"`
}

// Apply godoc
// @Summary Apply to become a trainer
// @Tags trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ApplyRequest true "Application"
// @Success 201 {object} model.TrainerApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /trainers/apply [post]
func (h *TrainerHandler) Apply(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	var req ApplyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.trainers.Apply(c.Request().Context(), &model.TrainerApplication{
		Name:          req.Name,
		Email:         claims.Email,
		Age:           req.Age,
		Experience:    req.Experience,
		Image:         req.Image,
		Bio:           req.Bio,
		Skills:        req.Skills,
		AvailableDays: req.AvailableDays,
		AvailableTime: req.AvailableTime,
		Slots:         req.Slots,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, app)
}

// ListAccepted godoc
// @Summary List accepted trainers
// @Tags trainers
// @Produce json
// @Success 200 {array} model.TrainerApplication
// @Router /trainers [get]
func (h *TrainerHandler) ListAccepted(c echo.Context) error {
	apps, err := h.trainers.ListByStatus(c.Request().Context(), model.TrainerStatusAccepted)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, apps)
}

// ListByStatus godoc
// @Summary List applications by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "requested, accepted or rejected" default(requested)
// @Success 200 {array} model.TrainerApplication
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/trainers [get]
func (h *TrainerHandler) ListByStatus(c echo.Context) error {
	status := model.TrainerStatus(c.QueryParam("status"))
	if status == "" {
		status = model.TrainerStatusRequested
	}
	apps, err := h.trainers.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, apps)
}

// Get godoc
// @Summary Get a trainer application
// @Tags trainers
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} model.TrainerApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trainers/{id} [get]
func (h *TrainerHandler) Get(c echo.Context) error {
	app, err := h.trainers.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, app)
}

// Mine godoc
// @Summary The caller's latest trainer application
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.TrainerApplication
// @Failure 404 {object} errors.ErrorResponse
// @Router /trainers/me [get]
func (h *TrainerHandler) Mine(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	app, err := h.trainers.GetByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, app)
}

// Sessions godoc
// @Summary Upcoming sessions of a trainer
// @Tags trainers
// @Produce json
// @Param id path string true "Application ID"
// @Param count query int false "Number of sessions" default(5)
// @Success 200 {object} SessionsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /trainers/{id}/sessions [get]
func (h *TrainerHandler) Sessions(c echo.Context) error {
	count, err := queryInt(c, "count", 5)
	if err != nil {
		return err
	}
	sessions, err := h.trainers.UpcomingSessions(c.Request().Context(), c.Param("id"), count)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SessionsResponse{TrainerID: c.Param("id"), Sessions: sessions})
}

// Accept godoc
// @Summary Accept a trainer application
// @Description Sets the application to accepted, promotes the applicant and emails them.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body AcceptRequest true "Decision"
// @Success 200 {object} model.TrainerApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/trainers/{id}/accept [patch]
func (h *TrainerHandler) Accept(c echo.Context) error {
	var req AcceptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.trainers.Accept(c.Request().Context(), service.AcceptInput{
		TrainerID: c.Param("id"),
		Email:     req.Email,
		Name:      req.Name,
		Role:      model.Role(req.Role),
		Salary:    req.Salary,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, app)
}

// Reject godoc
// @Summary Reject a trainer application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body RejectRequest true "Decision"
// @Success 200 {object} model.TrainerApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/trainers/{id}/reject [patch]
func (h *TrainerHandler) Reject(c echo.Context) error {
	var req RejectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.trainers.Reject(c.Request().Context(), service.RejectInput{
		TrainerID: c.Param("id"),
		Email:     req.Email,
		Name:      req.Name,
		Feedback:  req.Feedback,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, app)
}

// Payout godoc
// @Summary Pay an accepted trainer
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body PayoutRequest false "Amount, defaults to the configured payout"
// @Success 200 {object} model.AdminBalance
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/trainers/{id}/payout [post]
func (h *TrainerHandler) Payout(c echo.Context) error {
	var req PayoutRequest
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}

	amount := decimal.Zero
	if req.Amount != "" {
		parsed, err := decimal.NewFromString(req.Amount)
		if err != nil || !parsed.IsPositive() {
			return fail(errors.ErrInvalidAmount)
		}
		amount = parsed
	}

	balance, err := h.balance.PayTrainer(c.Request().Context(), c.Param("id"), amount)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, balance)
}
