package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/service"
)

// BookingHandler handles subscription and slot endpoints.
type BookingHandler struct {
	bookings      service.BookingService
	cancellations service.CancellationService
	trainers      service.TrainerService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookings service.BookingService, cancellations service.CancellationService, trainers service.TrainerService) *BookingHandler {
	return &BookingHandler{bookings: bookings, cancellations: cancellations, trainers: trainers}
}

// SubscriptionRequest represents a paid booking. TransactionID is the payment gateway reference.
type SubscriptionRequest struct {
	Trainer       string `json:"trainer" validate:"required"`
	TrainerEmail  string `json:"trainer_email" validate:"omitempty,email"`
	Slot          string `json:"slot" validate:"required"`
	PackageName   string `json:"package_name"`
	Price         string `json:"price" validate:"required"`
	TransactionID string `json:"transaction_id"`
}

// CancellationRequest represents a slot cancellation notice.
type CancellationRequest struct {
	Trainer string `json:"trainer" validate:"required"`
	Slot    string `json:"slot" validate:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// CancellationResponse lists who was notified.
type CancellationResponse struct {
	Recipients []string `json:"recipients"`
}

// Subscribe godoc
// @Summary Record a paid booking
// @Description Stores the booking and credits its price to the admin balance. A slot can be booked once per member.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubscriptionRequest true "Booking"
// @Success 201 {object} model.Subscription
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /subscriptions [post]
func (h *BookingHandler) Subscribe(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	var req SubscriptionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return fail(errors.ErrInvalidAmount)
	}

	sub, err := h.bookings.RecordSubscription(c.Request().Context(), &model.Subscription{
		Email:         claims.Email,
		Trainer:       req.Trainer,
		TrainerEmail:  req.TrainerEmail,
		Slot:          req.Slot,
		PackageName:   req.PackageName,
		Price:         price,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, sub)
}

// BookedSlots godoc
// @Summary Slots booked by the caller
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /subscriptions/slots [get]
func (h *BookingHandler) BookedSlots(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	slots, err := h.bookings.ListBookedSlots(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, slots)
}

// Mine godoc
// @Summary Bookings of the caller
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Subscription
// @Router /subscriptions/me [get]
func (h *BookingHandler) Mine(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	subs, err := h.bookings.ListSubscriptionsByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, subs)
}

// TrainerBookings godoc
// @Summary Bookings made with the calling trainer
// @Tags trainer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Subscription
// @Failure 403 {object} errors.ErrorResponse
// @Router /trainer/subscriptions [get]
func (h *BookingHandler) TrainerBookings(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	subs, err := h.bookings.ListSubscriptionsByTrainer(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, subs)
}

// BookingsByTrainer godoc
// @Summary Bookings made with a trainer
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param email query string true "Trainer email"
// @Success 200 {array} model.Subscription
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/subscriptions [get]
func (h *BookingHandler) BookingsByTrainer(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return fail(errors.ErrInvalidInput)
	}
	subs, err := h.bookings.ListSubscriptionsByTrainer(c.Request().Context(), email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, subs)
}

// SlotSubscribers godoc
// @Summary Subscriber emails of a trainer slot
// @Tags trainer
// @Produce json
// @Security BearerAuth
// @Param trainer query string true "Trainer name"
// @Param slot query string true "Slot"
// @Success 200 {array} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /slots/subscribers [get]
func (h *BookingHandler) SlotSubscribers(c echo.Context) error {
	trainer, slot := c.QueryParam("trainer"), c.QueryParam("slot")
	if trainer == "" || slot == "" {
		return fail(errors.ErrInvalidInput)
	}
	if err := h.authorizeTrainer(c, trainer); err != nil {
		return err
	}
	emails, err := h.bookings.ListSubscribersForSlot(c.Request().Context(), trainer, slot)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, emails)
}

// CancelSlot godoc
// @Summary Notify the subscribers of a cancelled slot
// @Tags trainer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CancellationRequest true "Cancellation"
// @Success 200 {object} CancellationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /slots/cancel [post]
func (h *BookingHandler) CancelSlot(c echo.Context) error {
	var req CancellationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authorizeTrainer(c, req.Trainer); err != nil {
		return err
	}

	recipients, err := h.cancellations.NotifyCancellation(c.Request().Context(), service.CancellationNotice{
		Trainer: req.Trainer,
		Slot:    req.Slot,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CancellationResponse{Recipients: recipients})
}

// authorizeTrainer lets admins act on any trainer's slots and trainers only on their own,
// matched by the name on their accepted application.
func (h *BookingHandler) authorizeTrainer(c echo.Context, trainer string) error {
	if role, _ := c.Get("role").(model.Role); role == model.RoleAdmin {
		return nil
	}
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	app, err := h.trainers.GetByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return forbidden()
		}
		return fail(err)
	}
	if app.Status != model.TrainerStatusAccepted || !strings.EqualFold(strings.TrimSpace(app.Name), strings.TrimSpace(trainer)) {
		return forbidden()
	}
	return nil
}
