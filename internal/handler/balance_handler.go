package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fitsync/internal/service"
)

// BalanceHandler handles the admin balance endpoint.
type BalanceHandler struct {
	svc service.BalanceService
}

// NewBalanceHandler creates a new balance handler.
func NewBalanceHandler(svc service.BalanceService) *BalanceHandler {
	return &BalanceHandler{svc: svc}
}

// GetBalance godoc
// @Summary Platform balance
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AdminBalance
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/balance [get]
func (h *BalanceHandler) GetBalance(c echo.Context) error {
	balance, err := h.svc.GetBalance(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, balance)
}
