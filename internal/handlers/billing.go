package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"sanctify-api/internal/billing"
	"sanctify-api/internal/middleware/auth"
)

func (h *Handler) CreateOrder(c echo.Context) error {
	order, err := h.biller.CreateOrder(c.Request().Context(), auth.UID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create payment order")
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) CaptureOrder(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order id is required")
	}

	status, err := h.biller.CaptureOrder(c.Request().Context(), auth.UID(c), orderID)
	if err != nil {
		if errors.Is(err, billing.ErrPaymentNotCompleted) {
			return c.JSON(http.StatusPaymentRequired, map[string]any{
				"status":  status,
				"premium": false,
			})
		}
		return echo.NewHTTPError(http.StatusBadGateway, "failed to capture payment")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":  status,
		"premium": true,
	})
}

func (h *Handler) SimulatePayment(c echo.Context) error {
	if err := h.biller.Simulate(c.Request().Context(), auth.UID(c)); err != nil {
		if errors.Is(err, billing.ErrSimulationDisabled) {
			return echo.NewHTTPError(http.StatusForbidden, "simulated payments are disabled")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to activate premium")
	}
	return c.JSON(http.StatusOK, map[string]any{"premium": true})
}

func (h *Handler) ListOrders(c echo.Context) error {
	orders, err := h.biller.Orders(c.Request().Context(), auth.UID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list orders")
	}
	return c.JSON(http.StatusOK, orders)
}
