package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Betaniacelis/tiendaonline/internal/client"
	"github.com/Betaniacelis/tiendaonline/internal/dto"
	"github.com/Betaniacelis/tiendaonline/internal/middleware"
	"github.com/Betaniacelis/tiendaonline/internal/repository"
	"github.com/Betaniacelis/tiendaonline/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateOrder opens a PayPal order for the priced cart total.
func (h *CheckoutHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Total inválido"})
	}
	if req.Total <= 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Total inválido"})
	}

	orderID, err := h.checkoutService.OpenOrder(ctx, req.Total)
	if err != nil {
		if errors.Is(err, client.ErrInvalidAmount) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Total inválido"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.CreateOrderResponse{OrderID: orderID})
}

// ConfirmPayment captures an approved PayPal order and records the sale.
func (h *CheckoutHandler) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Datos inválidos"})
	}
	if req.OrderID == "" || len(req.Items) == 0 || req.Total <= 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Datos inválidos"})
	}

	ordenID, err := h.checkoutService.ConfirmPayment(ctx, userID, req.OrderID, req.Items, req.Total)
	if err != nil {
		return confirmErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, dto.ConfirmPaymentResponse{Success: true, OrdenID: ordenID})
}

func confirmErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrCaptureDeclined):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No se pudo capturar el pago"})
	case errors.Is(err, service.ErrUnknownProduct),
		errors.Is(err, service.ErrTotalMismatch),
		errors.Is(err, service.ErrCapturedAmountMismatch),
		errors.Is(err, service.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	var perr *repository.PersistenceError
	if errors.As(err, &perr) {
		msg := "Error al crear la orden"
		if perr.Step == repository.StepItemsInsert {
			msg = "Error al guardar los productos"
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
	}

	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
}
