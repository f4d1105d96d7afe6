package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Betaniacelis/tiendaonline/internal/dto"
	"github.com/Betaniacelis/tiendaonline/internal/middleware"
	"github.com/Betaniacelis/tiendaonline/internal/service"
)

type StoreHandler struct {
	storeService service.StoreService
}

func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

func (h *StoreHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.storeService.ListProducts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, products)
}

func (h *StoreHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.storeService.GetCart(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *StoreHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Datos inválidos"})
	}
	if req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Datos inválidos"})
	}

	err := h.storeService.AddToCart(ctx, middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuantity) || errors.Is(err, service.ErrUnknownProduct) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *StoreHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.storeService.ClearCart(ctx, middleware.UserID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *StoreHandler) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.storeService.MyOrders(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, orders)
}
