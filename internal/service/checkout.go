package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Betaniacelis/tiendaonline/internal/client"
	"github.com/Betaniacelis/tiendaonline/internal/dto"
	"github.com/Betaniacelis/tiendaonline/internal/model"
	"github.com/Betaniacelis/tiendaonline/internal/repository"
)

type CheckoutService interface {
	// OpenOrder creates a gateway order for the priced cart. Nothing is
	// persisted here; an order the buyer never approves leaves no trace.
	OpenOrder(ctx context.Context, total float64) (string, error)

	// ConfirmPayment captures the approved gateway order and commits the
	// sales order. Returns the internal order id.
	ConfirmPayment(ctx context.Context, userID, orderID string, items []dto.ConfirmItem, total float64) (string, error)
}

type checkoutServiceImpl struct {
	paypalClient client.PaypalClient
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	logger       *zap.Logger
}

func NewCheckoutService(
	paypalClient client.PaypalClient,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		paypalClient: paypalClient,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

func (s *checkoutServiceImpl) OpenOrder(ctx context.Context, total float64) (string, error) {
	orderID, err := s.paypalClient.CreateOrder(ctx, total)
	if err != nil {
		return "", fmt.Errorf("paypal api create order: %w", err)
	}

	s.logger.Info("paypal order opened",
		zap.String("paypal_order_id", orderID),
		zap.Float64("total", total),
	)

	return orderID, nil
}

func (s *checkoutServiceImpl) ConfirmPayment(ctx context.Context, userID, orderID string, items []dto.ConfirmItem, total float64) (string, error) {
	for _, item := range items {
		if item.Quantity <= 0 {
			return "", ErrInvalidQuantity
		}
	}

	capture, err := s.paypalClient.CaptureOrder(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("paypal api capture order: %w", err)
	}
	if !capture.Captured {
		return "", ErrCaptureDeclined
	}

	if err := s.verifyTotal(ctx, items, total); err != nil {
		// money already moved; the mismatch has to be visible to operators
		s.logger.Warn("captured order failed price verification",
			zap.String("paypal_order_id", orderID),
			zap.String("usuario_id", userID),
			zap.Error(err),
		)
		return "", err
	}

	if err := verifyCapturedAmount(capture.Amount, total); err != nil {
		s.logger.Warn("captured amount disagrees with order total",
			zap.String("paypal_order_id", orderID),
			zap.String("usuario_id", userID),
			zap.String("captured_amount", capture.Amount),
			zap.Float64("total", total),
		)
		return "", err
	}

	orderItems := make([]*model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = &model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		}
	}

	ordenID, err := s.orderRepo.CommitOrder(ctx, userID, orderID, total, orderItems)
	if err != nil {
		return "", fmt.Errorf("store order in db: %w", err)
	}

	s.logger.Info("order confirmed",
		zap.String("orden_id", ordenID),
		zap.String("paypal_order_id", orderID),
		zap.String("usuario_id", userID),
	)

	return ordenID, nil
}

// verifyCapturedAmount checks the order total against what the gateway
// says it actually captured. Record exactly what was charged: an order
// worth more or less than the captured amount never reaches the ledger.
func verifyCapturedAmount(capturedAmount string, total float64) error {
	captured, err := decimal.NewFromString(capturedAmount)
	if err != nil {
		return ErrCapturedAmountMismatch
	}
	if !captured.Equal(decimal.NewFromFloat(total).Round(2)) {
		return ErrCapturedAmountMismatch
	}
	return nil
}

// verifyTotal recomputes the total from catalog prices at two-decimal
// precision. The client sends its own total and per-item prices; the
// catalog is the authority on what was actually owed.
func (s *checkoutServiceImpl) verifyTotal(ctx context.Context, items []dto.ConfirmItem, total float64) error {
	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return fmt.Errorf("get products for verification: %w", err)
	}

	priceByID := make(map[string]float64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	expected := decimal.Zero
	for _, item := range items {
		price, ok := priceByID[item.ProductID]
		if !ok {
			return ErrUnknownProduct
		}
		expected = expected.Add(
			decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(item.Quantity))),
		)
	}

	if !expected.Round(2).Equal(decimal.NewFromFloat(total).Round(2)) {
		return ErrTotalMismatch
	}

	return nil
}
