package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Betaniacelis/tiendaonline/internal/model"
	"github.com/Betaniacelis/tiendaonline/internal/repository"
)

// Cart is the user's cart with product details and the priced total.
type Cart struct {
	Items []*model.CartItem `json:"items"`
	Total float64           `json:"total"`
}

type StoreService interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int) error
	ClearCart(ctx context.Context, userID string) error
	MyOrders(ctx context.Context, userID string) ([]*model.Order, error)
}

type storeServiceImpl struct {
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
}

func NewStoreService(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
) StoreService {
	return &storeServiceImpl{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
	}
}

func (s *storeServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *storeServiceImpl) GetCart(ctx context.Context, userID string) (*Cart, error) {
	items, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total = total.Add(
			decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity))),
		)
	}

	totalF, _ := total.Round(2).Float64()
	return &Cart{Items: items, Total: totalF}, nil
}

func (s *storeServiceImpl) AddToCart(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return ErrUnknownProduct
	}

	return s.cartRepo.Upsert(ctx, &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (s *storeServiceImpl) ClearCart(ctx context.Context, userID string) error {
	return s.cartRepo.Clear(ctx, userID)
}

func (s *storeServiceImpl) MyOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
