package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Betaniacelis/tiendaonline/internal/model"
)

// PersistenceStep identifies which half of the order write failed.
type PersistenceStep string

const (
	StepOrderInsert PersistenceStep = "order-insert"
	StepItemsInsert PersistenceStep = "items-insert"
)

type PersistenceError struct {
	Step PersistenceStep
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed at %s: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

var ErrNoItems = errors.New("order must contain at least one item")

type OrderRepository interface {
	// CommitOrder writes the order header and its items, compensating
	// with a header delete if the items cannot be written. A committed
	// order never exists without items.
	CommitOrder(ctx context.Context, userID, paypalOrderID string, total float64, items []*model.OrderItem) (string, error)
	FindByPaypalOrderID(ctx context.Context, paypalOrderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) CommitOrder(ctx context.Context, userID, paypalOrderID string, total float64, items []*model.OrderItem) (string, error) {
	if len(items) == 0 {
		return "", ErrNoItems
	}

	order := &model.Order{
		UserID:        userID,
		PayPalOrderID: paypalOrderID,
		Total:         total,
		Status:        model.OrderStatusCompleted,
		Date:          time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// the gateway order was already settled by an earlier call;
			// answer with the order we committed back then, but only to
			// the user it belongs to
			existing, findErr := r.FindByPaypalOrderID(ctx, paypalOrderID)
			if findErr == nil && existing.UserID == userID {
				return existing.ID, nil
			}
		}
		return "", &PersistenceError{Step: StepOrderInsert, Err: err}
	}

	for _, item := range items {
		item.OrderID = order.ID
	}

	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		// best-effort rollback of the header so no zero-item order survives
		if delErr := r.db.WithContext(ctx).Delete(&model.Order{}, "id = ?", order.ID).Error; delErr != nil {
			err = fmt.Errorf("%w (compensating delete also failed: %v)", err, delErr)
		}
		return "", &PersistenceError{Step: StepItemsInsert, Err: err}
	}

	return order.ID, nil
}

func (r *orderRepoImpl) FindByPaypalOrderID(ctx context.Context, paypalOrderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("paypal_order_id = ?", paypalOrderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("usuario_id = ?", userID).
		Order("fecha DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
