package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Betaniacelis/tiendaonline/internal/model"
)

type CartRepository interface {
	Upsert(ctx context.Context, item *model.CartItem) error
	GetByUser(ctx context.Context, userID string) ([]*model.CartItem, error)
	Clear(ctx context.Context, userID string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

// Upsert adds a product to the user's cart, accumulating quantity when
// the product is already there.
func (r *cartRepoImpl) Upsert(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "usuario_id"}, {Name: "producto_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cantidad": gorm.Expr("carritos.cantidad + ?", item.Quantity),
		}),
	}).Create(item).Error
}

func (r *cartRepoImpl) GetByUser(ctx context.Context, userID string) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("usuario_id = ?", userID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
