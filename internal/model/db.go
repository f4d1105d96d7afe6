package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values as stored in ordenes.estado.
const (
	OrderStatusPending   = "pendiente"
	OrderStatusCompleted = "completada"
	OrderStatusFailed    = "fallida"
)

type Product struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Code        string  `gorm:"column:codigo;size:64;uniqueIndex" json:"codigo"`
	Name        string  `gorm:"column:nombre;size:255;not null" json:"nombre"`
	Price       float64 `gorm:"column:precio;not null" json:"precio"`
	Description *string `gorm:"column:descripcion" json:"descripcion"`
	Stock       int     `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Product) TableName() string { return "productos" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CartItem struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	UserID    string `gorm:"column:usuario_id;size:36;index:idx_carritos_usuario_producto,unique;not null" json:"usuario_id"`
	ProductID string `gorm:"column:producto_id;size:36;index:idx_carritos_usuario_producto,unique;not null" json:"producto_id"`
	Quantity  int    `gorm:"column:cantidad;not null" json:"cantidad"`

	Product *Product `gorm:"foreignKey:ProductID" json:"productos,omitempty"`
}

func (CartItem) TableName() string { return "carritos" }

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Order struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"column:usuario_id;size:36;index;not null" json:"usuario_id"`
	PayPalOrderID string    `gorm:"column:paypal_order_id;size:64;uniqueIndex;not null" json:"paypal_order_id"`
	Total         float64   `gorm:"column:total;not null" json:"total"`
	Status        string    `gorm:"column:estado;size:32;index;not null" json:"estado"`
	Date          time.Time `gorm:"column:fecha;not null" json:"fecha"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"orden_items,omitempty"`
}

func (Order) TableName() string { return "ordenes" }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string  `gorm:"column:orden_id;size:36;index;not null" json:"orden_id"`
	ProductID string  `gorm:"column:producto_id;size:36;index;not null" json:"producto_id"`
	Quantity  int     `gorm:"column:cantidad;not null" json:"cantidad"`
	UnitPrice float64 `gorm:"column:precio_unitario;not null" json:"precio_unitario"`
}

func (OrderItem) TableName() string { return "orden_items" }

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
