package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Behavior actions recorded by the web layer and consumed read-only by the
// recommendation engine.
const (
	ActionView     = "view"
	ActionPurchase = "purchase"
	ActionSearch   = "search"
	ActionCartAdd  = "cart_add"
)

// CREATE TABLE public.behavior_events (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id     BIGINT NOT NULL,
//     action      TEXT NOT NULL,
//     product_id  BIGINT,
//     context     JSONB,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type BehaviorEvent struct {
	ID        uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64            `gorm:"column:user_id;not null" json:"user_id"`
	Action    string            `gorm:"column:action;not null" json:"action"`
	ProductID uint64            `gorm:"column:product_id" json:"product_id,omitempty"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BehaviorEvent) TableName() string {
	return "behavior_events"
}

type Order struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null" json:"user_id"`
	Status    string    `gorm:"column:status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint64  `gorm:"column:order_id;not null" json:"order_id"`
	ProductID uint64  `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int     `gorm:"column:quantity" json:"quantity"`
	Price     float64 `gorm:"column:price;type:numeric" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
