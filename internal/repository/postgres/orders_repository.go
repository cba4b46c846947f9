package postgres

import (
	"context"

	"gorm.io/gorm"

	"elaraMarket/domain"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) OrderIDsContaining(ctx context.Context, productID uint64) ([]uint64, error) {
	var orderIDs []uint64
	err := r.DB.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Where("product_id=?", productID).
		Distinct("order_id").
		Pluck("order_id", &orderIDs).Error
	if err != nil {
		return nil, err
	}

	return orderIDs, nil
}

func (r *OrdersRepository) ItemsByOrders(ctx context.Context, orderIDs []uint64) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.DB.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}
