package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"elaraMarket/domain"
)

type BehaviorRepository struct {
	DB *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) *BehaviorRepository {
	return &BehaviorRepository{
		DB: db,
	}
}

func (r *BehaviorRepository) SaveEvent(ctx context.Context, event domain.BehaviorEvent) error {
	err := r.DB.WithContext(ctx).Create(&event).Error
	if err != nil {
		return err
	}

	return nil
}

func (r *BehaviorRepository) EventsByUser(ctx context.Context, userID uint64, since time.Time) ([]domain.BehaviorEvent, error) {
	var events []domain.BehaviorEvent
	err := r.DB.WithContext(ctx).
		Where("user_id=?", userID).
		Where("created_at>=?", since).
		Order("created_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *BehaviorRepository) EventsByProducts(ctx context.Context, productIDs []uint64, excludeUserID uint64, since time.Time) ([]domain.BehaviorEvent, error) {
	var events []domain.BehaviorEvent
	err := r.DB.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Where("user_id<>?", excludeUserID).
		Where("created_at>=?", since).
		Order("created_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *BehaviorRepository) EventsByUsers(ctx context.Context, userIDs []uint64, since time.Time) ([]domain.BehaviorEvent, error) {
	var events []domain.BehaviorEvent
	err := r.DB.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("created_at>=?", since).
		Order("created_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}
