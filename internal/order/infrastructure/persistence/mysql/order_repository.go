// Package mysql 提供订单仓储接口的 MySQL GORM 实现
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/cafekiosk/internal/order/domain"
	"github.com/wyfcoding/cafekiosk/pkg/contextx"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

// Save 保存订单，行项目随聚合一起写入
func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	db := contextx.Tx(ctx, r.db)
	return db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Get(ctx context.Context, id uint) (*domain.Order, error) {
	db := contextx.Tx(ctx, r.db)

	var order domain.Order
	err := db.WithContext(ctx).
		Preload("Lines").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
