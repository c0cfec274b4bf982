// Package mysql 提供库存仓储接口的 MySQL GORM 实现
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/cafekiosk/internal/stock/domain"
	"github.com/wyfcoding/cafekiosk/pkg/contextx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓储实例
func NewStockRepository(db *gorm.DB) domain.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Save(ctx context.Context, stock *domain.Stock) error {
	db := contextx.Tx(ctx, r.db)
	return db.WithContext(ctx).Save(stock).Error
}

func (r *stockRepository) FindByNumbers(ctx context.Context, numbers []string) (map[string]*domain.Stock, error) {
	if len(numbers) == 0 {
		return map[string]*domain.Stock{}, nil
	}

	db := contextx.Tx(ctx, r.db)

	var stocks []*domain.Stock
	if err := db.WithContext(ctx).
		Where("product_number IN ?", numbers).
		Find(&stocks).Error; err != nil {
		return nil, err
	}

	result := make(map[string]*domain.Stock, len(stocks))
	for _, s := range stocks {
		result[s.ProductNumber] = s
	}
	return result, nil
}

// Deduct 使用行级悲观锁扣减库存。
// SELECT ... FOR UPDATE 将该商品的库存行锁定到调用方事务提交，
// 对同一行的并发扣减在此串行化；不同商品的行互不阻塞。
// 调用方必须在事务中调用（contextx 传入事务句柄），回滚时扣减一并撤销
func (r *stockRepository) Deduct(ctx context.Context, productNumber string, quantity int) error {
	db := contextx.Tx(ctx, r.db)

	var stock domain.Stock
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_number = ?", productNumber).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %s", domain.ErrStockNotFound, productNumber)
	}
	if err != nil {
		return err
	}

	if err := stock.Deduct(quantity); err != nil {
		return err
	}

	return db.WithContext(ctx).Save(&stock).Error
}
