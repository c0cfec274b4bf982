// Package mysql 提供商品仓储接口的 MySQL GORM 实现
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/cafekiosk/internal/product/domain"
	"github.com/wyfcoding/cafekiosk/pkg/contextx"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	db := contextx.Tx(ctx, r.db)
	return db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) FindByNumbers(ctx context.Context, numbers []string) (map[string]*domain.Product, error) {
	if len(numbers) == 0 {
		return map[string]*domain.Product{}, nil
	}

	db := contextx.Tx(ctx, r.db)

	var products []*domain.Product
	if err := db.WithContext(ctx).
		Where("product_number IN ?", numbers).
		Find(&products).Error; err != nil {
		return nil, err
	}

	result := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		result[p.ProductNumber] = p
	}
	return result, nil
}

func (r *productRepository) FindBySellingStatuses(ctx context.Context, statuses []domain.SellingStatus) ([]*domain.Product, error) {
	db := contextx.Tx(ctx, r.db)

	var products []*domain.Product
	err := db.WithContext(ctx).
		Where("selling_status IN ?", statuses).
		Order("id").
		Find(&products).Error
	return products, err
}

func (r *productRepository) LatestProductNumber(ctx context.Context) (string, error) {
	db := contextx.Tx(ctx, r.db)

	var product domain.Product
	err := db.WithContext(ctx).
		Order("product_number DESC").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return product.ProductNumber, nil
}
