// Package domain 包含库存台账的领域模型
package domain

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 库存领域错误
var (
	// ErrInsufficientStock 库存不足，属于业务结果而非系统故障
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStockNotFound 管理库存的商品没有对应的库存记录
	ErrStockNotFound = errors.New("stock not found")
	// ErrDeductQuantityInvalid 扣减数量必须为正
	ErrDeductQuantityInvalid = errors.New("deduct quantity must be positive")
)

// Stock 库存实体
// 每个管理库存的商品编号对应一条记录，quantity 只能由台账扣减（及外部补货）修改
type Stock struct {
	gorm.Model
	// 商品编号
	ProductNumber string `gorm:"column:product_number;type:varchar(10);uniqueIndex;not null" json:"product_number"`
	// 库存数量，始终非负
	Quantity int `gorm:"column:quantity;not null" json:"quantity"`
}

// TableName 指定表名
func (Stock) TableName() string { return "stocks" }

// NewStock 创建库存记录
func NewStock(productNumber string, quantity int) *Stock {
	return &Stock{
		ProductNumber: productNumber,
		Quantity:      quantity,
	}
}

// Deduct 扣减库存。数量不足时返回 ErrInsufficientStock 且不修改状态；
// 无论调用方是否预先检查，这里都必须保证数量不会变为负数
func (s *Stock) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrDeductQuantityInvalid
	}
	if s.Quantity < quantity {
		return fmt.Errorf("%w: product %s has %d, need %d", ErrInsufficientStock, s.ProductNumber, s.Quantity, quantity)
	}
	s.Quantity -= quantity
	return nil
}
