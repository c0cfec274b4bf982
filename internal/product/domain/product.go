// Package domain 包含商品目录的领域模型
package domain

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ProductType 商品类型
type ProductType string

const (
	// TypeHandmade 现场制作饮品，不管理库存
	TypeHandmade ProductType = "HANDMADE"
	// TypeBottle 瓶装饮品
	TypeBottle ProductType = "BOTTLE"
	// TypeBakery 烘焙食品
	TypeBakery ProductType = "BAKERY"
)

// Valid 判断商品类型是否合法
func (t ProductType) Valid() bool {
	switch t {
	case TypeHandmade, TypeBottle, TypeBakery:
		return true
	}
	return false
}

// SellingStatus 销售状态
type SellingStatus string

const (
	// StatusSelling 在售
	StatusSelling SellingStatus = "SELLING"
	// StatusHold 暂停销售，仍对外展示
	StatusHold SellingStatus = "HOLD"
	// StatusStop 停止销售
	StatusStop SellingStatus = "STOP"
)

// Valid 判断销售状态是否合法
func (s SellingStatus) Valid() bool {
	switch s {
	case StatusSelling, StatusHold, StatusStop:
		return true
	}
	return false
}

// ForDisplay 返回对外展示的销售状态集合
func ForDisplay() []SellingStatus {
	return []SellingStatus{StatusSelling, StatusHold}
}

// 商品领域错误
var (
	ErrProductNameRequired    = errors.New("product name is required")
	ErrProductPriceInvalid    = errors.New("product price must be positive")
	ErrProductTypeInvalid     = errors.New("invalid product type")
	ErrSellingStatusInvalid   = errors.New("invalid selling status")
	ErrProductNumberExhausted = errors.New("product number space exhausted")
)

// Product 商品实体
// ProductNumber 是业务主键，分配后不可变更，全局唯一
type Product struct {
	gorm.Model
	// 商品编号，三位零填充，如 "001"
	ProductNumber string `gorm:"column:product_number;type:varchar(10);uniqueIndex;not null" json:"product_number"`
	// 商品类型
	Type ProductType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	// 销售状态
	SellingStatus SellingStatus `gorm:"column:selling_status;type:varchar(20);index;not null" json:"selling_status"`
	// 商品名称
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	// 价格（整数额）
	Price int64 `gorm:"column:price;not null" json:"price"`
}

// TableName 指定表名
func (Product) TableName() string { return "products" }

// NewProduct 创建商品，校验名称与价格
func NewProduct(productNumber string, productType ProductType, sellingStatus SellingStatus, name string, price int64) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrProductNameRequired
	}
	if price <= 0 {
		return nil, ErrProductPriceInvalid
	}
	if !productType.Valid() {
		return nil, ErrProductTypeInvalid
	}
	if !sellingStatus.Valid() {
		return nil, ErrSellingStatusInvalid
	}
	return &Product{
		ProductNumber: productNumber,
		Type:          productType,
		SellingStatus: sellingStatus,
		Name:          name,
		Price:         price,
	}, nil
}
