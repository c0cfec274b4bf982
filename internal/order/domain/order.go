// Package domain 包含订单的领域模型
package domain

import (
	"time"

	productdomain "github.com/wyfcoding/cafekiosk/internal/product/domain"
	"gorm.io/gorm"
)

// Order 订单聚合根
// 创建后不可变更；行项目快照下单时的商品编号与价格，总价为行价格之和
type Order struct {
	gorm.Model
	// 下单时间，由调用方传入而非内部取墙钟，保证编排逻辑可测试
	RegisteredAt time.Time `gorm:"column:registered_at;not null" json:"registered_at"`
	// 订单总价，创建时由行价格求和得出
	TotalPrice int64 `gorm:"column:total_price;not null" json:"total_price"`
	// 行项目，与请求的商品编号一一对应（重复编号产生重复行）
	Lines []OrderProduct `gorm:"foreignKey:OrderID" json:"lines"`
}

// TableName 指定表名
func (Order) TableName() string { return "orders" }

// OrderProduct 订单行项目
type OrderProduct struct {
	gorm.Model
	// 所属订单 ID
	OrderID uint `gorm:"column:order_id;index;not null" json:"order_id"`
	// 商品编号（弱引用，仅作查找键）
	ProductNumber string `gorm:"column:product_number;type:varchar(10);not null" json:"product_number"`
	// 下单时的商品价格快照
	Price int64 `gorm:"column:price;not null" json:"price"`
}

// TableName 指定表名
func (OrderProduct) TableName() string { return "order_products" }

// NewOrder 由解析后的商品列表构建订单。
// 保持请求顺序与重复项，逐行快照价格并累计总价
func NewOrder(products []*productdomain.Product, registeredAt time.Time) *Order {
	lines := make([]OrderProduct, 0, len(products))
	var total int64
	for _, p := range products {
		lines = append(lines, OrderProduct{
			ProductNumber: p.ProductNumber,
			Price:         p.Price,
		})
		total += p.Price
	}

	return &Order{
		RegisteredAt: registeredAt,
		TotalPrice:   total,
		Lines:        lines,
	}
}
