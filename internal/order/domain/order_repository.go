package domain

import "context"

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Save 保存订单及其行项目，写入后回填存储分配的 ID
	Save(ctx context.Context, order *Order) error
	// Get 按 ID 获取订单（含行项目），不存在时返回 nil
	Get(ctx context.Context, id uint) (*Order, error)
}
