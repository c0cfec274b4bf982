package domain

import "context"

// StockRepository 库存仓储接口
type StockRepository interface {
	// Save 保存库存记录
	Save(ctx context.Context, stock *Stock) error
	// FindByNumbers 按商品编号批量查询库存，结果以编号为键
	FindByNumbers(ctx context.Context, numbers []string) (map[string]*Stock, error)
	// Deduct 原子地检查并扣减指定商品的库存。
	// 对同一商品编号的并发扣减必须串行生效，不允许丢失更新；
	// 数量不足返回 ErrInsufficientStock，记录不存在返回 ErrStockNotFound
	Deduct(ctx context.Context, productNumber string, quantity int) error
}
