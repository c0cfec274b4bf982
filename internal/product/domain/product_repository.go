package domain

import "context"

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// Save 保存商品，写入后回填存储分配的 ID
	Save(ctx context.Context, product *Product) error
	// FindByNumbers 按商品编号批量查询，结果以编号为键；未命中的编号不出现在结果中
	FindByNumbers(ctx context.Context, numbers []string) (map[string]*Product, error)
	// FindBySellingStatuses 按销售状态查询商品列表
	FindBySellingStatuses(ctx context.Context, statuses []SellingStatus) ([]*Product, error)
	// LatestProductNumber 返回当前最大的商品编号；目录为空时返回空串
	LatestProductNumber(ctx context.Context) (string, error)
}
