package domain

// StockPolicy 定义哪些商品类型需要管理库存。
// 管理库存的类型集合会随业务变化，因此作为配置注入，而不是写死在类型判断里
type StockPolicy struct {
	bearing map[ProductType]struct{}
}

// NewStockPolicy 由类型列表构造库存策略
func NewStockPolicy(types ...ProductType) StockPolicy {
	bearing := make(map[ProductType]struct{}, len(types))
	for _, t := range types {
		bearing[t] = struct{}{}
	}
	return StockPolicy{bearing: bearing}
}

// DefaultStockPolicy 默认策略：瓶装饮品与烘焙食品管理库存
func DefaultStockPolicy() StockPolicy {
	return NewStockPolicy(TypeBottle, TypeBakery)
}

// Bearing 判断给定类型是否管理库存
func (p StockPolicy) Bearing(t ProductType) bool {
	_, ok := p.bearing[t]
	return ok
}
