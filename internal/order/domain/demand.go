package domain

import (
	"errors"
	"fmt"

	productdomain "github.com/wyfcoding/cafekiosk/internal/product/domain"
)

// ErrProductNotFound 请求的商品编号在目录中不存在
var ErrProductNotFound = errors.New("product not found")

// ResolveProducts 将请求的商品编号解析为目录中的商品，
// 保持请求顺序与重复项；任一编号未命中即失败
func ResolveProducts(requested []string, found map[string]*productdomain.Product) ([]*productdomain.Product, error) {
	products := make([]*productdomain.Product, 0, len(requested))
	for _, number := range requested {
		p, ok := found[number]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", ErrProductNotFound, number)
		}
		products = append(products, p)
	}
	return products, nil
}

// StockDemand 统计本次订单对每个管理库存商品的需求量。
// 仅统计策略判定为管理库存的类型；请求中的重复编号累加计数
func StockDemand(products []*productdomain.Product, policy productdomain.StockPolicy) map[string]int {
	demand := make(map[string]int)
	for _, p := range products {
		if policy.Bearing(p.Type) {
			demand[p.ProductNumber]++
		}
	}
	return demand
}
